package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skillforge/internal/player"
)

// PlayerRepository persists skilled players, their unlocked skills and
// their skill slots. It implements player.Repository.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// FindPlayer loads a player with all skills and slots.
// Returns nil, nil when no record exists.
func (r *PlayerRepository) FindPlayer(ctx context.Context, id uuid.UUID) (*player.SkilledPlayer, error) {
	var name string
	var level int
	err := r.db.QueryRow(ctx,
		`SELECT name, level FROM players WHERE id = $1`, id,
	).Scan(&name, &level)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying player %s: %w", id, err)
	}

	skills, err := r.loadSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := r.loadSlots(ctx, id, skills)
	if err != nil {
		return nil, err
	}

	return player.Restore(id, name, level, skills, slots), nil
}

func (r *PlayerRepository) loadSkills(ctx context.Context, playerID uuid.UUID) ([]*player.PlayerSkill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, skill_alias, acquired_at
		FROM player_skills
		WHERE player_id = $1
		ORDER BY acquired_at, id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("querying skills for player %s: %w", playerID, err)
	}
	defer rows.Close()

	skills := make([]*player.PlayerSkill, 0, 8)
	for rows.Next() {
		var id uuid.UUID
		var alias string
		var acquiredAt time.Time
		if err := rows.Scan(&id, &alias, &acquiredAt); err != nil {
			return nil, fmt.Errorf("scanning player skill row: %w", err)
		}
		skills = append(skills, player.RestorePlayerSkill(id, playerID, alias, acquiredAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating player skill rows: %w", err)
	}

	return skills, nil
}

func (r *PlayerRepository) loadSlots(ctx context.Context, playerID uuid.UUID, skills []*player.PlayerSkill) ([]*player.SkillSlot, error) {
	bySkillID := make(map[uuid.UUID]*player.PlayerSkill, len(skills))
	for _, ps := range skills {
		bySkillID[ps.ID()] = ps
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, status, skill_id
		FROM skill_slots
		WHERE player_id = $1
		ORDER BY id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("querying slots for player %s: %w", playerID, err)
	}
	defer rows.Close()

	slots := make([]*player.SkillSlot, 0, 4)
	for rows.Next() {
		var id uuid.UUID
		var status string
		var skillID *uuid.UUID
		if err := rows.Scan(&id, &status, &skillID); err != nil {
			return nil, fmt.Errorf("scanning slot row: %w", err)
		}
		parsed, err := player.ParseSlotStatus(status)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", id, err)
		}
		var hosted *player.PlayerSkill
		if skillID != nil {
			hosted = bySkillID[*skillID]
		}
		slots = append(slots, player.RestoreSkillSlot(id, parsed, hosted))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot rows: %w", err)
	}

	return slots, nil
}

// SavePlayer upserts the player row and rewrites skills and slots in
// one transaction.
func (r *PlayerRepository) SavePlayer(ctx context.Context, p *player.SkilledPlayer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `
		INSERT INTO players (id, name, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = $2, level = $3
	`, p.ID(), p.Name(), p.Level()); err != nil {
		return fmt.Errorf("upserting player %s: %w", p.ID(), err)
	}

	// Slots reference skill rows, so they go first on delete and last on insert.
	if _, err := tx.Exec(ctx, `DELETE FROM skill_slots WHERE player_id = $1`, p.ID()); err != nil {
		return fmt.Errorf("deleting slots for player %s: %w", p.ID(), err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM player_skills WHERE player_id = $1`, p.ID()); err != nil {
		return fmt.Errorf("deleting skills for player %s: %w", p.ID(), err)
	}

	for _, ps := range p.Skills() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO player_skills (id, player_id, skill_alias, acquired_at)
			VALUES ($1, $2, $3, $4)
		`, ps.ID(), p.ID(), ps.Alias(), ps.AcquiredAt()); err != nil {
			return fmt.Errorf("inserting skill %s for player %s: %w", ps.Alias(), p.ID(), err)
		}
	}

	for _, slot := range p.Slots() {
		var skillID any
		if hosted, ok := slot.Skill(); ok {
			skillID = hosted.ID()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO skill_slots (id, player_id, status, skill_id)
			VALUES ($1, $2, $3, $4)
		`, slot.ID(), p.ID(), slot.Status().String(), skillID); err != nil {
			return fmt.Errorf("inserting slot %s for player %s: %w", slot.ID(), p.ID(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing player save: %w", err)
	}

	return nil
}

// DeleteSlot removes a persisted slot row.
func (r *PlayerRepository) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM skill_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting slot %s: %w", id, err)
	}
	return nil
}
