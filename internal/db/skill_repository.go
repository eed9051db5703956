package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skillforge/internal/skill"
)

// SkillRepository persists the loaded skill definitions so external
// tooling can query them without parsing the configuration tree.
type SkillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new SkillRepository.
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: db}
}

// SkillRecord is the persisted shape of one skill definition.
type SkillRecord struct {
	Alias       string
	Identifier  string
	ParentAlias string
	Type        string
	Name        string
	Level       int
	Hidden      bool
	Restricted  bool
	Config      map[string]any
}

// ReplaceAll rewrites the skills table from the given definitions in
// one transaction. Skill configuration reloads are wholesale, so the
// persisted set is too: old rows are dropped, current ones inserted.
func (r *SkillRepository) ReplaceAll(ctx context.Context, skills []*skill.ConfiguredSkill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM skills`); err != nil {
		return fmt.Errorf("deleting existing skills: %w", err)
	}

	for _, s := range skills {
		var parent any
		if s.IsChild() {
			parent = s.Parent()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (alias, identifier, parent_alias, type, name, level, hidden, restricted, config)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.Alias(), s.Identifier(), parent, s.Type(), s.Name(), s.Level(), s.Hidden(), s.Restricted(), s.Config(),
		); err != nil {
			return fmt.Errorf("inserting skill %s: %w", s.Alias(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing skills replace: %w", err)
	}

	return nil
}

// LoadAll loads every persisted skill definition ordered by alias.
func (r *SkillRepository) LoadAll(ctx context.Context) ([]*SkillRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT alias, identifier, COALESCE(parent_alias, ''), type, name, level, hidden, restricted, config
		FROM skills
		ORDER BY alias
	`)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	records := make([]*SkillRecord, 0, 32)
	for rows.Next() {
		var rec SkillRecord
		if err := rows.Scan(
			&rec.Alias, &rec.Identifier, &rec.ParentAlias, &rec.Type,
			&rec.Name, &rec.Level, &rec.Hidden, &rec.Restricted, &rec.Config,
		); err != nil {
			return nil, fmt.Errorf("scanning skill row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skill rows: %w", err)
	}

	return records, nil
}
