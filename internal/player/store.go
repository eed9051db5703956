package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/skillforge/internal/skill"
)

// Routine outcomes of progression mutations. "Not found" lookups are
// reported as errors only for mutations, where acting on a missing
// skill or slot indicates a stale request.
var (
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrUnknownSlot        = errors.New("unknown skill slot")
	ErrSkillNotUnlocked   = errors.New("skill is not unlocked")
	ErrRequirementsFailed = errors.New("skill requirements not met")
)

// Repository is the persistence port the store talks to.
type Repository interface {
	// FindPlayer returns the persisted record, or nil, nil when the
	// player has no record yet.
	FindPlayer(ctx context.Context, id uuid.UUID) (*SkilledPlayer, error)
	// SavePlayer persists the record, its skills and its slots.
	SavePlayer(ctx context.Context, p *SkilledPlayer) error
	// DeleteSlot removes a persisted slot row.
	DeleteSlot(ctx context.Context, id uuid.UUID) error
}

// Store implements get-or-create progression records and the slot
// assignment state machine on top of a Repository and the skill
// hierarchy. Slot mutations are serialized per player; different
// players never contend with each other.
type Store struct {
	repo   Repository
	skills skill.Resolver
	log    *slog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewStore creates a store over the given repository and skill
// resolver. A nil logger falls back to slog.Default.
func NewStore(repo Repository, skills skill.Resolver, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		repo:   repo,
		skills: skills,
		log:    log,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// lock returns the mutex serializing mutations for one player.
func (st *Store) lock(id uuid.UUID) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()
	l, ok := st.locks[id]
	if !ok {
		l = &sync.Mutex{}
		st.locks[id] = l
	}
	return l
}

// GetOrCreate returns the progression record for the player identity.
// It never fails: when no record is persisted, or the storage lookup
// errors, a fresh transient record is returned and the caller decides
// when to persist it.
func (st *Store) GetOrCreate(ctx context.Context, id uuid.UUID, name string) *SkilledPlayer {
	p, err := st.repo.FindPlayer(ctx, id)
	if err != nil {
		st.log.Error("failed to load player, using transient record", "player", id, "err", err)
	}
	if p == nil {
		return New(id, name)
	}
	return p
}

// Save persists the record.
func (st *Store) Save(ctx context.Context, p *SkilledPlayer) error {
	if err := st.repo.SavePlayer(ctx, p); err != nil {
		return fmt.Errorf("saving player %s: %w", p.ID(), err)
	}
	return nil
}

// Unlock tests the skill's requirements against the player, records the
// unlock, applies the skill and persists the record.
func (st *Store) Unlock(ctx context.Context, p *SkilledPlayer, name string) (*PlayerSkill, error) {
	l := st.lock(p.ID())
	l.Lock()
	defer l.Unlock()

	s, ok := st.skills.FindByAliasOrName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	if existing, hasIt := p.SkillRecord(s.Alias()); hasIt {
		return existing, nil
	}
	if result := s.Test(p); !result.Ok() {
		return nil, fmt.Errorf("%w: %s", ErrRequirementsFailed, result.Reason())
	}

	record := p.AddSkill(s.Alias())
	if err := s.Apply(p); err != nil {
		return nil, fmt.Errorf("applying skill %s: %w", s.Alias(), err)
	}
	if err := st.Save(ctx, p); err != nil {
		return nil, err
	}
	st.log.Info("unlocked skill", "player", p.ID(), "skill", s.Alias())
	return record, nil
}

// BuySlot transitions an eligible slot to free and persists the record.
func (st *Store) BuySlot(ctx context.Context, p *SkilledPlayer, slotID uuid.UUID) error {
	l := st.lock(p.ID())
	l.Lock()
	defer l.Unlock()

	slot, ok := p.Slot(slotID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	slot.Unlock()
	return st.Save(ctx, p)
}

// AssignSlot puts an unlocked skill into the slot, re-evaluating the
// skill's requirements first. An empty skill name clears the slot.
func (st *Store) AssignSlot(ctx context.Context, p *SkilledPlayer, slotID uuid.UUID, name string) error {
	l := st.lock(p.ID())
	l.Lock()
	defer l.Unlock()

	slot, ok := p.Slot(slotID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	if name == "" {
		slot.Assign(nil)
		return st.Save(ctx, p)
	}

	s, found := st.skills.FindByAliasOrName(name)
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	record, unlocked := p.SkillRecord(s.Alias())
	if !unlocked {
		return fmt.Errorf("%w: %s", ErrSkillNotUnlocked, s.Alias())
	}
	if result := s.Test(p); !result.Ok() {
		return fmt.Errorf("%w: %s", ErrRequirementsFailed, result.Reason())
	}

	slot.Assign(record)
	return st.Save(ctx, p)
}

// UnassignSlot clears the slot, freeing it when it hosted a skill.
func (st *Store) UnassignSlot(ctx context.Context, p *SkilledPlayer, slotID uuid.UUID) error {
	l := st.lock(p.ID())
	l.Lock()
	defer l.Unlock()

	slot, ok := p.Slot(slotID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	slot.Unassign()
	return st.Save(ctx, p)
}

// DeleteSlot unassigns the slot, detaches it from the player and
// removes the persisted row. Unassigning first guarantees no skill
// reference survives the deletion.
func (st *Store) DeleteSlot(ctx context.Context, p *SkilledPlayer, slotID uuid.UUID) error {
	l := st.lock(p.ID())
	l.Lock()
	defer l.Unlock()

	if !p.RemoveSlot(slotID) {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	if err := st.repo.DeleteSlot(ctx, slotID); err != nil {
		return fmt.Errorf("deleting slot %s: %w", slotID, err)
	}
	return st.Save(ctx, p)
}
