// Package player tracks per-player progression state: unlocked skills,
// skill slots and the store that persists them.
package player

import (
	"strings"

	"github.com/google/uuid"
)

// SkilledPlayer is the progression record of one player identity.
// It implements skill.Subject so requirements can be tested against it
// and skill types applied to it.
//
// A record is not safe for concurrent mutation; the Store serializes
// slot mutations per player.
type SkilledPlayer struct {
	id          uuid.UUID
	name        string
	level       int
	permissions map[string]struct{}
	skills      []*PlayerSkill
	slots       []*SkillSlot
}

// New creates a fresh, unsaved progression record.
func New(id uuid.UUID, name string) *SkilledPlayer {
	return &SkilledPlayer{
		id:          id,
		name:        name,
		permissions: make(map[string]struct{}),
	}
}

// Restore rebuilds a record from persisted state.
func Restore(id uuid.UUID, name string, level int, skills []*PlayerSkill, slots []*SkillSlot) *SkilledPlayer {
	p := New(id, name)
	p.level = level
	p.skills = skills
	p.slots = slots
	return p
}

// ID returns the player identity.
func (p *SkilledPlayer) ID() uuid.UUID { return p.id }

// Name returns the player display name.
func (p *SkilledPlayer) Name() string { return p.name }

// Level returns the player's progression level.
func (p *SkilledPlayer) Level() int { return p.level }

// SetLevel updates the player's progression level.
func (p *SkilledPlayer) SetLevel(level int) { p.level = level }

// HasPermission reports whether the node was granted to the player.
func (p *SkilledPlayer) HasPermission(node string) bool {
	_, ok := p.permissions[node]
	return ok
}

// GrantPermission grants a permission node to the player.
func (p *SkilledPlayer) GrantPermission(node string) {
	p.permissions[node] = struct{}{}
}

// RevokePermission removes a granted permission node.
func (p *SkilledPlayer) RevokePermission(node string) {
	delete(p.permissions, node)
}

// HasSkill reports whether the player unlocked the skill with the
// given alias, case-insensitively.
func (p *SkilledPlayer) HasSkill(alias string) bool {
	_, ok := p.skill(alias)
	return ok
}

// SkillRecord returns the unlock record for the given alias.
func (p *SkilledPlayer) SkillRecord(alias string) (*PlayerSkill, bool) {
	return p.skill(alias)
}

func (p *SkilledPlayer) skill(alias string) (*PlayerSkill, bool) {
	for _, ps := range p.skills {
		if strings.EqualFold(ps.Alias(), alias) {
			return ps, true
		}
	}
	return nil, false
}

// AddSkill records the skill as unlocked and returns the record.
// Adding an already unlocked alias returns the existing record.
func (p *SkilledPlayer) AddSkill(alias string) *PlayerSkill {
	if existing, ok := p.skill(alias); ok {
		return existing
	}
	ps := NewPlayerSkill(p.id, alias)
	p.skills = append(p.skills, ps)
	return ps
}

// RemoveSkill drops the unlock record for the alias and unassigns any
// slot hosting it.
func (p *SkilledPlayer) RemoveSkill(alias string) {
	ps, ok := p.skill(alias)
	if !ok {
		return
	}
	for _, slot := range p.slots {
		if hosted, hostedOK := slot.Skill(); hostedOK && hosted.ID() == ps.ID() {
			slot.Unassign()
		}
	}
	kept := p.skills[:0]
	for _, s := range p.skills {
		if s.ID() != ps.ID() {
			kept = append(kept, s)
		}
	}
	p.skills = kept
}

// Skills returns the unlock records in acquisition order.
func (p *SkilledPlayer) Skills() []*PlayerSkill {
	out := make([]*PlayerSkill, len(p.skills))
	copy(out, p.skills)
	return out
}

// AddSlot attaches a new eligible slot to the player.
func (p *SkilledPlayer) AddSlot() *SkillSlot {
	slot := NewSkillSlot()
	p.slots = append(p.slots, slot)
	return slot
}

// RemoveSlot detaches the slot with the given id, unassigning it first
// so no skill reference survives the removal.
func (p *SkilledPlayer) RemoveSlot(id uuid.UUID) bool {
	for i, slot := range p.slots {
		if slot.ID() == id {
			slot.Unassign()
			p.slots = append(p.slots[:i], p.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Slot returns the slot with the given id.
func (p *SkilledPlayer) Slot(id uuid.UUID) (*SkillSlot, bool) {
	for _, slot := range p.slots {
		if slot.ID() == id {
			return slot, true
		}
	}
	return nil, false
}

// Slots returns the player's slots sorted by status: in-use, then
// free, then eligible.
func (p *SkilledPlayer) Slots() []*SkillSlot {
	out := make([]*SkillSlot, len(p.slots))
	copy(out, p.slots)
	SortSlots(out)
	return out
}

// FreeSlot returns the first owned, unassigned slot.
func (p *SkilledPlayer) FreeSlot() (*SkillSlot, bool) {
	for _, slot := range p.slots {
		if slot.Free() {
			return slot, true
		}
	}
	return nil, false
}
