package player

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SlotStatus is the state of a skill slot. The declaration order is the
// sort order: in-use and free slots come before purchasable ones.
type SlotStatus int

const (
	// StatusInUse marks a slot currently hosting a skill.
	StatusInUse SlotStatus = iota
	// StatusFree marks a slot the player owns but has not filled.
	StatusFree
	// StatusEligible marks a slot the player can still buy.
	StatusEligible
)

// String returns the persisted representation of the status.
func (s SlotStatus) String() string {
	switch s {
	case StatusInUse:
		return "IN_USE"
	case StatusFree:
		return "FREE"
	case StatusEligible:
		return "ELIGIBLE"
	default:
		return fmt.Sprintf("SlotStatus(%d)", int(s))
	}
}

// ParseSlotStatus maps a persisted status string back to its value.
func ParseSlotStatus(value string) (SlotStatus, error) {
	switch value {
	case "IN_USE":
		return StatusInUse, nil
	case "FREE":
		return StatusFree, nil
	case "ELIGIBLE":
		return StatusEligible, nil
	default:
		return StatusEligible, fmt.Errorf("unknown slot status %q", value)
	}
}

// SkillSlot is a per-player container hosting at most one unlocked
// skill. New slots start eligible; buying one frees it, assigning a
// skill puts it in use.
type SkillSlot struct {
	id     uuid.UUID
	status SlotStatus
	skill  *PlayerSkill
}

// NewSkillSlot creates an eligible slot with a fresh id.
func NewSkillSlot() *SkillSlot {
	return &SkillSlot{id: uuid.New(), status: StatusEligible}
}

// RestoreSkillSlot rebuilds a slot from persisted state.
func RestoreSkillSlot(id uuid.UUID, status SlotStatus, skill *PlayerSkill) *SkillSlot {
	return &SkillSlot{id: id, status: status, skill: skill}
}

// ID returns the slot identity.
func (s *SkillSlot) ID() uuid.UUID { return s.id }

// Status returns the current slot state.
func (s *SkillSlot) Status() SlotStatus { return s.status }

// Skill returns the hosted skill record, if any.
func (s *SkillSlot) Skill() (*PlayerSkill, bool) {
	return s.skill, s.skill != nil
}

// InUse reports whether the slot hosts a skill.
func (s *SkillSlot) InUse() bool { return s.status == StatusInUse }

// Free reports whether the slot is owned but unassigned.
func (s *SkillSlot) Free() bool { return s.status == StatusFree }

// Buyable reports whether the slot can still be bought.
func (s *SkillSlot) Buyable() bool { return s.status == StatusEligible }

// Unlock transitions a bought eligible slot to free.
// A no-op for slots that are already owned.
func (s *SkillSlot) Unlock() {
	if s.status == StatusEligible {
		s.status = StatusFree
	}
}

// Assign puts a skill into the slot, marking it in use. Assigning nil
// clears an in-use slot back to free; a slot never hosts a skill while
// eligible.
func (s *SkillSlot) Assign(skill *PlayerSkill) {
	if skill != nil {
		s.status = StatusInUse
		s.skill = skill
		return
	}
	if s.status == StatusInUse {
		s.status = StatusFree
	}
	s.skill = nil
}

// Unassign clears the hosted skill, freeing the slot.
// A no-op on slots that host nothing.
func (s *SkillSlot) Unassign() {
	if s.skill != nil {
		s.status = StatusFree
	}
	s.skill = nil
}

// Compare orders slots by status: in-use first, then free, then
// eligible.
func (s *SkillSlot) Compare(other *SkillSlot) int {
	return int(s.status) - int(other.status)
}

// SortSlots sorts slots in place by status, keeping the relative order
// of slots with equal status.
func SortSlots(slots []*SkillSlot) {
	slices.SortStableFunc(slots, (*SkillSlot).Compare)
}
