package player

import (
	"time"

	"github.com/google/uuid"
)

// PlayerSkill is the join record between a player and an unlocked
// skill, identified by the skill's fully qualified alias.
type PlayerSkill struct {
	id         uuid.UUID
	playerID   uuid.UUID
	alias      string
	acquiredAt time.Time
}

// NewPlayerSkill creates an unlock record acquired now.
func NewPlayerSkill(playerID uuid.UUID, alias string) *PlayerSkill {
	return &PlayerSkill{
		id:         uuid.New(),
		playerID:   playerID,
		alias:      alias,
		acquiredAt: time.Now(),
	}
}

// RestorePlayerSkill rebuilds an unlock record from persisted state.
func RestorePlayerSkill(id, playerID uuid.UUID, alias string, acquiredAt time.Time) *PlayerSkill {
	return &PlayerSkill{id: id, playerID: playerID, alias: alias, acquiredAt: acquiredAt}
}

// ID returns the record identity.
func (p *PlayerSkill) ID() uuid.UUID { return p.id }

// PlayerID returns the owning player's identity.
func (p *PlayerSkill) PlayerID() uuid.UUID { return p.playerID }

// Alias returns the fully qualified alias of the unlocked skill.
func (p *PlayerSkill) Alias() string { return p.alias }

// AcquiredAt returns when the skill was unlocked.
func (p *PlayerSkill) AcquiredAt() time.Time { return p.acquiredAt }
