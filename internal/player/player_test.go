package player

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkilledPlayer_Permissions(t *testing.T) {
	p := New(uuid.New(), "tester")

	assert.False(t, p.HasPermission("cast.fireball"))

	p.GrantPermission("cast.fireball")
	assert.True(t, p.HasPermission("cast.fireball"))

	p.RevokePermission("cast.fireball")
	assert.False(t, p.HasPermission("cast.fireball"))
}

func TestSkilledPlayer_AddSkillIsIdempotent(t *testing.T) {
	p := New(uuid.New(), "tester")

	first := p.AddSkill("fireball")
	second := p.AddSkill("FIREBALL")

	assert.Equal(t, first.ID(), second.ID())
	assert.Len(t, p.Skills(), 1)
	assert.True(t, p.HasSkill("Fireball"))
}

func TestSkilledPlayer_RemoveSkillUnassignsSlots(t *testing.T) {
	p := New(uuid.New(), "tester")
	ps := p.AddSkill("fireball")
	slot := p.AddSlot()
	slot.Assign(ps)

	p.RemoveSkill("fireball")

	assert.False(t, p.HasSkill("fireball"))
	assert.Equal(t, StatusFree, slot.Status())
	_, hosted := slot.Skill()
	assert.False(t, hosted)
}

func TestSkilledPlayer_FreeSlot(t *testing.T) {
	p := New(uuid.New(), "tester")
	_, ok := p.FreeSlot()
	assert.False(t, ok)

	eligible := p.AddSlot()
	_, ok = p.FreeSlot()
	assert.False(t, ok, "eligible slots are not owned yet")

	eligible.Unlock()
	slot, ok := p.FreeSlot()
	require.True(t, ok)
	assert.Equal(t, eligible.ID(), slot.ID())
}

func TestRestore(t *testing.T) {
	id := uuid.New()
	ps := NewPlayerSkill(id, "fireball")
	slot := RestoreSkillSlot(uuid.New(), StatusInUse, ps)

	p := Restore(id, "tester", 9, []*PlayerSkill{ps}, []*SkillSlot{slot})

	assert.Equal(t, id, p.ID())
	assert.Equal(t, 9, p.Level())
	assert.True(t, p.HasSkill("fireball"))
	require.Len(t, p.Slots(), 1)
}
