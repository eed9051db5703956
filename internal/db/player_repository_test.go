package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillforge/internal/player"
	"github.com/udisondev/skillforge/internal/testutil"
)

func TestPlayerRepository_FindPlayerMissing(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewPlayerRepository(pool)

	p, err := repo.FindPlayer(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPlayerRepository_RoundTrip(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewPlayerRepository(pool)
	ctx := context.Background()

	p := player.New(uuid.New(), "tester")
	p.SetLevel(7)
	fireball := p.AddSkill("fireball")
	p.AddSkill("parent:child1")
	slot := p.AddSlot()
	slot.Assign(fireball)
	p.AddSlot()

	require.NoError(t, repo.SavePlayer(ctx, p))

	loaded, err := repo.FindPlayer(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, p.ID(), loaded.ID())
	assert.Equal(t, "tester", loaded.Name())
	assert.Equal(t, 7, loaded.Level())
	assert.True(t, loaded.HasSkill("fireball"))
	assert.True(t, loaded.HasSkill("parent:child1"))
	require.Len(t, loaded.Slots(), 2)

	// Slots come back sorted by status, the in-use one first, still
	// linked to its skill record.
	slots := loaded.Slots()
	assert.Equal(t, player.StatusInUse, slots[0].Status())
	hosted, ok := slots[0].Skill()
	require.True(t, ok)
	assert.Equal(t, fireball.ID(), hosted.ID())
	assert.Equal(t, "fireball", hosted.Alias())
	assert.Equal(t, player.StatusEligible, slots[1].Status())
}

func TestPlayerRepository_SaveIsUpsert(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewPlayerRepository(pool)
	ctx := context.Background()

	p := player.New(uuid.New(), "tester")
	require.NoError(t, repo.SavePlayer(ctx, p))

	p.SetLevel(3)
	p.AddSkill("fireball")
	require.NoError(t, repo.SavePlayer(ctx, p))

	loaded, err := repo.FindPlayer(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.Level())
	require.Len(t, loaded.Skills(), 1)
}

func TestPlayerRepository_DeleteSlot(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewPlayerRepository(pool)
	ctx := context.Background()

	p := player.New(uuid.New(), "tester")
	slot := p.AddSlot()
	require.NoError(t, repo.SavePlayer(ctx, p))

	require.NoError(t, repo.DeleteSlot(ctx, slot.ID()))

	loaded, err := repo.FindPlayer(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, loaded.Slots())
}
