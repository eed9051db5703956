package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillforge/internal/conf"
	"github.com/udisondev/skillforge/internal/skill"
	"github.com/udisondev/skillforge/internal/testutil"
)

func loadFixtureSkills(t *testing.T) *skill.Manager {
	t.Helper()
	m := skill.NewManager().RegisterDefaults()

	cfg := conf.New()
	cfg.Set("type", "permission")
	cfg.Set("name", "Fireball")
	cfg.Set("level", 3)
	cfg.Set("restricted", true)
	cfg.Set("with.permissions", []any{"cast.fireball"})
	cfg.Set("skills.improved.type", "none")
	cfg.Set("skills.improved.name", "Improved Fireball")
	_, ok := m.LoadSkill("fireball", cfg)
	require.True(t, ok)

	return m
}

func TestSkillRepository_ReplaceAllAndLoadAll(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewSkillRepository(pool)
	ctx := context.Background()
	m := loadFixtureSkills(t)

	require.NoError(t, repo.ReplaceAll(ctx, m.Hierarchy().All()))

	records, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered by alias: fireball before fireball:improved.
	root := records[0]
	assert.Equal(t, "fireball", root.Alias)
	assert.Equal(t, "", root.ParentAlias)
	assert.Equal(t, "permission", root.Type)
	assert.Equal(t, "Fireball", root.Name)
	assert.Equal(t, 3, root.Level)
	assert.False(t, root.Hidden)
	assert.True(t, root.Restricted)
	assert.Contains(t, root.Config, "with.permissions")
	assert.NotContains(t, root.Config, "skills")

	child := records[1]
	assert.Equal(t, "fireball:improved", child.Alias)
	assert.Equal(t, "fireball", child.ParentAlias)
	assert.Equal(t, "improved", child.Identifier)
	assert.True(t, child.Hidden)
}

func TestSkillRepository_ReplaceAllIsWholesale(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewSkillRepository(pool)
	ctx := context.Background()
	m := loadFixtureSkills(t)

	require.NoError(t, repo.ReplaceAll(ctx, m.Hierarchy().All()))

	// A second load with fewer skills removes the stale rows.
	m2 := skill.NewManager().RegisterDefaults()
	cfg := conf.New()
	cfg.Set("type", "none")
	_, ok := m2.LoadSkill("frost", cfg)
	require.True(t, ok)

	require.NoError(t, repo.ReplaceAll(ctx, m2.Hierarchy().All()))

	records, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "frost", records[0].Alias)
}
