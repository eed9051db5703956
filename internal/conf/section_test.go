package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeyOrder(t *testing.T) {
	cfg, err := Parse([]byte(`
zeta: 1
alpha: 2
mid:
  b: true
  a: false
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, cfg.Keys())
	assert.Equal(t, []string{"b", "a"}, cfg.Sub("mid").Keys())
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Keys())
}

func TestParse_NonMappingRoot(t *testing.T) {
	_, err := Parse([]byte(`- a
- b`))
	require.Error(t, err)
}

func TestSection_Getters(t *testing.T) {
	cfg, err := Parse([]byte(`
type: permission
name: Test Skill
level: 5
restricted: true
with:
  permissions:
    - foobar
    - foo
`))
	require.NoError(t, err)

	assert.Equal(t, "permission", cfg.String("type"))
	assert.Equal(t, "Test Skill", cfg.String("name"))
	assert.Equal(t, 5, cfg.IntOr("level", 0))
	assert.Equal(t, 42, cfg.IntOr("missing", 42))
	assert.True(t, cfg.BoolOr("restricted", false))
	assert.False(t, cfg.BoolOr("missing", false))
	assert.Equal(t, []string{"foobar", "foo"}, cfg.StringSlice("with.permissions"))
	assert.True(t, cfg.Has("with.permissions"))
	assert.False(t, cfg.Has("with.nope"))
}

func TestSection_SetCreatesNestedSections(t *testing.T) {
	cfg := New()
	cfg.Set("type", "none")
	cfg.Set("skills.child1.name", "Child")
	cfg.Set("skills.child1.skills.child2.name", "Grandchild")

	require.NotNil(t, cfg.Sub("skills"))
	assert.Equal(t, "Child", cfg.String("skills.child1.name"))
	assert.Equal(t, "Grandchild", cfg.Sub("skills.child1.skills.child2").String("name"))
	assert.Equal(t, []string{"child1"}, cfg.Sub("skills").Keys())
}

func TestSection_StringSliceFromScalar(t *testing.T) {
	cfg := New()
	cfg.Set("permissions", "single.node")

	assert.Equal(t, []string{"single.node"}, cfg.StringSlice("permissions"))
}

func TestSection_Flatten(t *testing.T) {
	cfg := New()
	cfg.Set("type", "permission")
	cfg.Set("with.permissions", []any{"foobar", "foo"})
	cfg.Set("skills.child1.name", "Child")

	flat := cfg.Flatten("skills")

	assert.Contains(t, flat, "with.permissions")
	assert.NotContains(t, flat, "with")
	assert.NotContains(t, flat, "skills")
	assert.NotContains(t, flat, "skills.child1.name")
	assert.Equal(t, "permission", flat["type"])
}

func TestSection_FlattenSkipsAtEveryLevel(t *testing.T) {
	cfg := New()
	cfg.Set("skills.child1.cost", 3)
	cfg.Set("nested.skills.deep", 1)
	cfg.Set("nested.kept", 2)

	flat := cfg.Flatten("skills")

	assert.NotContains(t, flat, "nested.skills.deep")
	assert.Equal(t, 2, flat["nested.kept"])
}

func TestSection_SubNilSafe(t *testing.T) {
	var s *Section
	assert.Nil(t, s.Sub("anything"))
	assert.Empty(t, s.Keys())
	assert.False(t, s.Has("anything"))
}
