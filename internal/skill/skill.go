// Package skill implements the type registries, the configuration driven
// loading pipeline and the parent/child hierarchy for configured skills.
package skill

import (
	"github.com/udisondev/skillforge/internal/conf"
)

// AliasSeparator joins the identifiers of nested skills into fully
// qualified aliases ("parent:child1:child2").
const AliasSeparator = ":"

// Skill is the behavior of one skill type. Implementations are selected
// through the skill type registry, populated once via Load and then
// applied to or removed from subjects as they unlock and forget skills.
type Skill interface {
	Load(cfg *conf.Section) error
	Apply(s Subject) error
	Unapply(s Subject) error
}

// ConfiguredSkill is a skill definition loaded from configuration,
// registered in the hierarchy under its alias. The parent edge is kept
// as an alias key, not a live reference.
type ConfiguredSkill struct {
	identifier   string
	alias        string
	skillType    string
	name         string
	level        int
	hidden       bool
	restricted   bool
	parent       string
	requirements []Requirement
	children     []*ConfiguredSkill
	config       map[string]any
	impl         Skill
}

// Identifier is the config key the skill was loaded under.
func (s *ConfiguredSkill) Identifier() string { return s.identifier }

// Alias is the fully qualified name of the skill. For root skills it
// equals the identifier.
func (s *ConfiguredSkill) Alias() string { return s.alias }

// Type is the registered skill type identifier.
func (s *ConfiguredSkill) Type() string { return s.skillType }

// Name is the display name.
func (s *ConfiguredSkill) Name() string { return s.name }

// Level is the level cost of the skill.
func (s *ConfiguredSkill) Level() int { return s.level }

// Hidden skills are not listed to players. Nested skills default to
// hidden unless their config overrides it.
func (s *ConfiguredSkill) Hidden() bool { return s.hidden }

// Restricted skills carry an implicit permission requirement.
func (s *ConfiguredSkill) Restricted() bool { return s.restricted }

// Parent returns the alias of the owning skill, empty for roots.
func (s *ConfiguredSkill) Parent() string { return s.parent }

// IsChild reports whether the skill is nested under a parent.
func (s *ConfiguredSkill) IsChild() bool { return s.parent != "" }

// IsParent reports whether the skill has child skills.
func (s *ConfiguredSkill) IsParent() bool { return len(s.children) > 0 }

// Children returns the loaded child skills.
func (s *ConfiguredSkill) Children() []*ConfiguredSkill { return s.children }

// Requirements returns all attached requirements, explicit and implicit.
func (s *ConfiguredSkill) Requirements() []Requirement { return s.requirements }

// Config is the flattened snapshot of the skill's configuration:
// nested keys dot-joined, the skills subtree excluded.
func (s *ConfiguredSkill) Config() map[string]any { return s.config }

// Test evaluates every attached requirement against the subject and
// returns the first failure, or success when all pass.
func (s *ConfiguredSkill) Test(sub Subject) TestResult {
	for _, req := range s.requirements {
		if result := req.Test(sub); !result.Ok() {
			return result
		}
	}
	return TestSuccess()
}

// Apply applies the underlying skill type to the subject.
func (s *ConfiguredSkill) Apply(sub Subject) error {
	return s.impl.Apply(sub)
}

// Unapply removes the underlying skill type from the subject.
func (s *ConfiguredSkill) Unapply(sub Subject) error {
	return s.impl.Unapply(sub)
}
