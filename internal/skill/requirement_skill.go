package skill

import (
	"fmt"

	"github.com/udisondev/skillforge/internal/conf"
)

// RequirementSkill is the type identifier of SkillRequirement.
const RequirementSkill = "skill"

// Resolver looks up configured skills by alias or bare name.
// The Manager is the canonical implementation.
type Resolver interface {
	FindByAliasOrName(name string) (*ConfiguredSkill, bool)
}

// SkillRequirement passes when the subject has unlocked the referenced
// skill. The prerequisite is stored as an alias and resolved through the
// hierarchy at test time, so a configuration reload never leaves stale
// object references behind.
type SkillRequirement struct {
	baseRequirement
	skills Resolver
	alias  string
}

// newSkillRequirement builds an already loaded, hidden requirement
// pointing at the given alias. Used for the implicit parent prerequisite
// of nested skills.
func newSkillRequirement(skills Resolver, alias string) *SkillRequirement {
	return &SkillRequirement{
		baseRequirement: baseRequirement{typ: RequirementSkill, name: "Skill", hidden: true},
		skills:          skills,
		alias:           alias,
	}
}

// SkillAlias returns the alias of the prerequisite skill.
func (r *SkillRequirement) SkillAlias() string {
	return r.alias
}

// Skill resolves the prerequisite through the hierarchy.
func (r *SkillRequirement) Skill() (*ConfiguredSkill, bool) {
	return r.skills.FindByAliasOrName(r.alias)
}

// Load reads the "skill" key from the section.
func (r *SkillRequirement) Load(cfg *conf.Section) error {
	r.loadBase(cfg, RequirementSkill, "Skill")
	r.alias = cfg.String("skill")
	return nil
}

// Test checks that the subject has unlocked the prerequisite skill.
func (r *SkillRequirement) Test(s Subject) TestResult {
	if s.HasSkill(r.alias) {
		return TestSuccess()
	}
	name := r.alias
	if prereq, ok := r.Skill(); ok {
		name = prereq.Name()
	}
	return TestFailure(fmt.Sprintf("requires the %s skill", name))
}
