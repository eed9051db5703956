package skill

import (
	"fmt"

	"github.com/udisondev/skillforge/internal/conf"
)

// RequirementLevel is the type identifier of LevelRequirement.
const RequirementLevel = "level"

// LevelRequirement passes when the subject has reached a minimum level.
type LevelRequirement struct {
	baseRequirement
	level int
}

// newLevelRequirement builds an already loaded requirement for the given
// level. Used for the implicit level requirement of configured skills.
func newLevelRequirement(level int) *LevelRequirement {
	return &LevelRequirement{
		baseRequirement: baseRequirement{typ: RequirementLevel, name: "Level"},
		level:           level,
	}
}

// Level returns the minimum level.
func (r *LevelRequirement) Level() int {
	return r.level
}

// Load reads the "level" key from the section, defaulting to 1.
func (r *LevelRequirement) Load(cfg *conf.Section) error {
	r.loadBase(cfg, RequirementLevel, "Level")
	r.level = cfg.IntOr("level", 1)
	return nil
}

// Test checks the subject's level against the minimum.
func (r *LevelRequirement) Test(s Subject) TestResult {
	if s.Level() < r.level {
		return TestFailure(fmt.Sprintf("requires level %d, current level is %d", r.level, s.Level()))
	}
	return TestSuccess()
}
