package skill

import (
	"github.com/google/uuid"

	"github.com/udisondev/skillforge/internal/conf"
)

// Subject is the thing requirements are tested against and skills are
// applied to. The progression layer implements it for skilled players;
// the host game layer can wrap its own player handle the same way.
type Subject interface {
	ID() uuid.UUID
	Name() string
	Level() int
	HasPermission(node string) bool
	HasSkill(alias string) bool
	GrantPermission(node string)
	RevokePermission(node string)
}

// Requirement is a predicate attached to a skill that must pass before
// the skill can be unlocked or assigned. Instances are created by their
// registered factory, populated once via Load and immutable afterwards.
type Requirement interface {
	// Type is the registry identifier the requirement was constructed from.
	Type() string
	// Name is the display name shown when listing requirements.
	Name() string
	// Hidden requirements are never surfaced to the player.
	Hidden() bool
	// Load populates the requirement from its config section.
	Load(cfg *conf.Section) error
	// Test evaluates the requirement against the subject.
	Test(s Subject) TestResult
}

// TestResult is the outcome of testing a requirement: success, or
// failure with a human-readable reason. There is no pending state.
type TestResult struct {
	ok     bool
	reason string
}

// TestSuccess returns a passing result.
func TestSuccess() TestResult {
	return TestResult{ok: true}
}

// TestFailure returns a failing result with the given reason.
func TestFailure(reason string) TestResult {
	return TestResult{reason: reason}
}

// Ok reports whether the test passed.
func (t TestResult) Ok() bool { return t.ok }

// Reason returns the failure reason, empty on success.
func (t TestResult) Reason() string { return t.reason }

// baseRequirement carries the fields every requirement shares.
type baseRequirement struct {
	typ    string
	name   string
	hidden bool
}

func (b *baseRequirement) Type() string { return b.typ }

func (b *baseRequirement) Name() string { return b.name }

func (b *baseRequirement) Hidden() bool { return b.hidden }

// loadBase reads the shared keys, falling back to defaultName when the
// section does not set a name.
func (b *baseRequirement) loadBase(cfg *conf.Section, typ, defaultName string) {
	b.typ = typ
	b.name = cfg.String("name")
	if b.name == "" {
		b.name = defaultName
	}
	b.hidden = cfg.BoolOr("hidden", false)
}
