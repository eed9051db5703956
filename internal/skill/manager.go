package skill

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/udisondev/skillforge/internal/conf"
)

// DefaultPermissionPrefix prefixes the implicit permission node of
// restricted skills: a restricted skill "foo" requires
// "skillforge.skill.foo".
const DefaultPermissionPrefix = "skillforge.skill."

// skillsKey is the config subtree holding nested child skills.
const skillsKey = "skills"

// Manager owns the requirement and skill type registries, loads skill
// definitions from configuration and maintains the hierarchy of loaded
// skills. It is rebuilt-in-place on reload: LoadAll swaps the indexes
// wholesale, never patches them incrementally.
//
// The manager is not safe for concurrent use; it is designed for the
// single-threaded main-loop model of a game server, where loads and
// player actions run to completion one after another.
type Manager struct {
	log              *slog.Logger
	requirementTypes *Registry[Requirement]
	skillTypes       *Registry[Skill]
	hierarchy        *Hierarchy
	loadedSkills     map[string]*ConfiguredSkill
	permissionPrefix string
	inheritLevel     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used by the manager and its registries.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithPermissionPrefix overrides the permission node prefix used for
// the implicit requirement of restricted skills.
func WithPermissionPrefix(prefix string) Option {
	return func(m *Manager) { m.permissionPrefix = prefix }
}

// WithLevelInheritance controls whether a child skill that omits the
// level key inherits its parent's resolved level. Enabled by default;
// disabled, such children default to level 0.
func WithLevelInheritance(enabled bool) Option {
	return func(m *Manager) { m.inheritLevel = enabled }
}

// NewManager creates a manager with empty registries.
// Call RegisterDefaults to add the built-in requirement and skill types.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		log:              slog.Default(),
		hierarchy:        NewHierarchy(),
		loadedSkills:     make(map[string]*ConfiguredSkill),
		permissionPrefix: DefaultPermissionPrefix,
		inheritLevel:     true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.requirementTypes = NewRegistry[Requirement]("requirement", m.log)
	m.skillTypes = NewRegistry[Skill]("skill", m.log)
	return m
}

// RegisterDefaults registers the built-in requirement and skill types.
func (m *Manager) RegisterDefaults() *Manager {
	m.RegisterRequirement(RequirementPermission, func() Requirement { return &PermissionRequirement{} })
	m.RegisterRequirement(RequirementLevel, func() Requirement { return &LevelRequirement{} })
	m.RegisterRequirement(RequirementSkill, func() Requirement { return &SkillRequirement{skills: m} })
	m.RegisterSkill(SkillNone, func() Skill { return &NoneSkill{} })
	m.RegisterSkill(SkillPermission, func() Skill { return &PermissionSkill{} })
	return m
}

// RegisterRequirement registers a requirement type.
// Fails softly on duplicate or invalid registrations.
func (m *Manager) RegisterRequirement(identifier string, factory func() Requirement) *Manager {
	m.requirementTypes.Register(identifier, factory)
	return m
}

// UnregisterRequirement removes a requirement type. Requirements that
// were already loaded stay attached to their skills.
func (m *Manager) UnregisterRequirement(identifier string) *Manager {
	m.requirementTypes.Unregister(identifier)
	return m
}

// RegisterSkill registers a skill type.
// Fails softly on duplicate or invalid registrations.
func (m *Manager) RegisterSkill(identifier string, factory func() Skill) *Manager {
	m.skillTypes.Register(identifier, factory)
	return m
}

// UnregisterSkill removes a skill type. Loaded skills of that type stay
// in the hierarchy until the next reload.
func (m *Manager) UnregisterSkill(identifier string) *Manager {
	m.skillTypes.Unregister(identifier)
	return m
}

// RequirementType looks up a requirement type registration.
func (m *Manager) RequirementType(identifier string) (Registration[Requirement], bool) {
	return m.requirementTypes.Get(identifier)
}

// SkillType looks up a skill type registration.
func (m *Manager) SkillType(identifier string) (Registration[Skill], bool) {
	return m.skillTypes.Get(identifier)
}

// Hierarchy returns the index of loaded skills.
func (m *Manager) Hierarchy() *Hierarchy {
	return m.hierarchy
}

// FindByAliasOrName looks up a loaded skill by alias or root bare name.
func (m *Manager) FindByAliasOrName(name string) (*ConfiguredSkill, bool) {
	return m.hierarchy.FindByAliasOrName(name)
}

// GetSkill returns a loaded skill by its original config key.
func (m *Manager) GetSkill(identifier string) (*ConfiguredSkill, bool) {
	s, ok := m.loadedSkills[strings.ToLower(identifier)]
	return s, ok
}

// LoadRequirements creates requirements from the given config section.
// Each child key must be a section carrying a type key that matches a
// registered requirement type:
//
//	requirements:
//	  foo:
//	    type: permission
//	    permissions: [...]
//	  bar:
//	    type: skill
//	    skill: foobar
//
// Malformed entries are skipped with a log entry, the rest of the
// section still loads. A nil or empty section yields an empty list.
func (m *Manager) LoadRequirements(cfg *conf.Section) []Requirement {
	requirements := make([]Requirement, 0)
	if cfg == nil {
		return requirements
	}

	for _, key := range cfg.Keys() {
		section := cfg.Sub(key)
		if section == nil {
			continue
		}
		if !section.Has("type") {
			m.log.Error("requirement section is missing the requirement type", "requirement", key)
			continue
		}
		typ := section.String("type")
		reg, ok := m.requirementTypes.Get(typ)
		if !ok {
			m.log.Warn("unable to find the requirement type", "type", typ, "requirement", key)
			continue
		}
		requirement := reg.Factory()
		if err := requirement.Load(section); err != nil {
			m.log.Error("failed to load requirement", "type", typ, "requirement", key, "err", err)
			continue
		}
		requirements = append(requirements, requirement)
	}

	return requirements
}

// LoadSkill creates a root skill (and, recursively, its children) from
// the given config section and registers everything in the hierarchy.
// Returns false when the identifier is empty, the section is nil, the
// type key is missing or no matching skill type is registered.
func (m *Manager) LoadSkill(identifier string, cfg *conf.Section) (*ConfiguredSkill, bool) {
	return m.loadSkill(identifier, cfg, nil, make(map[string]bool))
}

func (m *Manager) loadSkill(identifier string, cfg *conf.Section, parent *ConfiguredSkill, path map[string]bool) (*ConfiguredSkill, bool) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		m.log.Error("cannot load a skill without an identifier")
		return nil, false
	}
	if cfg == nil {
		m.log.Error("cannot load skill from a nil config section", "skill", identifier)
		return nil, false
	}

	typ := cfg.String("type")
	if typ == "" {
		m.log.Error("skill config is missing the skill type", "skill", identifier)
		return nil, false
	}
	reg, ok := m.skillTypes.Get(typ)
	if !ok {
		m.log.Error("unable to find the skill type", "type", typ, "skill", identifier)
		return nil, false
	}

	impl := reg.Factory()
	if err := impl.Load(cfg); err != nil {
		m.log.Error("failed to load skill", "type", typ, "skill", identifier, "err", err)
		return nil, false
	}

	s := &ConfiguredSkill{
		identifier: identifier,
		skillType:  reg.Identifier,
		impl:       impl,
	}
	if parent != nil {
		s.parent = parent.alias
		s.alias = parent.alias + AliasSeparator + identifier
	} else {
		s.alias = identifier
	}
	s.name = cfg.String("name")
	if s.name == "" {
		s.name = identifier
	}
	switch {
	case cfg.Has("level"):
		s.level = cfg.IntOr("level", 0)
	case parent != nil && m.inheritLevel:
		s.level = parent.level
	default:
		s.level = 0
	}
	s.hidden = cfg.BoolOr("hidden", parent != nil)
	s.restricted = cfg.BoolOr("restricted", false)
	s.config = cfg.Flatten(skillsKey)

	s.requirements = m.LoadRequirements(cfg.Sub("requirements"))
	if s.level > 0 {
		s.requirements = append(s.requirements, newLevelRequirement(s.level))
	}
	if parent == nil && s.restricted {
		s.requirements = append(s.requirements, newPermissionRequirement(m.permissionPrefix+s.alias))
	}
	if parent != nil {
		s.requirements = append(s.requirements, newSkillRequirement(m, parent.alias))
	}

	if children := cfg.Sub(skillsKey); children != nil {
		path[identifier] = true
		for _, childKey := range children.Keys() {
			if path[strings.ToLower(childKey)] {
				m.log.Error("skipping child skill that would create a cycle",
					"skill", s.alias, "child", childKey)
				continue
			}
			childCfg := children.Sub(childKey)
			if childCfg == nil {
				continue
			}
			if child, ok := m.loadSkill(childKey, childCfg, s, path); ok {
				s.children = append(s.children, child)
			}
		}
		delete(path, identifier)
	}

	m.hierarchy.Add(s)
	m.loadedSkills[identifier] = s
	m.log.Info("loaded skill", "alias", s.alias, "type", s.skillType, "children", len(s.children))

	return s, true
}

// Reset drops all loaded skills and the hierarchy.
// Registered types stay untouched.
func (m *Manager) Reset() {
	m.hierarchy = NewHierarchy()
	m.loadedSkills = make(map[string]*ConfiguredSkill)
}

// LoadAll resets the manager and loads every *.yml/*.yaml file under
// root as one root skill. The identifier is taken from the file's "id"
// key when present, otherwise derived from the relative path with the
// extension stripped and separators replaced by dashes. Files that fail
// to parse or load are skipped with a log entry.
func (m *Manager) LoadAll(root string) error {
	m.Reset()

	var loaded int
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			m.log.Error("failed to read skill config", "file", path, "err", err)
			return nil
		}
		cfg, err := conf.Parse(data)
		if err != nil {
			m.log.Error("failed to parse skill config", "file", path, "err", err)
			return nil
		}

		identifier := cfg.String("id")
		if identifier == "" {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = filepath.Base(path)
			}
			rel = strings.TrimSuffix(filepath.ToSlash(rel), ext)
			identifier = strings.ReplaceAll(rel, "/", "-")
		}

		if _, ok := m.LoadSkill(identifier, cfg); ok {
			loaded++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking skill configs in %s: %w", root, err)
	}

	m.log.Info("skill configs loaded", "path", root, "skills", m.hierarchy.Len(), "files", loaded)
	return nil
}
