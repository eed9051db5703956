package skill

import "strings"

// Hierarchy indexes loaded skills by fully qualified alias and, for
// root skills, by their bare identifier. Lookups are case-insensitive.
// Nested skills only resolve through their full alias since a bare
// child key is not unique across trees.
type Hierarchy struct {
	byAlias map[string]*ConfiguredSkill
	byName  map[string]*ConfiguredSkill
	order   []*ConfiguredSkill
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		byAlias: make(map[string]*ConfiguredSkill),
		byName:  make(map[string]*ConfiguredSkill),
	}
}

// Add registers the skill under its alias and, for roots, its bare
// identifier. Re-adding an alias replaces the previous entry, which is
// how a wholesale configuration reload refreshes definitions.
func (h *Hierarchy) Add(s *ConfiguredSkill) {
	alias := strings.ToLower(s.Alias())
	if _, exists := h.byAlias[alias]; !exists {
		h.order = append(h.order, s)
	} else {
		for i, old := range h.order {
			if strings.ToLower(old.Alias()) == alias {
				h.order[i] = s
				break
			}
		}
	}
	h.byAlias[alias] = s
	if !s.IsChild() {
		h.byName[strings.ToLower(s.Identifier())] = s
	}
}

// FindByAliasOrName looks up a skill by full alias first, then by the
// bare name of a root skill.
func (h *Hierarchy) FindByAliasOrName(name string) (*ConfiguredSkill, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, false
	}
	if s, ok := h.byAlias[key]; ok {
		return s, true
	}
	if s, ok := h.byName[key]; ok {
		return s, true
	}
	return nil, false
}

// All returns every registered skill in registration order.
func (h *Hierarchy) All() []*ConfiguredSkill {
	out := make([]*ConfiguredSkill, len(h.order))
	copy(out, h.order)
	return out
}

// Len returns the number of registered skills.
func (h *Hierarchy) Len() int {
	return len(h.byAlias)
}
