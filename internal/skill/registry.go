package skill

import (
	"log/slog"
	"strings"
)

// Registration binds a type identifier to the factory that creates
// instances of that type.
type Registration[T any] struct {
	Identifier string
	Factory    func() T
}

// Registry maps type identifiers to factories for one extension point.
// Identifiers are case-insensitive and unique per registry: the first
// registration for an identifier wins, later duplicates are rejected
// with an error log and the registry stays unchanged.
type Registry[T any] struct {
	kind    string
	log     *slog.Logger
	entries map[string]Registration[T]
}

// NewRegistry creates an empty registry. kind names the extension point
// ("requirement", "skill") and only shows up in log output.
func NewRegistry[T any](kind string, log *slog.Logger) *Registry[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Registry[T]{
		kind:    kind,
		log:     log,
		entries: make(map[string]Registration[T]),
	}
}

// Register adds a factory under the given identifier.
// Registration fails softly: a missing identifier, a nil factory or a
// duplicate identifier is logged and leaves the registry unchanged.
func (r *Registry[T]) Register(identifier string, factory func() T) *Registry[T] {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		r.log.Error("cannot register " + r.kind + " type without an identifier")
		return r
	}
	if factory == nil {
		r.log.Error("cannot register "+r.kind+" type without a factory", "type", id)
		return r
	}
	if _, ok := r.entries[id]; ok {
		r.log.Error("a "+r.kind+" type with the same identifier is already registered", "type", id)
		return r
	}
	r.entries[id] = Registration[T]{Identifier: id, Factory: factory}
	r.log.Info("registered "+r.kind+" type", "type", id)
	return r
}

// Unregister removes the mapping for the identifier.
// Already constructed instances are not affected.
func (r *Registry[T]) Unregister(identifier string) *Registry[T] {
	delete(r.entries, strings.ToLower(strings.TrimSpace(identifier)))
	return r
}

// Get looks up a registration by identifier, case-insensitively.
func (r *Registry[T]) Get(identifier string) (Registration[T], bool) {
	reg, ok := r.entries[strings.ToLower(strings.TrimSpace(identifier))]
	return reg, ok
}

// Len returns the number of registered types.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}
