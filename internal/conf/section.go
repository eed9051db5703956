// Package conf provides the hierarchical configuration sections that skill
// and requirement definitions are loaded from.
//
// Sections are backed by YAML documents. Key iteration order is the document
// order, so loaders that walk a section behave deterministically.
package conf

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathSeparator joins nested keys in dotted paths ("with.permissions").
const PathSeparator = "."

// Section is one node of a hierarchical configuration document.
// Values are scalars, []any sequences, or nested *Section mappings.
type Section struct {
	keys   []string
	values map[string]any
}

// New returns an empty section. Populate it with Set; used mostly by tests
// and by callers that build configuration programmatically.
func New() *Section {
	return &Section{values: make(map[string]any)}
}

// Parse decodes a YAML document into a Section.
// The top level must be a mapping.
func Parse(data []byte) (*Section, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return New(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at document root, got %v", root.Kind)
	}
	return fromMapping(root)
}

func fromMapping(node *yaml.Node) (*Section, error) {
	s := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		val, err := fromNode(valNode)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		s.put(keyNode.Value, val)
	}
	return s, nil
}

func fromNode(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		return fromMapping(node)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding scalar: %w", err)
		}
		return v, nil
	}
}

// put sets a direct (non-dotted) key preserving first-seen order.
func (s *Section) put(key string, value any) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Set stores a value under a dotted path, creating intermediate sections
// as needed. An existing non-section value on the path is replaced.
func (s *Section) Set(path string, value any) {
	parts := strings.Split(path, PathSeparator)
	cur := s
	for _, part := range parts[:len(parts)-1] {
		sub, ok := cur.values[part].(*Section)
		if !ok {
			sub = New()
			cur.put(part, sub)
		}
		cur = sub
	}
	cur.put(parts[len(parts)-1], value)
}

// Keys returns the direct child keys in document order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// get resolves a dotted path to its raw value.
func (s *Section) get(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	parts := strings.Split(path, PathSeparator)
	cur := s
	for i, part := range parts {
		v, ok := cur.values[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		cur, ok = v.(*Section)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// Has reports whether the dotted path is present.
func (s *Section) Has(path string) bool {
	_, ok := s.get(path)
	return ok
}

// Sub returns the nested section at the dotted path, or nil if the path is
// absent or does not hold a mapping.
func (s *Section) Sub(path string) *Section {
	v, ok := s.get(path)
	if !ok {
		return nil
	}
	sub, _ := v.(*Section)
	return sub
}

// String returns the string value at path, or "" when absent.
// Non-string scalars are rendered with fmt.
func (s *Section) String(path string) string {
	v, ok := s.get(path)
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	switch v.(type) {
	case *Section, []any:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// IntOr returns the integer value at path, or def when absent or not a number.
func (s *Section) IntOr(path string, def int) int {
	v, ok := s.get(path)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// BoolOr returns the boolean value at path, or def when absent or not a bool.
func (s *Section) BoolOr(path string, def bool) bool {
	v, ok := s.get(path)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// StringSlice returns the list value at path as strings.
// A single scalar value is returned as a one-element slice.
func (s *Section) StringSlice(path string) []string {
	v, ok := s.get(path)
	if !ok || v == nil {
		return nil
	}
	switch items := v.(type) {
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case *Section:
		return nil
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// Flatten returns a snapshot of the section with nested mapping keys joined
// by dots, so only leaf scalars and lists remain. Subtrees named in skip are
// excluded at every nesting level.
func (s *Section) Flatten(skip ...string) map[string]any {
	out := make(map[string]any)
	if s == nil {
		return out
	}
	skipSet := make(map[string]bool, len(skip))
	for _, k := range skip {
		skipSet[k] = true
	}
	s.flattenInto(out, "", skipSet)
	return out
}

func (s *Section) flattenInto(out map[string]any, prefix string, skip map[string]bool) {
	for _, key := range s.keys {
		if skip[key] {
			continue
		}
		full := key
		if prefix != "" {
			full = prefix + PathSeparator + key
		}
		switch v := s.values[key].(type) {
		case *Section:
			v.flattenInto(out, full, skip)
		default:
			out[full] = v
		}
	}
}
