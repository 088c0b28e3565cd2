package templify

import (
	"fmt"
	"strings"
)

// Entry is one extracted value keyed by its generated name.
type Entry struct {
	Category string `json:"category,omitempty"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// Group is an ordered name to value mapping for one category.
// Entries keep generation order so stores serialize deterministically.
type Group struct {
	// Name is the store key of the group (e.g. "text_variables").
	Name string `json:"name"`

	// Category is the category ID. Empty for groups loaded from a store.
	Category string `json:"category,omitempty"`

	Entries []Entry `json:"entries"`
}

// Add appends an entry to the group.
func (g *Group) Add(name, value string) {
	g.Entries = append(g.Entries, Entry{Category: g.Category, Name: name, Value: value})
}

// Get returns the value stored under name.
func (g *Group) Get(name string) (string, bool) {
	for _, e := range g.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries in the group.
func (g *Group) Len() int {
	return len(g.Entries)
}

// Result is the outcome of one extraction run.
type Result struct {
	// Template is the serialized document with placeholders embedded.
	Template string

	// Groups holds one group per configured category, in configuration order.
	Groups []*Group
}

// Group returns the group with the given store name, or nil.
func (r *Result) Group(name string) *Group {
	for _, g := range r.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// EntryCount returns the number of entries across all groups.
func (r *Result) EntryCount() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Len()
	}
	return n
}

// Extractor converts an HTML document into a template and its variable groups.
type Extractor interface {
	// Extract parses html, replaces text and configured attributes with
	// placeholders and returns the serialized template with the extracted values.
	// Malformed markup is recovered, never rejected.
	Extract(html string) (*Result, error)
}

// VariableStore encodes and decodes variable groups.
// Encoding is deterministic: the same groups always produce the same bytes.
type VariableStore interface {
	MarshalGroups(groups []*Group) ([]byte, error)

	// UnmarshalGroups decodes groups in the order they appear in data.
	// Returns EINVALID if data is not a valid store.
	UnmarshalGroups(data []byte) ([]*Group, error)
}

// VariableName builds the name of the n-th variable with the given prefix.
func VariableName(prefix string, n int) string {
	return fmt.Sprintf("%s_%d", prefix, n)
}

// Placeholder returns the template marker for a variable name.
func Placeholder(name string) string {
	return "{{ " + name + " }}"
}

// EscapeQuotes backslash-escapes double quotes in extracted text.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// UnescapeQuotes reverses EscapeQuotes.
func UnescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}
