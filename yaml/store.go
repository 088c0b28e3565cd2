// Package yaml persists variable groups and configuration as YAML documents.
package yaml

import (
	"bytes"

	"github.com/fwojciec/templify"
	"gopkg.in/yaml.v3"
)

// Ensure Store implements templify.VariableStore at compile time.
var _ templify.VariableStore = (*Store)(nil)

// HeadComment is written at the top of every generated store.
const HeadComment = "Automatically generated variables for the template"

// Store encodes variable groups as a YAML mapping of group name to a mapping
// of variable name to value. Key order follows generation order.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// MarshalGroups encodes groups into a single YAML document.
func (s *Store) MarshalGroups(groups []*templify.Group) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range groups {
		values := &yaml.Node{Kind: yaml.MappingNode}
		if g.Len() == 0 {
			values.Style = yaml.FlowStyle
		}
		for _, e := range g.Entries {
			values.Content = append(values.Content, str(e.Name), str(e.Value))
		}
		root.Content = append(root.Content, str(g.Name), values)
	}
	if len(groups) == 0 {
		root.Style = yaml.FlowStyle
	}

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: HeadComment,
		Content:     []*yaml.Node{root},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGroups decodes a store. Values must be scalars; numbers and
// booleans are taken verbatim as strings and null becomes the empty string.
func (s *Store) UnmarshalGroups(data []byte) ([]*templify.Group, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, templify.Errorf(templify.EINVALID, "invalid variable store: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, templify.Errorf(templify.EINVALID, "invalid variable store: line %d: expected a mapping of groups", root.Line)
	}

	var groups []*templify.Group
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		g := &templify.Group{Name: key.Value}
		if err := decodeGroup(g, val); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func decodeGroup(g *templify.Group, n *yaml.Node) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return templify.Errorf(templify.EINVALID, "invalid variable store: line %d: group %q must be a mapping", n.Line, g.Name)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return templify.Errorf(templify.EINVALID, "invalid variable store: line %d: %s.%s must be a string", val.Line, g.Name, key.Value)
		}
		if seen[key.Value] {
			return templify.Errorf(templify.EINVALID, "invalid variable store: line %d: duplicate variable %s.%s", key.Line, g.Name, key.Value)
		}
		seen[key.Value] = true

		value := val.Value
		if isNull(val) {
			value = ""
		}
		g.Add(key.Value, value)
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
