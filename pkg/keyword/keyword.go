// Package keyword assigns a coin category to free text by case-insensitive keyword matching.
// Categories are evaluated in declaration order and the first one with a hit wins.
package keyword

import (
	"fmt"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Category is a label with the keywords that select it
type Category struct {
	Name     string
	Keywords []string
}

// Map is an ordered category -> keywords mapping. In YAML it's written as a plain mapping,
// the order of keys in the document is the classification order.
type Map []Category

// UnmarshalYAML decodes a mapping node keeping the key order
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("keywords: expected mapping, got %s", nodeKind(node))
	}
	res := make(Map, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("keywords: decode category name: %w", err)
		}
		var kws []string
		if err := node.Content[i+1].Decode(&kws); err != nil {
			return fmt.Errorf("keywords: decode %s: %w", name, err)
		}
		res = append(res, Category{Name: name, Keywords: kws})
	}
	*m = res
	return nil
}

// MarshalYAML encodes the map back to an ordered mapping node
func (m Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range m {
		var kws yaml.Node
		if err := kws.Encode(c.Keywords); err != nil {
			return nil, fmt.Errorf("keywords: encode %s: %w", c.Name, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c.Name}, &kws)
	}
	return node, nil
}

// JSONSchema describes the YAML shape rather than the Go slice
func (Map) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Category to keyword list mapping, first matching category wins",
		AdditionalProperties: &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
	}
}

// Names returns category names in declaration order
func (m Map) Names() []string {
	res := make([]string, len(m))
	for i, c := range m {
		res[i] = c.Name
	}
	return res
}

// Classifier matches text against a Map. It's immutable after construction and safe for concurrent use.
type Classifier struct {
	categories []string
	owners     []int // normalized keyword index -> index of the first category declaring it
	matcher    *ahocorasick.Matcher
}

// NewClassifier builds a single automaton over all keywords of the map.
// Empty keywords are ignored, a keyword shared by several categories belongs to the first one.
func NewClassifier(m Map) *Classifier {
	c := &Classifier{categories: m.Names()}

	seen := make(map[string]bool)
	var dict []string
	for ci, cat := range m {
		for _, kw := range cat.Keywords {
			norm := strings.ToLower(strings.TrimSpace(kw))
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			dict = append(dict, norm)
			c.owners = append(c.owners, ci)
		}
	}

	if len(dict) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(dict)
	}
	return c
}

// Classify returns the first declared category with any keyword occurring in text
func (c *Classifier) Classify(text string) (string, bool) {
	if c.matcher == nil || text == "" {
		return "", false
	}

	best := -1
	for _, hit := range c.matcher.MatchThreadSafe([]byte(strings.ToLower(text))) {
		if hit < 0 || hit >= len(c.owners) {
			continue
		}
		if owner := c.owners[hit]; best == -1 || owner < best {
			best = owner
		}
	}
	if best == -1 {
		return "", false
	}
	return c.categories[best], true
}

// Classify is a convenience wrapper building a one-off classifier for m
func Classify(text string, m Map) (string, bool) {
	return NewClassifier(m).Classify(text)
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "mapping"
	}
}
