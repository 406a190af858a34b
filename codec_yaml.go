// FILE: lixenwraith/iniconf/codec_yaml.go
package iniconf

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlNullTag = "!!null"
	yamlStrTag  = "!!str"
)

// decodeYAML maps top-level mapping entries to sections. Decoding through
// yaml.Node keeps document order.
func decodeYAML(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	tree := NewTree()
	if len(doc.Content) == 0 {
		return tree, nil
	}

	root := resolveAlias(doc.Content[0])
	if isYAMLNull(root) {
		return tree, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping, got line %d", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		val := resolveAlias(root.Content[i+1])
		sec := tree.Ensure(name)

		switch {
		case isYAMLNull(val):
		case val.Kind == yaml.MappingNode:
			if err := flattenYAML(sec, "", val); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("top-level key %q is not a mapping (line %d)", name, val.Line)
		}
	}
	return tree, nil
}

func flattenYAML(sec *Section, prefix string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := prefix + node.Content[i].Value
		val := resolveAlias(node.Content[i+1])

		switch val.Kind {
		case yaml.MappingNode:
			if err := flattenYAML(sec, key+".", val); err != nil {
				return err
			}
		case yaml.SequenceNode:
			items := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				item = resolveAlias(item)
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("key %q: nested collections in sequences are not supported (line %d)", Path(sec.Name(), key), item.Line)
				}
				items = append(items, item.Value)
			}
			sec.Set(key, strings.Join(items, ","))
		default:
			if isYAMLNull(val) {
				sec.Set(key, "")
			} else {
				sec.Set(key, val.Value)
			}
		}
	}
	return nil
}

func encodeYAML(tree *Tree) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	tree.Range(func(sec *Section) bool {
		m := &yaml.Node{Kind: yaml.MappingNode}
		sec.Range(func(key, value string) bool {
			m.Content = append(m.Content, yamlString(key), yamlString(value))
			return true
		})
		root.Content = append(root.Content, yamlString(sec.Name()), m)
		return true
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: s}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == yamlNullTag
}
