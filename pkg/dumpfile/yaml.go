package dumpfile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML dump from path into the same value shapes
// LoadJSON produces: ordered maps for mappings, []any for sequences,
// float64 numbers. An empty document decodes to nil.
func LoadYAML(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		node = doc.Content[0]
	}
	if node.Kind == 0 {
		return nil, nil
	}
	v, err := fromYAMLNode(node)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return v, nil
}

func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		// Content holds alternating key/value pairs
		obj := sequencedmap.New[string, any]()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, el := range n.Content {
			v, err := fromYAMLNode(el)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

func fromYAMLScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("bad bool %q at line %d", n.Value, n.Line)
		}
		return b, nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q at line %d", n.Value, n.Line)
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
