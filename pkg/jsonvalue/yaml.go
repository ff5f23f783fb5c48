package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document into a Value. Mapping order is kept as
// written; anchors and aliases are expanded in place, and merge keys (<<) fold
// the referenced mappings in without overriding keys the mapping sets itself.
// Numbers are rewritten in JSON notation (0x1F becomes 31).
func ParseYAML(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmpty
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("jsonvalue: invalid yaml: %w", err)
	}
	if doc.Kind == 0 {
		return Value{}, ErrEmpty
	}
	conv := yamlConverter{active: make(map[*yaml.Node]struct{})}
	return conv.convert(&doc)
}

type yamlConverter struct {
	active map[*yaml.Node]struct{}
}

func (c yamlConverter) convert(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return c.convert(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return Null(), nil
		}
		if _, seen := c.active[node.Alias]; seen {
			return Value{}, fmt.Errorf("jsonvalue: yaml alias %q at line %d is recursive", node.Value, node.Line)
		}
		c.active[node.Alias] = struct{}{}
		defer delete(c.active, node.Alias)
		return c.convert(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := c.convert(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: KindArray, items: items}, nil
	case yaml.MappingNode:
		if len(node.Content)%2 != 0 {
			return Value{}, fmt.Errorf("jsonvalue: yaml mapping at line %d is unbalanced", node.Line)
		}
		fields := orderedmap.New[string, Value](len(node.Content) / 2)
		for i := 0; i < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.ShortTag() == "!!merge" {
				if err := c.merge(fields, val); err != nil {
					return Value{}, err
				}
				continue
			}
			child, err := c.convert(val)
			if err != nil {
				return Value{}, err
			}
			fields.Set(key.Value, child)
		}
		return Value{kind: KindObject, fields: fields}, nil
	case yaml.ScalarNode:
		return convertScalar(node)
	default:
		return Value{}, errors.New("jsonvalue: unsupported yaml node")
	}
}

// merge copies the members of a mapping, or of each mapping in a sequence,
// into fields. Keys already present win, so explicit keys and earlier
// sources take precedence.
func (c yamlConverter) merge(fields *orderedmap.OrderedMap[string, Value], node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		for _, source := range node.Content {
			if err := c.merge(fields, source); err != nil {
				return err
			}
		}
		return nil
	}
	source, err := c.convert(node)
	if err != nil {
		return err
	}
	if source.kind != KindObject {
		return fmt.Errorf("jsonvalue: yaml merge at line %d needs a mapping", node.Line)
	}
	for pair := source.fields.Oldest(); pair != nil; pair = pair.Next() {
		if _, exists := fields.Get(pair.Key); !exists {
			fields.Set(pair.Key, pair.Value)
		}
	}
	return nil
}

func convertScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("jsonvalue: yaml bool at line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Number(node.Value), nil
		}
		return Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			// .inf and .nan have no JSON number form.
			return String(node.Value), nil
		}
		return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return String(node.Value), nil
	}
}
