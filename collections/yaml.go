package collections

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlFormat encodes the array form as a YAML document. Entries become
// mappings in key order; integer keys are tagged !!int so they read back as
// integers.
type yamlFormat struct{}

func (yamlFormat) Encode(array any, opts FormatOptions) (any, error) {
	node, err := yamlNode(array)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent := opts.IntValue("indent"); indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, "yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "yaml")
	}
	return buf.String(), nil
}

func (yamlFormat) Decode(data any, _ FormatOptions) (any, error) {
	b, err := readData(data)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrap(err, "yaml")
	}
	v, err := fromYAMLNode(&doc)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return []any{}, nil
	}
	return v, nil
}

func yamlNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case Entries:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range x {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.First.String()}
			if e.First.IsInt() {
				key.Tag = "!!int"
			}
			val, err := yamlNode(e.Second)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", e.First.String())
			}
			n.Content = append(n.Content, key, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			val, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	case Arrayer:
		return yamlNode(x.ToArray())
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		out := make(Entries, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{First: StringKey(n.Content[i].Value), Second: v})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "yaml")
	}
	return v, nil
}

// MarshalYAML encodes the entries as an ordered YAML mapping.
func (e Entries) MarshalYAML() (any, error) {
	return yamlNode(e)
}

// MarshalYAML implements yaml.Marshaler using the collection's array form.
func (c *Collection[T]) MarshalYAML() (any, error) {
	return yamlNode(c.ToArray())
}
