package jas

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option is a raw type or field option node. The concrete type is one of
// BareOption, PairOption, or UnknownOption.
type Option interface {
	isOption()
}

// BareOption is a single word such as "optional" or an ArrayOf element type.
type BareOption struct {
	Name string
}

// PairOption is a keyword followed by its arguments, e.g. PATTERN with the
// pattern characters or ".&" with a field name.
type PairOption struct {
	Head string
	Args []string
}

// UnknownOption keeps a node whose shape the decoder did not recognise.
type UnknownOption struct {
	Raw any
}

func (BareOption) isOption()    {}
func (PairOption) isOption()    {}
func (UnknownOption) isOption() {}

// Arg returns the arguments joined without separators.
func (p PairOption) Arg() string {
	n := 0
	for _, a := range p.Args {
		n += len(a)
	}
	out := make([]byte, 0, n)
	for _, a := range p.Args {
		out = append(out, a...)
	}
	return string(out)
}

func (o UnknownOption) String() string {
	return fmt.Sprint(o.Raw)
}

// OptionList is the sequence of option nodes attached to a type or field.
type OptionList []Option

// UnmarshalJSON decodes strings into BareOption, [head, args] arrays into
// PairOption, and anything else into UnknownOption.
func (l *OptionList) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("jas: options must be a list: %w", err)
	}
	out := make(OptionList, 0, len(items))
	for _, raw := range items {
		out = append(out, decodeJSONOption(raw))
	}
	*l = out
	return nil
}

func decodeJSONOption(raw json.RawMessage) Option {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return BareOption{Name: name}
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err == nil && len(parts) >= 2 {
		var head string
		if err := json.Unmarshal(parts[0], &head); err == nil {
			if args, ok := jsonArgs(parts[1:]); ok {
				return PairOption{Head: head, Args: args}
			}
		}
	}
	var value any
	_ = json.Unmarshal(raw, &value)
	return UnknownOption{Raw: value}
}

func jsonArgs(parts []json.RawMessage) ([]string, bool) {
	var args []string
	for _, part := range parts {
		var s string
		if err := json.Unmarshal(part, &s); err == nil {
			args = append(args, s)
			continue
		}
		var list []string
		if err := json.Unmarshal(part, &list); err != nil {
			return nil, false
		}
		args = append(args, list...)
	}
	return args, true
}

// MarshalJSON writes the list in the shape UnmarshalJSON accepts.
func (l OptionList) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(l))
	for _, o := range l {
		switch v := o.(type) {
		case BareOption:
			out = append(out, v.Name)
		case PairOption:
			if len(v.Args) == 1 {
				out = append(out, []any{v.Head, v.Args[0]})
			} else {
				out = append(out, []any{v.Head, v.Args})
			}
		case UnknownOption:
			out = append(out, v.Raw)
		default:
			return nil, errors.New("jas: unsupported option node")
		}
	}
	return json.Marshal(out)
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (l *OptionList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("jas: options must be a list (line %d)", node.Line)
	}
	out := make(OptionList, 0, len(node.Content))
	for _, child := range node.Content {
		out = append(out, decodeYAMLOption(child))
	}
	*l = out
	return nil
}

func decodeYAMLOption(node *yaml.Node) Option {
	switch node.Kind {
	case yaml.ScalarNode:
		return BareOption{Name: node.Value}
	case yaml.SequenceNode:
		if len(node.Content) >= 2 && node.Content[0].Kind == yaml.ScalarNode {
			if args, ok := yamlArgs(node.Content[1:]); ok {
				return PairOption{Head: node.Content[0].Value, Args: args}
			}
		}
	}
	var value any
	_ = node.Decode(&value)
	return UnknownOption{Raw: value}
}

func yamlArgs(nodes []*yaml.Node) ([]string, bool) {
	var args []string
	for _, n := range nodes {
		switch n.Kind {
		case yaml.ScalarNode:
			args = append(args, n.Value)
		case yaml.SequenceNode:
			for _, c := range n.Content {
				if c.Kind != yaml.ScalarNode {
					return nil, false
				}
				args = append(args, c.Value)
			}
		default:
			return nil, false
		}
	}
	return args, true
}
