// Package jas describes the syntax tree produced by the external JAS grammar
// and the documents that carry it. The compiler in internal/compiler turns an
// AST into the canonical schema model.
package jas

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AST is the root node: module metadata entries and type definitions.
type AST struct {
	Metas []Meta     `json:"metas" yaml:"metas"`
	Types []TypeNode `json:"types" yaml:"types"`
}

// Meta is one "key: value tokens" header line.
type Meta struct {
	Key string   `json:"key" yaml:"key"`
	Val []string `json:"val" yaml:"val"`
}

// TypeNode is one type assignment. F is nil for types written without a
// field block.
type TypeNode struct {
	Name  string      `json:"name" yaml:"name"`
	Type  string      `json:"type" yaml:"type"`
	TOpts OptionList  `json:"topts,omitempty" yaml:"topts,omitempty"`
	TD1   string      `json:"td1,omitempty" yaml:"td1,omitempty"`
	F     *FieldBlock `json:"f,omitempty" yaml:"f,omitempty"`
}

// FieldBlock holds the braced field list and the description written inside
// the opening brace.
type FieldBlock struct {
	TD2    string      `json:"td2,omitempty" yaml:"td2,omitempty"`
	Fields []FieldNode `json:"fields" yaml:"fields"`
}

// FieldNode is one field or enumerated item. FD1 is the comment text the
// parser found before the field and FD2 the text after it.
type FieldNode struct {
	Tag   *TagToken  `json:"tag,omitempty" yaml:"tag,omitempty"`
	Name  string     `json:"name" yaml:"name"`
	Type  string     `json:"type,omitempty" yaml:"type,omitempty"`
	FOpts OptionList `json:"fopts,omitempty" yaml:"fopts,omitempty"`
	FD1   string     `json:"fd1,omitempty" yaml:"fd1,omitempty"`
	FD2   string     `json:"fd2,omitempty" yaml:"fd2,omitempty"`
}

// TagToken is the literal tag text written before a field, e.g. "(3)".
type TagToken string

// Tag returns a pointer to a tag token, handy for building trees in code.
func Tag(value string) *TagToken {
	t := TagToken(value)
	return &t
}

// UnmarshalJSON accepts both quoted and bare numeric tags.
func (t *TagToken) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TagToken(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("jas: tag must be a string or number: %w", err)
	}
	*t = TagToken(n.String())
	return nil
}

// Parse decodes a JSON or YAML syntax tree document, trying JSON first.
func Parse(data []byte, source string) (AST, error) {
	return ParseEncoded(data, source, EncodingUnknown)
}

// ParseEncoded decodes data with the decoder named by enc. An unknown
// encoding tries JSON and then YAML.
func ParseEncoded(data []byte, source string, enc Encoding) (AST, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return AST{}, fmt.Errorf("jas: document %s is empty", source)
	}

	var (
		tree AST
		err  error
	)
	switch enc {
	case EncodingJSON:
		err = json.Unmarshal(data, &tree)
	case EncodingYAML:
		err = yaml.Unmarshal(data, &tree)
	default:
		if jsonErr := json.Unmarshal(data, &tree); jsonErr != nil {
			tree = AST{}
			if yamlErr := yaml.Unmarshal(data, &tree); yamlErr != nil {
				err = errors.Join(jsonErr, yamlErr)
			}
		}
	}
	if err != nil {
		return AST{}, fmt.Errorf("jas: parse %s: %w", source, err)
	}
	if err := tree.Validate(); err != nil {
		return AST{}, fmt.Errorf("jas: document %s: %w", source, err)
	}
	return tree, nil
}

// Validate checks the minimum node shape the compiler relies on.
func (a AST) Validate() error {
	for i, m := range a.Metas {
		if strings.TrimSpace(m.Key) == "" {
			return fmt.Errorf("meta entry %d has an empty key", i)
		}
	}
	for i, t := range a.Types {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("type node %d has an empty name", i)
		}
		if strings.TrimSpace(t.Type) == "" {
			return fmt.Errorf("type %s has an empty base type", t.Name)
		}
		if t.F == nil {
			continue
		}
		for j, f := range t.F.Fields {
			if strings.TrimSpace(f.Name) == "" {
				return fmt.Errorf("type %s field %d has an empty name", t.Name, j)
			}
		}
	}
	return nil
}
