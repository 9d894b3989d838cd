package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jadn/pkg/schema"
)

// Transformer mutates a compiled schema before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, s *schema.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, s *schema.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, s *schema.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, s)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document. Descriptions are keyed by type name, or by "Type.field" for a
// field or vocabulary item:
//
//	{
//	  "meta": {"version": "1.1"},
//	  "descriptions": {"Color": "Palette", "Color.red": "Warm tone"}
//	}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Meta         map[string]string `json:"meta" yaml:"meta"`
	Descriptions map[string]string `json:"descriptions" yaml:"descriptions"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if jsonErr := json.Unmarshal(data, &document); jsonErr != nil {
		document = presetDocument{}
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", errors.Join(jsonErr, err))
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the overrides onto s. A description keyed to a type or
// field that does not exist fails the call.
func (t *PresetTransformer) Transform(ctx context.Context, s *schema.Schema) error {
	if s == nil {
		return errors.New("preset transformer: schema is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(t.document.Meta) > 0 && s.Meta == nil {
		s.Meta = make(schema.Meta, len(t.document.Meta))
	}
	for key, value := range t.document.Meta {
		s.Meta[key] = schema.Text(value)
	}

	for path, description := range t.document.Descriptions {
		typeName, fieldName, hasField := strings.Cut(path, ".")
		td := findType(s.Types, typeName)
		if td == nil {
			return fmt.Errorf("preset transformer: type %q not found", typeName)
		}
		if !hasField {
			td.Description = description
			continue
		}
		fd := findField(td.Fields, fieldName)
		if fd == nil {
			return fmt.Errorf("preset transformer: field %q not found", path)
		}
		fd.Description = description
	}
	return nil
}

func findType(types []schema.TypeDefinition, name string) *schema.TypeDefinition {
	for i := range types {
		if types[i].Name == name {
			return &types[i]
		}
	}
	return nil
}

func findField(fields []schema.FieldDefinition, name string) *schema.FieldDefinition {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}
