package export

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/goliatone/go-jadn/pkg/schema"
)

// Draft is the JSON Schema dialect written into $schema.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema converts s into a JSON Schema document with one $defs entry per
// type definition.
func JSONSchema(s schema.Schema, opts ...Option) (*jsonschema.Schema, error) {
	cfg := newConfig(opts)
	shapes, err := readSchema(s, cfg.reporter)
	if err != nil {
		return nil, err
	}

	doc := &jsonschema.Schema{
		Schema: Draft,
		ID:     cfg.id,
		Defs:   make(map[string]*jsonschema.Schema, len(shapes)),
	}
	if title, ok := s.Meta.Text("title"); ok {
		doc.Title = title
	}
	if cfg.title != "" {
		doc.Title = cfg.title
	}
	for _, sh := range shapes {
		doc.Defs[sh.name] = jsonSchemaFor(sh)
	}
	if cfg.root != "" {
		if _, ok := doc.Defs[cfg.root]; !ok {
			return nil, fmt.Errorf("export: root type %q is not defined", cfg.root)
		}
		doc.Ref = jsonSchemaRef(cfg.root)
	}
	return doc, nil
}

// Validate checks instance against the named type of s. The instance must be
// a decoded JSON value (maps, slices, float64, string, bool, nil).
func Validate(s schema.Schema, typeName string, instance any, opts ...Option) error {
	doc, err := JSONSchema(s, append(opts, WithRoot(typeName))...)
	if err != nil {
		return err
	}
	resolved, err := doc.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return fmt.Errorf("export: resolve JSON schema: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("export: %s: %w", typeName, err)
	}
	return nil
}

func jsonSchemaRef(name string) string {
	return "#/$defs/" + name
}

func jsonSchemaFor(sh shape) *jsonschema.Schema {
	out := &jsonschema.Schema{Description: sh.description}
	switch sh.base {
	case schema.Binary:
		out.Type = "string"
		out.ContentEncoding = "base64"
	case schema.Boolean:
		out.Type = "boolean"
	case schema.Integer, schema.Number:
		out.Type = "number"
		if sh.base == schema.Integer {
			out.Type = "integer"
		}
		if sh.bounds.min != nil {
			v := float64(*sh.bounds.min)
			out.Minimum = &v
		}
		if sh.bounds.max != nil && *sh.bounds.max > 0 {
			v := float64(*sh.bounds.max)
			out.Maximum = &v
		}
	case schema.String:
		out.Type = "string"
		out.Pattern = sh.pattern
		out.Format = sh.format
		out.MinLength = sh.bounds.min
		if sh.bounds.max != nil && *sh.bounds.max > 0 {
			out.MaxLength = sh.bounds.max
		}
	case schema.Enumerated:
		out.Type = "string"
		for _, name := range sh.enum {
			out.Enum = append(out.Enum, name)
		}
	case schema.ArrayOf:
		out.Type = "array"
		out.Items = jsonSchemaProperty(sh.element)
		out.MinItems = sh.bounds.min
		if sh.bounds.max != nil && *sh.bounds.max > 0 {
			out.MaxItems = sh.bounds.max
		}
	case schema.Array:
		out.Type = "array"
		required := 0
		for _, p := range sh.props {
			out.PrefixItems = append(out.PrefixItems, jsonSchemaProperty(p))
			if p.required {
				required++
			}
		}
		total := len(sh.props)
		out.MinItems = &required
		out.MaxItems = &total
	case schema.Choice, schema.Map, schema.Record:
		out.Type = "object"
		out.Properties = make(map[string]*jsonschema.Schema, len(sh.props))
		for _, p := range sh.props {
			out.Properties[p.name] = jsonSchemaProperty(p)
			if p.required && sh.base != schema.Choice {
				out.Required = append(out.Required, p.name)
			}
		}
		out.AdditionalProperties = falseSchema()
		if sh.base == schema.Choice {
			one := 1
			out.MinProperties = &one
			out.MaxProperties = &one
		}
	default:
		// Derived from another defined type.
		out.Ref = jsonSchemaRef(string(sh.base))
	}
	return out
}

func jsonSchemaProperty(p property) *jsonschema.Schema {
	if base, ok := p.builtin(); ok {
		sh := jsonSchemaFor(shape{base: base})
		sh.Description = p.description
		return sh
	}
	return &jsonschema.Schema{Ref: jsonSchemaRef(p.typ), Description: p.description}
}

func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
