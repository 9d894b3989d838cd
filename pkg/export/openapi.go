package export

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-jadn/pkg/schema"
)

// OpenAPIVersion is the document version written by OpenAPI.
const OpenAPIVersion = "3.0.3"

const componentPrefix = "#/components/schemas/"

// OpenAPI converts s into an OpenAPI document whose components hold one schema
// per type definition. References between components are linked in memory and
// the document is validated before it is returned.
func OpenAPI(ctx context.Context, s schema.Schema, opts ...Option) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	shapes, err := readSchema(s, cfg.reporter)
	if err != nil {
		return nil, err
	}

	components := make(map[string]*openapi3.Schema, len(shapes))
	for _, sh := range shapes {
		components[sh.name] = &openapi3.Schema{}
	}
	linker := &componentLinker{components: components}
	for _, sh := range shapes {
		*components[sh.name] = *linker.schemaFor(sh)
	}
	if len(linker.missing) > 0 {
		return nil, fmt.Errorf("export: undefined types referenced: %v", linker.missing)
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info:    info(s, cfg),
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(shapes)),
		},
	}
	for _, sh := range shapes {
		doc.Components.Schemas[sh.name] = openapi3.NewSchemaRef("", components[sh.name])
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("export: validate openapi document: %w", err)
	}
	return doc, nil
}

func info(s schema.Schema, cfg config) *openapi3.Info {
	title := cfg.title
	if title == "" {
		title, _ = s.Meta.Text("title")
	}
	if title == "" {
		title, _ = s.Meta.Text("module")
	}
	if title == "" {
		title = "JADN schema"
	}
	version := cfg.version
	if version == "" {
		version, _ = s.Meta.Text("version")
	}
	if version == "" {
		version = "0.0.0"
	}
	description, _ := s.Meta.Text("description")
	return &openapi3.Info{Title: title, Version: version, Description: description}
}

type componentLinker struct {
	components map[string]*openapi3.Schema
	missing    []string
}

func (l *componentLinker) ref(name string) *openapi3.SchemaRef {
	value, ok := l.components[name]
	if !ok {
		l.missing = append(l.missing, name)
	}
	return openapi3.NewSchemaRef(componentPrefix+name, value)
}

func (l *componentLinker) property(p property) *openapi3.SchemaRef {
	if base, ok := p.builtin(); ok {
		value := l.schemaFor(shape{base: base})
		value.Description = p.description
		return openapi3.NewSchemaRef("", value)
	}
	return l.ref(p.typ)
}

func (l *componentLinker) schemaFor(sh shape) *openapi3.Schema {
	var out *openapi3.Schema
	switch sh.base {
	case schema.Binary:
		out = openapi3.NewBytesSchema()
	case schema.Boolean:
		out = openapi3.NewBoolSchema()
	case schema.Integer, schema.Number:
		out = openapi3.NewSchema()
		out.Type = &openapi3.Types{"number"}
		if sh.base == schema.Integer {
			out.Type = &openapi3.Types{"integer"}
		}
		if sh.bounds.min != nil {
			v := float64(*sh.bounds.min)
			out.Min = &v
		}
		if sh.bounds.max != nil && *sh.bounds.max > 0 {
			v := float64(*sh.bounds.max)
			out.Max = &v
		}
	case schema.String:
		out = openapi3.NewStringSchema()
		out.Pattern = sh.pattern
		out.Format = sh.format
		if sh.bounds.min != nil && *sh.bounds.min > 0 {
			out.MinLength = uint64(*sh.bounds.min)
		}
		if sh.bounds.max != nil && *sh.bounds.max > 0 {
			v := uint64(*sh.bounds.max)
			out.MaxLength = &v
		}
	case schema.Enumerated:
		values := make([]any, 0, len(sh.enum))
		for _, name := range sh.enum {
			values = append(values, name)
		}
		out = openapi3.NewStringSchema().WithEnum(values...)
	case schema.ArrayOf:
		out = openapi3.NewArraySchema()
		out.Items = l.property(sh.element)
		if sh.bounds.min != nil && *sh.bounds.min > 0 {
			out.MinItems = uint64(*sh.bounds.min)
		}
		if sh.bounds.max != nil && *sh.bounds.max > 0 {
			v := uint64(*sh.bounds.max)
			out.MaxItems = &v
		}
	case schema.Array:
		// OpenAPI 3.0 has no positional items; each slot accepts any column type.
		out = openapi3.NewArraySchema()
		items := openapi3.NewSchema()
		var required uint64
		for _, p := range sh.props {
			items.OneOf = append(items.OneOf, l.property(p))
			if p.required {
				required++
			}
		}
		out.Items = openapi3.NewSchemaRef("", items)
		total := uint64(len(sh.props))
		out.MinItems = required
		out.MaxItems = &total
	case schema.Choice, schema.Map, schema.Record:
		out = openapi3.NewObjectSchema()
		for _, p := range sh.props {
			out.Properties[p.name] = l.property(p)
			if p.required && sh.base != schema.Choice {
				out.Required = append(out.Required, p.name)
			}
		}
		out.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
		if sh.base == schema.Choice {
			one := uint64(1)
			out.MinProps = one
			out.MaxProps = &one
		}
	default:
		out = openapi3.NewSchema()
		out.AllOf = openapi3.SchemaRefs{l.ref(string(sh.base))}
	}
	out.Description = sh.description
	return out
}
