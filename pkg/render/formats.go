package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/export"
	"github.com/goliatone/go-jadn/pkg/hierarchy"
	"github.com/goliatone/go-jadn/pkg/schema"
)

// Built-in renderer names.
const (
	FormatJADN       = "jadn"
	FormatYAML       = "yaml"
	FormatFlat       = "flat"
	FormatOpenAPI    = "openapi"
	FormatJSONSchema = "jsonschema"
	FormatMarkdown   = "markdown"
)

const jsonContentType = "application/json"

// writeJSON indents v and keeps '<', '>' and '&' unescaped so option strings
// such as ">pattern" survive as written.
func writeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type rendererFunc struct {
	name        string
	contentType string
	fn          func(ctx context.Context, s schema.Schema) ([]byte, error)
}

func (r rendererFunc) Name() string        { return r.name }
func (r rendererFunc) ContentType() string { return r.contentType }

func (r rendererFunc) Render(ctx context.Context, s schema.Schema) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.fn(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%s renderer: %w", r.name, err)
	}
	return out, nil
}

// NewJADNRenderer writes the schema in its canonical JSON form.
func NewJADNRenderer() Renderer {
	return rendererFunc{name: FormatJADN, contentType: jsonContentType, fn: func(_ context.Context, s schema.Schema) ([]byte, error) {
		return writeJSON(s)
	}}
}

// NewYAMLRenderer writes the canonical JSON form as YAML, keeping key order.
func NewYAMLRenderer() Renderer {
	return rendererFunc{name: FormatYAML, contentType: "application/yaml", fn: func(_ context.Context, s schema.Schema) ([]byte, error) {
		tree, err := schemaTree(s)
		if err != nil {
			return nil, err
		}
		return yaml.Marshal(tree)
	}}
}

// NewFlatRenderer flattens the canonical JSON form into dotted keys, one
// leaf per entry. The output is for inspection and diffing only: list
// positions in the schema are significant, so it cannot be nested back.
func NewFlatRenderer(sep string) Renderer {
	return rendererFunc{name: FormatFlat, contentType: jsonContentType, fn: func(_ context.Context, s schema.Schema) ([]byte, error) {
		tree, err := schemaTree(s)
		if err != nil {
			return nil, err
		}
		return writeJSON(hierarchy.FlattenSep(tree, "", sep))
	}}
}

// NewOpenAPIRenderer exports the schema as OpenAPI components.
func NewOpenAPIRenderer(opts ...export.Option) Renderer {
	return rendererFunc{name: FormatOpenAPI, contentType: jsonContentType, fn: func(ctx context.Context, s schema.Schema) ([]byte, error) {
		doc, err := export.OpenAPI(ctx, s, opts...)
		if err != nil {
			return nil, err
		}
		return writeJSON(doc)
	}}
}

// NewJSONSchemaRenderer exports the schema as a JSON Schema document.
func NewJSONSchemaRenderer(opts ...export.Option) Renderer {
	return rendererFunc{name: FormatJSONSchema, contentType: "application/schema+json", fn: func(_ context.Context, s schema.Schema) ([]byte, error) {
		doc, err := export.JSONSchema(s, opts...)
		if err != nil {
			return nil, err
		}
		return writeJSON(doc)
	}}
}

// RegisterDefaults adds the JSON-based renderers to reg. Diagnostics raised
// by the exporters go to r.
func RegisterDefaults(reg *Registry, r diag.Reporter) error {
	for _, renderer := range []Renderer{
		NewJADNRenderer(),
		NewYAMLRenderer(),
		NewFlatRenderer(hierarchy.DefaultSeparator),
		NewOpenAPIRenderer(export.WithReporter(r)),
		NewJSONSchemaRenderer(export.WithReporter(r)),
	} {
		if err := reg.Register(renderer); err != nil {
			return err
		}
	}
	for alias, name := range defaultAliases {
		if err := reg.Alias(alias, name); err != nil {
			return err
		}
	}
	return nil
}

var defaultAliases = map[string]string{
	"json":        FormatJADN,
	"yml":         FormatYAML,
	"oas":         FormatOpenAPI,
	"json-schema": FormatJSONSchema,
}

func schemaTree(s schema.Schema) (*hierarchy.Map, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	tree := hierarchy.NewMap()
	if err := json.Unmarshal(raw, tree); err != nil {
		return nil, err
	}
	return tree, nil
}
