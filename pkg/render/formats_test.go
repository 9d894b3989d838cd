package render_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/render"
	"github.com/goliatone/go-jadn/pkg/schema"
)

func colorSchema() schema.Schema {
	return schema.Schema{
		Meta: schema.Meta{"module": schema.Text("colors")},
		Types: []schema.TypeDefinition{
			{Name: "Word", BaseType: schema.String, Options: []string{">^[a-z]+$"}},
			{Name: "Color", BaseType: schema.Enumerated, Options: []string{}, Description: "desc", Fields: []schema.FieldDefinition{
				{Tag: 1, Name: "red", Description: "Red color"},
			}},
		},
	}
}

func TestJADNRenderer_KeepsOptionText(t *testing.T) {
	out, err := render.NewJADNRenderer().Render(context.Background(), colorSchema())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `">^[a-z]+$"`) {
		t.Fatalf("option text should not be escaped:\n%s", out)
	}
	var back schema.Schema
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("output should decode: %v", err)
	}
	if diff := cmp.Diff(colorSchema().Types, back.Types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatRenderer(t *testing.T) {
	out, err := render.NewFlatRenderer("/").Render(context.Background(), colorSchema())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(out, &flat); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"meta/module":   "colors",
		"types/0/0":     "Word",
		"types/0/1":     "String",
		"types/0/2/0":   ">^[a-z]+$",
		"types/0/3":     "",
		"types/1/0":     "Color",
		"types/1/1":     "Enumerated",
		"types/1/3":     "desc",
		"types/1/4/0/0": float64(1),
		"types/1/4/0/1": "red",
		"types/1/4/0/2": "Red color",
	}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Fatalf("flat mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRenderer_KeepsOrder(t *testing.T) {
	out, err := render.NewYAMLRenderer().Render(context.Background(), colorSchema())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)
	if !strings.HasPrefix(doc, "meta:") || strings.Index(doc, "meta:") > strings.Index(doc, "types:") {
		t.Fatalf("meta should come before types:\n%s", doc)
	}
}

func TestRegisterDefaults(t *testing.T) {
	reg := render.NewRegistry()
	if err := render.RegisterDefaults(reg, diag.Discard); err != nil {
		t.Fatalf("register: %v", err)
	}
	want := []string{render.FormatFlat, render.FormatJADN, render.FormatJSONSchema, render.FormatOpenAPI, render.FormatYAML}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if err := render.RegisterDefaults(reg, diag.Discard); err == nil {
		t.Fatalf("registering twice should fail")
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := render.NewJADNRenderer().Render(ctx, colorSchema()); err == nil {
		t.Fatalf("expected context error")
	}
}
