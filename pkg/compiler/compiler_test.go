package compiler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jadn/pkg/compiler"
	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/schema"
)

func TestCompile_EndToEndColor(t *testing.T) {
	tree := jas.AST{
		Metas: []jas.Meta{{Key: "Import", Val: []string{"1, nsa, urn:a"}}},
		Types: []jas.TypeNode{{
			Name: "Color",
			Type: "ENUMERATED",
			TD1:  "desc",
			F: &jas.FieldBlock{Fields: []jas.FieldNode{
				{Tag: jas.Tag("1"), Name: "red", FD2: "Red color"},
			}},
		}},
	}

	model, err := compiler.NewBuilder().Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"meta":{"Import":[[1,"nsa","urn:a"]]},"types":[["Color","Enumerated",[],"desc",[[1,"red","Red color"]]]]}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_RecordTagsArePositional(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{{
		Name: "Point",
		Type: "RECORD",
		F: &jas.FieldBlock{Fields: []jas.FieldNode{
			{Tag: jas.Tag("9"), Name: "x", Type: "INTEGER"},
			{Name: "y", Type: "INTEGER"},
			{Tag: jas.Tag("not-a-number"), Name: "label", Type: "STRING", FOpts: jas.OptionList{jas.BareOption{Name: "OPTIONAL"}}},
		}},
	}}}

	model, err := compiler.NewBuilder().Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	point := model.Types[0]
	var tags []int
	for _, f := range point.Fields {
		tags = append(tags, f.Tag)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if point.Fields[0].Type != "Integer" {
		t.Fatalf("field type should be translated, got %q", point.Fields[0].Type)
	}
	if diff := cmp.Diff([]string{"?"}, point.Fields[2].Options); diff != "" {
		t.Fatalf("field options mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_ChoiceMissingTagIsReportedAndDropped(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{{
		Name: "Action",
		Type: "CHOICE",
		F: &jas.FieldBlock{Fields: []jas.FieldNode{
			{Tag: jas.Tag("1"), Name: "scan", Type: "STRING"},
			{Name: "query", Type: "STRING"},
			{Tag: jas.Tag(" 4 "), Name: "deny", Type: "STRING"},
		}},
	}}}

	collector := diag.NewCollector()
	model, err := compiler.NewBuilder(compiler.WithReporter(collector)).Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	fields := model.Types[0].Fields
	if len(fields) != 2 || fields[0].Tag != 1 || fields[1].Tag != 4 {
		t.Fatalf("unexpected fields %#v", fields)
	}

	diags := collector.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %#v", diags)
	}
	want := diag.Diagnostic{
		Kind:     diag.KindMissingRequiredTag,
		Severity: diag.SeverityWarning,
		Type:     "Action",
		Field:    "query",
		Message:  "missing tag",
	}
	if diff := cmp.Diff(want, diags[0]); diff != "" {
		t.Fatalf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_StrictEscalatesMissingTag(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{{
		Name: "Action",
		Type: "CHOICE",
		F:    &jas.FieldBlock{Fields: []jas.FieldNode{{Name: "query", Type: "STRING"}}},
	}}}

	_, err := compiler.NewBuilder(compiler.WithStrict(true)).Compile(context.Background(), tree)
	if err == nil {
		t.Fatalf("expected strict failure")
	}
	var typed *diag.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *diag.Error in chain, got %v", err)
	}
	if typed.Kind != diag.KindMissingRequiredTag || typed.Type != "Action" || typed.Field != "query" {
		t.Fatalf("unexpected error %#v", typed)
	}
}

func TestCompile_DescriptionShift(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{{
		Name: "Pair",
		Type: "RECORD",
		TD1:  "outer",
		F: &jas.FieldBlock{
			TD2: "inner",
			Fields: []jas.FieldNode{
				{Name: "a", Type: "STRING", FD1: "preamble", FD2: "ignored"},
				{Name: "b", Type: "STRING", FD1: "about a", FD2: "ignored too"},
				{Name: "c", Type: "STRING", FD1: "about b", FD2: "about c"},
			},
		},
	}}}

	model, err := compiler.NewBuilder().Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	td := model.Types[0]
	if td.Description != "inner" {
		t.Fatalf("field block description should win, got %q", td.Description)
	}
	var got []string
	for _, f := range td.Fields {
		got = append(got, f.Description)
	}
	if diff := cmp.Diff([]string{"about a", "about b", "about c"}, got); diff != "" {
		t.Fatalf("descriptions mismatch (-want +got):\n%s", diff)
	}
	if tree.Types[0].F.Fields[0].FD2 != "ignored" {
		t.Fatalf("compile must not modify the syntax tree")
	}
}

func TestCompile_TypeOptions(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{
		{Name: "Word", Type: "STRING", TOpts: jas.OptionList{jas.PairOption{Head: "PATTERN", Args: []string{"^", "[a-z]", "+$"}}}},
		{Name: "Words", Type: "ArrayOf", TOpts: jas.OptionList{jas.BareOption{Name: "STRING"}}},
		{Name: "Odd", Type: "INTEGER", TOpts: jas.OptionList{jas.PairOption{Head: "RANGE", Args: []string{"1"}}, jas.UnknownOption{Raw: 3}}},
	}}

	collector := diag.NewCollector()
	model, err := compiler.NewBuilder(compiler.WithReporter(collector)).Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got := map[string][]string{}
	for _, td := range model.Types {
		got[td.Name] = td.Options
	}
	want := map[string][]string{
		"Word":  {">^[a-z]+$"},
		"Words": {"#String"},
		"Odd":   {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if model.Types[1].BaseType != schema.ArrayOf || model.Types[1].Fields == nil {
		t.Fatalf("ArrayOf should carry an empty field list: %#v", model.Types[1])
	}

	var kinds []diag.Kind
	for _, d := range collector.Diagnostics() {
		kinds = append(kinds, d.Kind)
	}
	if diff := cmp.Diff([]diag.Kind{diag.KindUnrecognizedOption, diag.KindUnrecognizedOption}, kinds); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_CanonicalOptions(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{
		{Name: "Word", Type: "STRING", TOpts: jas.OptionList{jas.PairOption{Head: "PATTERN", Args: []string{"^x$"}}}},
		{Name: "Msg", Type: "MAP", F: &jas.FieldBlock{Fields: []jas.FieldNode{
			{Tag: jas.Tag("1"), Name: "kind", Type: "STRING"},
			{Tag: jas.Tag("2"), Name: "body", Type: "Body", FOpts: jas.OptionList{
				jas.BareOption{Name: "optional"},
				jas.PairOption{Head: ".&", Args: []string{"kind"}},
			}},
		}}},
	}}

	model, err := compiler.NewBuilder(compiler.WithCanonicalOptions()).Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if diff := cmp.Diff([]string{"$^x$"}, model.Types[0].Options); diff != "" {
		t.Fatalf("type options mismatch (-want +got):\n%s", diff)
	}
	body := model.Types[1].Fields[1]
	if diff := cmp.Diff([]string{"?", "&kind"}, body.Options); diff != "" {
		t.Fatalf("field options mismatch (-want +got):\n%s", diff)
	}
	if body.Type != "Body" {
		t.Fatalf("user-defined type names pass through, got %q", body.Type)
	}
}

func TestCompile_FatalErrorsAreAggregated(t *testing.T) {
	tree := jas.AST{
		Metas: []jas.Meta{{Key: "import", Val: []string{"x, nsa, urn:a"}}},
		Types: []jas.TypeNode{
			{Name: "Ok", Type: "STRING"},
			{Name: "BadTag", Type: "MAP", F: &jas.FieldBlock{Fields: []jas.FieldNode{
				{Tag: jas.Tag("one"), Name: "a", Type: "STRING"},
			}}},
			{Name: "DupTag", Type: "ENUMERATED", F: &jas.FieldBlock{Fields: []jas.FieldNode{
				{Tag: jas.Tag("1"), Name: "a"},
				{Tag: jas.Tag("1"), Name: "b"},
			}}},
		},
	}

	model, err := compiler.NewBuilder().Compile(context.Background(), tree)
	if err == nil {
		t.Fatalf("expected failure, got %#v", model)
	}
	if len(model.Types) != 0 {
		t.Fatalf("no partial model should be returned")
	}
	for _, want := range []*diag.Error{
		diag.NewError(diag.KindMalformedImportMeta, ""),
		diag.NewError(diag.KindInvalidTag, "").WithType("BadTag"),
		diag.NewError(diag.KindDuplicateTag, "").WithType("DupTag"),
	} {
		if !errors.Is(err, want) {
			t.Fatalf("expected %s in %v", want.Kind, err)
		}
	}
}

func TestCompile_MetaValues(t *testing.T) {
	tree := jas.AST{Metas: []jas.Meta{
		{Key: "title", Val: []string{"Open", "Command", "Language"}},
		{Key: "IMPORT", Val: []string{"1,nsa,urn:a", "2, nsb , urn:b,"}},
	}}
	_, err := compiler.NewBuilder().Compile(context.Background(), tree)
	if kind, ok := diag.KindOf(err); !ok || kind != diag.KindMalformedImportMeta {
		t.Fatalf("four-part import should fail, got %v", err)
	}

	tree.Metas[1].Val = []string{"1,nsa,urn:a", "2, nsb , urn:b"}
	model, err := compiler.NewBuilder().Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if title, _ := model.Meta.Text("title"); title != "Open Command Language" {
		t.Fatalf("title mismatch %q", title)
	}
	imports, ok := model.Meta["IMPORT"].Imports()
	if !ok {
		t.Fatalf("imports missing: %#v", model.Meta)
	}
	want := []schema.Import{{Tag: 1, Namespace: "nsa", UID: "urn:a"}, {Tag: 2, Namespace: "nsb", UID: "urn:b"}}
	if diff := cmp.Diff(want, imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_PreservesOrderUnderConcurrency(t *testing.T) {
	var tree jas.AST
	for i := 0; i < 64; i++ {
		tree.Types = append(tree.Types, jas.TypeNode{Name: fmt.Sprintf("T%02d", i), Type: "RECORD", F: &jas.FieldBlock{
			Fields: []jas.FieldNode{{Name: "f", Type: "STRING"}},
		}})
	}
	model, err := compiler.NewBuilder(compiler.WithConcurrency(8)).Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for i, td := range model.Types {
		if td.Name != fmt.Sprintf("T%02d", i) {
			t.Fatalf("type %d out of order: %s", i, td.Name)
		}
	}
}

func TestCompile_IgnoresFieldsOnPrimitives(t *testing.T) {
	tree := jas.AST{Types: []jas.TypeNode{{
		Name: "Id",
		Type: "INTEGER",
		F:    &jas.FieldBlock{Fields: []jas.FieldNode{{Name: "x"}}},
	}}}
	collector := diag.NewCollector()
	model, err := compiler.NewBuilder(compiler.WithReporter(collector)).Compile(context.Background(), tree)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if model.Types[0].HasFields() || model.Types[0].Fields != nil {
		t.Fatalf("primitive types carry no fields")
	}
	if !collector.Has(diag.KindIgnoredFields) {
		t.Fatalf("expected ignored fields diagnostic")
	}
}

func TestCompile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := compiler.NewBuilder().Compile(ctx, jas.AST{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTypeNames(t *testing.T) {
	names := compiler.DefaultTypeNames()
	if names.Canonical("REAL") != "Number" || names.Source("Record") != "RECORD" {
		t.Fatalf("table lookup failed")
	}
	if names.Canonical("Widget") != "Widget" || names.Source("Widget") != "Widget" {
		t.Fatalf("unknown names should pass through")
	}
}
