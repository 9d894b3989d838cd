package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jadn/pkg/schema"
)

func TestSchema_JSONShape(t *testing.T) {
	model := schema.Schema{
		Meta: schema.Meta{
			"Import": schema.Imports(schema.Import{Tag: 1, Namespace: "nsa", UID: "urn:a"}),
			"title":  schema.Text("Example"),
		},
		Types: []schema.TypeDefinition{
			{Name: "Color", BaseType: schema.Enumerated, Description: "desc", Fields: []schema.FieldDefinition{
				{Tag: 1, Name: "red", Description: "Red color"},
			}},
			{Name: "Name", BaseType: schema.String, Options: []string{"@email"}},
			{Name: "Point", BaseType: schema.Record, Fields: []schema.FieldDefinition{
				{Tag: 1, Name: "x", Type: "Integer", Description: "x axis"},
				{Tag: 2, Name: "label", Type: "String", Options: []string{"?"}},
			}},
			{Name: "Names", BaseType: schema.ArrayOf, Options: []string{"#Name"}},
		},
	}

	got, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"meta":{"Import":[[1,"nsa","urn:a"]],"title":"Example"},"types":[` +
		`["Color","Enumerated",[],"desc",[[1,"red","Red color"]]],` +
		`["Name","String",["@email"],""],` +
		`["Point","Record",[],"",[[1,"x","Integer",[],"x axis"],[2,"label","String",["?"],""]]],` +
		`["Names","ArrayOf",["#Name"],"",[]]]}`
	if string(got) != want {
		t.Fatalf("json mismatch:\nwant %s\ngot  %s", want, got)
	}

	var back schema.Schema
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	again, err := json.Marshal(back)
	if err != nil {
		t.Fatalf("marshal again: %v", err)
	}
	if diff := cmp.Diff(want, string(again)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	imports, ok := back.Meta["Import"].Imports()
	if !ok || len(imports) != 1 || imports[0].UID != "urn:a" {
		t.Fatalf("imports not decoded: %#v", back.Meta["Import"])
	}
}

func TestTypeDefinition_UnmarshalRejectsBadColumns(t *testing.T) {
	var td schema.TypeDefinition
	if err := json.Unmarshal([]byte(`["A","String"]`), &td); err == nil {
		t.Fatalf("expected column count error")
	}
	if err := json.Unmarshal([]byte(`["E","Enumerated",[],"",[[1,"a","String",[],""]]]`), &td); err == nil {
		t.Fatalf("expected enumerated item arity error")
	}
}

func TestBaseType_Kinds(t *testing.T) {
	for _, bt := range schema.PrimitiveTypes {
		if !bt.IsPrimitive() || bt.IsStructure() {
			t.Fatalf("%s should be primitive", bt)
		}
	}
	for _, bt := range schema.StructureTypes {
		if bt.IsPrimitive() || !bt.IsStructure() {
			t.Fatalf("%s should be a structure", bt)
		}
	}
	if schema.BaseType("Widget").IsBuiltin() {
		t.Fatalf("user-defined names are not built-in")
	}
	if !schema.Record.PositionalTags() || schema.Choice.PositionalTags() {
		t.Fatalf("only records use positional tags")
	}
}
