// Package testsupport holds fixture and golden helpers shared by package
// tests. Goldens are rewritten when UPDATE_GOLDENS is set.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jadn/pkg/compiler"
	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/schema"
)

const updateEnv = "UPDATE_GOLDENS"

// Updating reports whether goldens should be rewritten.
func Updating() bool {
	return os.Getenv(updateEnv) != ""
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// LoadDocument reads a syntax tree fixture from disk.
func LoadDocument(t testing.TB, path string) jas.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	doc, err := jas.NewDocument(jas.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	return doc
}

// CompileFixture compiles a syntax tree fixture and returns the schema with
// the diagnostics raised along the way.
func CompileFixture(t testing.TB, path string, options ...compiler.Option) (schema.Schema, []diag.Diagnostic) {
	t.Helper()

	tree, err := LoadDocument(t, path).AST()
	if err != nil {
		t.Fatalf("parse fixture %s: %v", path, err)
	}
	collector := diag.NewCollector()
	options = append([]compiler.Option{compiler.WithReporter(collector)}, options...)
	out, err := compiler.NewBuilder(options...).Compile(Context(), tree)
	if err != nil {
		t.Fatalf("compile fixture %s: %v", path, err)
	}
	return out, collector.Diagnostics()
}

// MustLoadSchema reads a schema golden in model JSON form.
func MustLoadSchema(t testing.TB, path string) schema.Schema {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	var out schema.Schema
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	return out
}

// WriteGolden stores value as indented model JSON when UPDATE_GOLDENS is set.
func WriteGolden(t testing.TB, path string, value any) {
	t.Helper()

	if !Updating() {
		return
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		t.Fatalf("encode golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// CompareSchemas diffs two schemas. Meta values are compared through their
// JSON form since their payload is not exported.
func CompareSchemas(want, got schema.Schema) string {
	return cmp.Diff(want, got, metaComparer)
}

var metaComparer = cmp.Comparer(func(a, b schema.MetaValue) bool {
	left, errA := json.Marshal(a)
	right, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(left, right)
})
