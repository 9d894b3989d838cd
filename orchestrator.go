// Package jadn compiles JAS syntax trees into the canonical JADN schema model
// and renders the result. The root package bundles the most common entry
// points; the packages under pkg/ expose each stage separately.
package jadn

import (
	"context"
	"fmt"

	"github.com/goliatone/go-jadn/pkg/compiler"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/orchestrator"
	"github.com/goliatone/go-jadn/pkg/schema"
)

// Request aliases orchestrator.Request for callers driving the pipeline
// through the root package.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Compile loads the syntax tree at source and compiles it into a schema.
func Compile(ctx context.Context, source jas.Source, options ...orchestrator.Option) (schema.Schema, error) {
	return orchestrator.New(options...).Compile(ctx, orchestrator.Request{Source: source})
}

// CompileDocument compiles a pre-loaded document, bypassing the loader.
func CompileDocument(ctx context.Context, doc jas.Document, options ...orchestrator.Option) (schema.Schema, error) {
	return orchestrator.New(options...).Compile(ctx, orchestrator.Request{Document: &doc})
}

// CompileBytes parses raw JSON or YAML syntax tree bytes and compiles them
// with a builder configured by options.
func CompileBytes(ctx context.Context, data []byte, options ...compiler.Option) (schema.Schema, error) {
	tree, err := jas.Parse(data, "bytes")
	if err != nil {
		return schema.Schema{}, err
	}
	out, err := compiler.NewBuilder(options...).Compile(ctx, tree)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("jadn: %w", err)
	}
	return out, nil
}

// Generate loads, compiles, and renders the syntax tree at source using the
// named renderer.
func Generate(ctx context.Context, source jas.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// WithCompilerOptions configures the compiler used by the orchestrator.
func WithCompilerOptions(options ...compiler.Option) orchestrator.Option {
	return orchestrator.WithCompilerOptions(options...)
}
