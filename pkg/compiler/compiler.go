// Package compiler exposes the JAS to JADN compiler. The implementation lives
// in internal/compiler; this package keeps construction and configuration
// stable for callers.
package compiler

import (
	"context"

	"go.uber.org/zap"

	internal "github.com/goliatone/go-jadn/internal/compiler"
	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/schema"
)

// Builder compiles syntax trees into canonical schemas.
type Builder interface {
	Compile(ctx context.Context, tree jas.AST) (schema.Schema, error)
	CompileType(node jas.TypeNode) (schema.TypeDefinition, error)
}

// Ensure the implementation satisfies the public interface.
var _ Builder = (*internal.Builder)(nil)

// TypeNames re-exports the keyword translation table.
type TypeNames = internal.TypeNames

// DefaultTypeNames returns the JAS keyword table.
func DefaultTypeNames() *TypeNames {
	return internal.DefaultTypeNames()
}

// Option configures the builder behaviour.
type Option func(*internal.Options)

// WithReporter routes non-fatal diagnostics to r.
func WithReporter(r diag.Reporter) Option {
	return func(opts *internal.Options) {
		opts.Reporter = r
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *internal.Options) {
		opts.Logger = logger
	}
}

// WithStrict makes every diagnostic fatal for the type that produced it, so
// dropped options or fields fail compilation instead of shrinking the schema.
func WithStrict(strict bool) Option {
	return func(opts *internal.Options) {
		opts.Strict = strict
	}
}

// WithConcurrency bounds how many types compile in parallel.
func WithConcurrency(n int) Option {
	return func(opts *internal.Options) {
		opts.Concurrency = n
	}
}

// WithTypeNames replaces the keyword translation table.
func WithTypeNames(names *TypeNames) Option {
	return func(opts *internal.Options) {
		opts.TypeNames = names
	}
}

// WithCanonicalOptions writes option strings with the decode tables instead
// of the compatibility encoder, so every stored option decodes back.
func WithCanonicalOptions() Option {
	return func(opts *internal.Options) {
		opts.Encoding = internal.EncodingCanonical
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...Option) Builder {
	cfg := internal.Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return internal.New(cfg)
}
