package jadn

import (
	internalLoader "github.com/goliatone/go-jadn/internal/jas/loader"
	"github.com/goliatone/go-jadn/pkg/compiler"
	"github.com/goliatone/go-jadn/pkg/jas"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...jas.LoaderOption) jas.Loader {
	cfg := jas.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewBuilder constructs a compiler backed by the internal implementation.
func NewBuilder(options ...compiler.Option) compiler.Builder {
	return compiler.NewBuilder(options...)
}
