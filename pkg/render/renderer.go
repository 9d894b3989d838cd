package render

import (
	"context"

	"github.com/goliatone/go-jadn/pkg/schema"
)

// Renderer converts a compiled schema into a byte representation (JADN JSON,
// Markdown, OpenAPI, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, s schema.Schema) ([]byte, error)
}
