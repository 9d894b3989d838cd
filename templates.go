package jadn

import (
	"io/fs"

	"github.com/goliatone/go-jadn/pkg/render/markdown"
)

// EmbeddedTemplates exposes the built-in Markdown templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return markdown.TemplatesFS()
}
