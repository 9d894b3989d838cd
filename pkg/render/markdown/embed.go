package markdown

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// SchemaTemplate is the template the renderer executes.
const SchemaTemplate = "templates/schema.md.tmpl"

// TemplatesFS exposes the embedded templates so callers can copy and adjust
// them before passing them back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
