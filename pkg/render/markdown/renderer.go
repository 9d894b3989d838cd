package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/options"
	"github.com/goliatone/go-jadn/pkg/schema"
)

// Meta keys that feed the document header instead of the leading comment.
var headerKeys = map[string]struct{}{
	"module":      {},
	"title":       {},
	"version":     {},
	"description": {},
	"namespace":   {},
}

type Option func(*config)

type config struct {
	templateFS fs.FS
	reporter   diag.Reporter
	source     string
}

// WithTemplatesFS supplies an alternate template bundle. The bundle must
// contain SchemaTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithReporter receives diagnostics raised while decoding field options.
func WithReporter(r diag.Reporter) Option {
	return func(cfg *config) {
		cfg.reporter = r
	}
}

// WithSource names the input in a leading "Generated from" comment.
func WithSource(source string) Option {
	return func(cfg *config) {
		cfg.source = strings.TrimSpace(source)
	}
}

// Renderer turns schemas into Markdown documents.
type Renderer struct {
	mu       sync.RWMutex
	tmpl     *pongo2.Template
	reporter diag.Reporter
	source   string
}

// New constructs the renderer and parses its template.
func New(opts ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	set := pongo2.NewSet("jadn-markdown", pongo2.NewFSLoader(cfg.templateFS))
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true

	tmpl, err := set.FromFile(SchemaTemplate)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: load template %q: %w", SchemaTemplate, err)
	}
	return &Renderer{
		tmpl:     tmpl,
		reporter: diag.OrDiscard(cfg.reporter),
		source:   cfg.source,
	}, nil
}

func (r *Renderer) Name() string {
	return "markdown"
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Render writes the property tables for s.
func (r *Renderer) Render(ctx context.Context, s schema.Schema) ([]byte, error) {
	if r == nil || r.tmpl == nil {
		return nil, fmt.Errorf("markdown renderer: template is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := r.context(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	r.mu.RLock()
	err = r.tmpl.ExecuteWriter(data, &buf)
	r.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

type metaEntry struct {
	Key   string
	Value string
}

type typeView struct {
	Name        string
	Type        string
	Description string
	Fields      []fieldView
}

type fieldView struct {
	Tag          int
	Name         string
	Type         string
	Multiplicity string
	Description  string
}

func (r *Renderer) context(s schema.Schema) (pongo2.Context, error) {
	var extra []metaEntry
	for _, key := range s.Meta.Keys() {
		if _, ok := headerKeys[key]; ok {
			continue
		}
		extra = append(extra, metaEntry{Key: key, Value: s.Meta[key].String()})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Key < extra[j].Key })

	var primitives, vocabularies, structures []typeView
	for _, td := range s.Types {
		view := typeView{
			Name:        cell(td.Name),
			Type:        string(td.BaseType),
			Description: sanitize(td.Description),
		}
		switch {
		case td.BaseType.IsPrimitive():
			primitives = append(primitives, view)
		case td.BaseType == schema.Enumerated:
			for _, fd := range td.Fields {
				view.Fields = append(view.Fields, fieldView{
					Tag:         fd.Tag,
					Name:        cell(fd.Name),
					Description: sanitize(fd.Description),
				})
			}
			vocabularies = append(vocabularies, view)
		case td.BaseType.IsStructure() && td.BaseType != schema.ArrayOf:
			fields, err := r.fields(td)
			if err != nil {
				return nil, err
			}
			view.Fields = fields
			structures = append(structures, view)
		}
	}

	header := func(key string) string {
		text, _ := s.Meta.Text(key)
		return sanitize(text)
	}
	return pongo2.Context{
		"generated":    r.source,
		"extra":        extra,
		"title":        header("title"),
		"module":       header("module"),
		"version":      header("version"),
		"description":  header("description"),
		"namespace":    header("namespace"),
		"primitives":   primitives,
		"vocabularies": vocabularies,
		"structures":   structures,
	}, nil
}

func (r *Renderer) fields(td schema.TypeDefinition) ([]fieldView, error) {
	out := make([]fieldView, 0, len(td.Fields))
	for _, fd := range td.Fields {
		local := diag.NewCollector()
		opts, err := options.DecodeField(fd.Options, local)
		if err != nil {
			return nil, fmt.Errorf("markdown renderer: %s.%s: %w", td.Name, fd.Name, err)
		}
		for _, d := range local.Diagnostics() {
			r.reporter.Report(d.At(td.Name, fd.Name))
		}
		multiplicity := "1"
		if opts.Bool(options.Optional) {
			multiplicity = "0..1"
		}
		out = append(out, fieldView{
			Tag:          fd.Tag,
			Name:         cell(fd.Name),
			Type:         cell(fd.Type),
			Multiplicity: multiplicity,
			Description:  sanitize(fd.Description),
		})
	}
	return out, nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// sanitize strips markup and makes the text safe inside a table cell.
func sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return cell(textSanitizer().Sanitize(trimmed))
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func cell(s string) string {
	return cellReplacer.Replace(s)
}
