package export

import (
	"strings"

	"github.com/goliatone/go-jadn/pkg/diag"
)

// Option configures an export.
type Option func(*config)

type config struct {
	reporter diag.Reporter
	id       string
	root     string
	title    string
	version  string
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.reporter = diag.OrDiscard(cfg.reporter)
	return cfg
}

// WithReporter receives diagnostics raised while decoding options.
func WithReporter(r diag.Reporter) Option {
	return func(cfg *config) {
		cfg.reporter = r
	}
}

// WithID sets the JSON Schema $id.
func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = strings.TrimSpace(id)
	}
}

// WithRoot makes the named type the document root. Without it the JSON Schema
// document only carries $defs.
func WithRoot(name string) Option {
	return func(cfg *config) {
		cfg.root = strings.TrimSpace(name)
	}
}

// WithInfo overrides the title and version taken from the schema metadata.
func WithInfo(title, version string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
		cfg.version = strings.TrimSpace(version)
	}
}
