// Package diag carries the diagnostics and typed failures produced while
// decoding options, transforming hierarchical data, and compiling JAS syntax
// trees. Non-fatal findings flow through a Reporter so callers decide whether
// to collect, log, or ignore them; fatal findings surface as *Error values.
package diag

import (
	"fmt"
	"strings"
	"sync"
)

// Kind identifies the category of a diagnostic or error.
type Kind string

const (
	KindUnrecognizedOption      Kind = "unrecognized_option"
	KindMalformedOptionValue    Kind = "malformed_option_value"
	KindUnknownOptionKey        Kind = "unknown_option_key"
	KindMissingRequiredTag      Kind = "missing_required_tag"
	KindInvalidTag              Kind = "invalid_tag"
	KindDuplicateTag            Kind = "duplicate_tag"
	KindIgnoredFields           Kind = "ignored_fields"
	KindStructuralMergeConflict Kind = "structural_merge_conflict"
	KindMalformedImportMeta     Kind = "malformed_import_meta"
)

// Severity distinguishes warnings that let processing continue from errors.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a single finding. Type and Field are empty when the finding is
// not attached to a type or field definition.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type,omitempty"`
	Field    string   `json:"field,omitempty"`
	Value    string   `json:"value,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Severity))
	b.WriteString(" [")
	b.WriteString(string(d.Kind))
	b.WriteString("]")
	switch {
	case d.Type != "" && d.Field != "":
		fmt.Fprintf(&b, " %s.%s", d.Type, d.Field)
	case d.Type != "":
		fmt.Fprintf(&b, " %s", d.Type)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Value != "" {
		fmt.Fprintf(&b, " (%q)", d.Value)
	}
	return b.String()
}

// Warning builds a warning diagnostic.
func Warning(kind Kind, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of the diagnostic attached to the given type and field.
func (d Diagnostic) At(typeName, fieldName string) Diagnostic {
	d.Type = typeName
	d.Field = fieldName
	return d
}

// WithValue returns a copy carrying the offending raw value.
func (d Diagnostic) WithValue(value string) Diagnostic {
	d.Value = value
	return d
}

// Reporter receives non-fatal diagnostics. Implementations used from the
// compiler must be safe for concurrent use.
type Reporter interface {
	Report(Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Diagnostic)

// Report calls fn(d).
func (fn ReporterFunc) Report(d Diagnostic) {
	if fn != nil {
		fn(d)
	}
}

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// OrDiscard returns r, or Discard when r is nil.
func OrDiscard(r Reporter) Reporter {
	if r == nil {
		return Discard
	}
	return r
}

// Collector accumulates diagnostics in arrival order.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return nil
	}
	return append([]Diagnostic(nil), c.items...)
}

// Len reports how many diagnostics were collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Has reports whether any diagnostic of the given kind was collected.
func (c *Collector) Has(kind Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.items {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Forward replays every collected diagnostic into r.
func (c *Collector) Forward(r Reporter) {
	if r == nil {
		return
	}
	for _, d := range c.Diagnostics() {
		r.Report(d)
	}
}

// Tee fans each diagnostic out to all non-nil reporters.
func Tee(reporters ...Reporter) Reporter {
	active := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			active = append(active, r)
		}
	}
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range active {
			r.Report(d)
		}
	})
}
