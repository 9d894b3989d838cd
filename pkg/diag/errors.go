package diag

import (
	"errors"
	"fmt"
)

// Error is the typed failure for fatal categories. It mirrors Diagnostic so a
// strict caller can escalate a diagnostic without losing context.
type Error struct {
	Kind    Kind   `json:"kind"`
	Type    string `json:"type,omitempty"`
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// NewError constructs an Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Type != "" && e.Field != "":
		return fmt.Sprintf("[%s] %s.%s: %s", e.Kind, e.Type, e.Field, e.Message)
	case e.Type != "":
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Type, e.Message)
	case e.Path != "":
		return fmt.Sprintf("[%s] path %q: %s", e.Kind, e.Path, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by kind so callers can test with a sentinel built
// from NewError(kind, "").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Type == "" || t.Type == e.Type)
}

// WithType attaches the owning type name.
func (e *Error) WithType(name string) *Error {
	e.Type = name
	return e
}

// WithField attaches the owning field name.
func (e *Error) WithField(name string) *Error {
	e.Field = name
	return e
}

// WithPath attaches a hierarchical path.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithValue attaches the offending raw value.
func (e *Error) WithValue(value string) *Error {
	e.Value = value
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Escalate converts a diagnostic into a fatal Error.
func Escalate(d Diagnostic) *Error {
	return &Error{
		Kind:    d.Kind,
		Type:    d.Type,
		Field:   d.Field,
		Value:   d.Value,
		Message: d.Message,
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind, true
	}
	return "", false
}
