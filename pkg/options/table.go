package options

import (
	"sort"
	"strconv"

	"github.com/goliatone/go-jadn/pkg/diag"
)

// Kind is the value kind of an option.
type Kind uint8

const (
	KindFlag Kind = iota + 1
	KindInteger
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Option names shared by the tables below.
const (
	AEType   = "aetype"
	Pattern  = "pattern"
	Format   = "format"
	Min      = "min"
	Max      = "max"
	ETag     = "etag"
	Optional = "optional"
	ATField  = "atfield"
	EType    = "etype"
	Default  = "default"
	Range    = "range"
)

// Descriptor binds an option name to its tag character and value kind.
type Descriptor struct {
	Name string
	Tag  byte
	Kind Kind
}

// Map holds decoded options keyed by option name. Values are bool, int, or
// string depending on the option kind.
type Map map[string]any

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Bool returns the flag value stored under name.
func (m Map) Bool(name string) bool {
	v, _ := m[name].(bool)
	return v
}

// Int returns the integer stored under name.
func (m Map) Int(name string) (int, bool) {
	v, ok := m[name].(int)
	return v, ok
}

// String returns the string stored under name.
func (m Map) String(name string) (string, bool) {
	v, ok := m[name].(string)
	return v, ok
}

// Table is the closed set of options valid in one context.
type Table struct {
	context     string
	descriptors []Descriptor
	byTag       map[byte]Descriptor
	byName      map[string]Descriptor
	defaults    Map
}

func newTable(context string, defaults Map, descriptors ...Descriptor) *Table {
	t := &Table{
		context:     context,
		descriptors: descriptors,
		byTag:       make(map[byte]Descriptor, len(descriptors)),
		byName:      make(map[string]Descriptor, len(descriptors)),
		defaults:    defaults,
	}
	for _, d := range descriptors {
		t.byTag[d.Tag] = d
		t.byName[d.Name] = d
	}
	return t
}

// TypeTable describes type options (TOPTS).
var TypeTable = newTable("type",
	Map{ETag: false, Min: 1, Max: 1},
	Descriptor{Name: AEType, Tag: '#', Kind: KindString},
	Descriptor{Name: Pattern, Tag: '$', Kind: KindString},
	Descriptor{Name: Format, Tag: '@', Kind: KindString},
	Descriptor{Name: Min, Tag: '[', Kind: KindInteger},
	Descriptor{Name: Max, Tag: ']', Kind: KindInteger},
	Descriptor{Name: ETag, Tag: '=', Kind: KindFlag},
)

// FieldTable describes field options (FOPTS).
var FieldTable = newTable("field",
	Map{Optional: false, Min: 1, Max: 1},
	Descriptor{Name: Optional, Tag: '?', Kind: KindFlag},
	Descriptor{Name: Min, Tag: '[', Kind: KindInteger},
	Descriptor{Name: Max, Tag: ']', Kind: KindInteger},
	Descriptor{Name: ATField, Tag: '&', Kind: KindString},
	Descriptor{Name: EType, Tag: '/', Kind: KindString},
	Descriptor{Name: Default, Tag: '!', Kind: KindString},
)

// Context names the table ("type" or "field").
func (t *Table) Context() string {
	return t.context
}

// Descriptors returns the table entries in declaration order.
func (t *Table) Descriptors() []Descriptor {
	return append([]Descriptor(nil), t.descriptors...)
}

// Lookup finds the descriptor for a tag character.
func (t *Table) Lookup(tag byte) (Descriptor, bool) {
	d, ok := t.byTag[tag]
	return d, ok
}

// Defaults returns a fresh copy of the table defaults.
func (t *Table) Defaults() Map {
	return t.defaults.Clone()
}

// Decode converts option strings into a Map seeded with the table defaults.
// Unknown tags are reported and skipped; an integer payload that does not
// parse fails the whole call.
func (t *Table) Decode(entries []string, r diag.Reporter) (Map, error) {
	r = diag.OrDiscard(r)
	opts := t.Defaults()
	for _, entry := range entries {
		if entry == "" {
			r.Report(diag.Warning(diag.KindUnrecognizedOption, "empty %s option", t.context))
			continue
		}
		d, ok := t.byTag[entry[0]]
		if !ok {
			r.Report(diag.Warning(diag.KindUnrecognizedOption, "unknown %s option", t.context).WithValue(entry))
			continue
		}
		value, err := d.coerce(entry[1:])
		if err != nil {
			return nil, diag.NewError(diag.KindMalformedOptionValue,
				"%s option %s: %q is not an integer", t.context, d.Name, entry[1:]).
				WithValue(entry).WithCause(err)
		}
		opts[d.Name] = value
	}
	return opts, nil
}

// Format is the inverse of Decode. Keys are emitted in table order, values
// equal to the defaults are left out, and keys outside the table are reported.
func (t *Table) Format(opts Map, r diag.Reporter) ([]string, error) {
	r = diag.OrDiscard(r)
	unknown := make([]string, 0)
	for name := range opts {
		if _, ok := t.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		r.Report(diag.Warning(diag.KindUnknownOptionKey, "unknown %s option key %q", t.context, name))
	}

	out := make([]string, 0, len(opts))
	for _, d := range t.descriptors {
		value, ok := opts[d.Name]
		if !ok {
			continue
		}
		if def, hasDefault := t.defaults[d.Name]; hasDefault && sameScalar(def, value) {
			continue
		}
		s, emit, err := d.format(value)
		if err != nil {
			return nil, diag.NewError(diag.KindMalformedOptionValue,
				"%s option %s: %v", t.context, d.Name, err)
		}
		if emit {
			out = append(out, s)
		}
	}
	return out, nil
}

// DecodeType decodes type option strings.
func DecodeType(entries []string, r diag.Reporter) (Map, error) {
	return TypeTable.Decode(entries, r)
}

// DecodeField decodes field option strings.
func DecodeField(entries []string, r diag.Reporter) (Map, error) {
	return FieldTable.Decode(entries, r)
}

func (d Descriptor) coerce(payload string) (any, error) {
	switch d.Kind {
	case KindFlag:
		return true, nil
	case KindInteger:
		return strconv.Atoi(payload)
	case KindString:
		return payload, nil
	default:
		return nil, strconv.ErrSyntax
	}
}

func (d Descriptor) format(value any) (string, bool, error) {
	tag := string(d.Tag)
	switch d.Kind {
	case KindFlag:
		v, ok := value.(bool)
		if !ok {
			return "", false, errWrongKind(d, value)
		}
		return tag, v, nil
	case KindInteger:
		v, ok := value.(int)
		if !ok {
			return "", false, errWrongKind(d, value)
		}
		return tag + strconv.Itoa(v), true, nil
	case KindString:
		v, ok := value.(string)
		if !ok {
			return "", false, errWrongKind(d, value)
		}
		return tag + v, true, nil
	default:
		return "", false, errWrongKind(d, value)
	}
}

func sameScalar(a, b any) bool {
	switch b.(type) {
	case bool, int, string:
		return a == b
	default:
		return false
	}
}
