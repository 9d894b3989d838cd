package export

import (
	"fmt"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/options"
	"github.com/goliatone/go-jadn/pkg/schema"
)

// shape is the exporter-neutral reading of one type definition.
type shape struct {
	name        string
	description string
	base        schema.BaseType
	bounds      bounds
	pattern     string
	format      string
	enum        []string
	props       []property
	element     property
}

type bounds struct {
	min *int
	max *int
}

type property struct {
	name        string
	typ         string
	description string
	required    bool
}

// builtin reports the primitive base type a property refers to, if any.
func (p property) builtin() (schema.BaseType, bool) {
	b := schema.BaseType(p.typ)
	return b, b.IsPrimitive()
}

func readSchema(s schema.Schema, r diag.Reporter) ([]shape, error) {
	out := make([]shape, 0, len(s.Types))
	for _, td := range s.Types {
		sh, err := readType(td, r)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, nil
}

func readType(td schema.TypeDefinition, r diag.Reporter) (shape, error) {
	opts, present, err := decode(options.TypeTable, td.Options, td.Name, "", r)
	if err != nil {
		return shape{}, err
	}
	sh := shape{
		name:        td.Name,
		description: td.Description,
		base:        td.BaseType,
		bounds:      readBounds(opts, present),
	}
	sh.pattern, _ = opts.String(options.Pattern)
	sh.format, _ = opts.String(options.Format)

	// The JAS ARRAY_OF keyword compiles to Array with an element type and no
	// fields; read that form as ArrayOf.
	if td.BaseType == schema.Array && len(td.Fields) == 0 {
		if elem, ok := opts.String(options.AEType); ok && elem != "" {
			sh.base = schema.ArrayOf
		}
	}

	switch sh.base {
	case schema.Enumerated:
		for _, fd := range td.Fields {
			sh.enum = append(sh.enum, fd.Name)
		}
	case schema.ArrayOf:
		elem, ok := opts.String(options.AEType)
		if !ok || elem == "" {
			return shape{}, fmt.Errorf("export: type %s: ArrayOf without element type", td.Name)
		}
		sh.element = property{typ: elem, required: true}
	case schema.Array, schema.Choice, schema.Map, schema.Record:
		for _, fd := range td.Fields {
			fopts, fpresent, err := decode(options.FieldTable, fd.Options, td.Name, fd.Name, r)
			if err != nil {
				return shape{}, err
			}
			required := !fopts.Bool(options.Optional)
			if lo, ok := fopts.Int(options.Min); ok && fpresent[options.Min] && lo == 0 {
				required = false
			}
			sh.props = append(sh.props, property{
				name:        fd.Name,
				typ:         fd.Type,
				description: fd.Description,
				required:    required,
			})
		}
	}
	return sh, nil
}

// decode reads entries with table and reports which names were written
// explicitly, as opposed to seeded from the table defaults.
func decode(table *options.Table, entries []string, typeName, fieldName string, r diag.Reporter) (options.Map, map[string]bool, error) {
	local := diag.NewCollector()
	opts, err := table.Decode(entries, local)
	for _, d := range local.Diagnostics() {
		r.Report(d.At(typeName, fieldName))
	}
	if err != nil {
		if e, ok := err.(*diag.Error); ok {
			return nil, nil, e.WithType(typeName).WithField(fieldName)
		}
		return nil, nil, err
	}
	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if d, ok := table.Lookup(entry[0]); ok {
			present[d.Name] = true
		}
	}
	return opts, present, nil
}

func readBounds(opts options.Map, present map[string]bool) bounds {
	var b bounds
	if v, ok := opts.Int(options.Min); ok && present[options.Min] {
		b.min = &v
	}
	if v, ok := opts.Int(options.Max); ok && present[options.Max] {
		b.max = &v
	}
	return b
}
