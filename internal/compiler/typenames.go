package compiler

import "github.com/goliatone/go-jadn/pkg/schema"

// TypeNames translates between JAS type keywords and JADN base types. Names
// missing from the table are references to defined types and pass through.
type TypeNames struct {
	toCanonical map[string]string
	toSource    map[string]string
}

// NewTypeNames builds a table from canonical -> source pairs.
func NewTypeNames(pairs map[schema.BaseType]string) *TypeNames {
	t := &TypeNames{
		toCanonical: make(map[string]string, len(pairs)),
		toSource:    make(map[string]string, len(pairs)),
	}
	for canonical, source := range pairs {
		t.toCanonical[source] = string(canonical)
		t.toSource[string(canonical)] = source
	}
	return t
}

// DefaultTypeNames returns the JAS keyword table.
func DefaultTypeNames() *TypeNames {
	return NewTypeNames(map[schema.BaseType]string{
		schema.Binary:     "BINARY",     // OCTET STRING
		schema.Boolean:    "BOOLEAN",    // BOOLEAN
		schema.Integer:    "INTEGER",    // INTEGER
		schema.Number:     "REAL",       // REAL
		schema.String:     "STRING",     // UTF8String
		schema.Array:      "ARRAY_OF",   // SEQUENCE OF
		schema.Choice:     "CHOICE",     // CHOICE
		schema.Enumerated: "ENUMERATED", // ENUMERATED
		schema.Map:        "MAP",        // SET
		schema.Record:     "RECORD",     // SEQUENCE
	})
}

// Canonical converts a JAS type keyword to its JADN name.
func (t *TypeNames) Canonical(source string) string {
	if name, ok := t.toCanonical[source]; ok {
		return name
	}
	return source
}

// Source converts a JADN type name to its JAS keyword.
func (t *TypeNames) Source(canonical string) string {
	if name, ok := t.toSource[canonical]; ok {
		return name
	}
	return canonical
}
