package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Type definition columns.
const (
	TName  = 0 // type name
	TType  = 1 // base type
	TOpts  = 2 // type options
	TDesc  = 3 // type description
	Fields = 4 // field list
)

// Field definition columns. Enumerated items use EDesc in place of FType.
const (
	FTag  = 0
	FName = 1
	EDesc = 2
	FType = 2
	FOpts = 3
	FDesc = 4
)

// Schema is the canonical JADN model: module metadata plus ordered type
// definitions. It is built once by the compiler and only read afterwards.
type Schema struct {
	Meta  Meta             `json:"meta"`
	Types []TypeDefinition `json:"types"`
}

// Type looks up a definition by name.
func (s Schema) Type(name string) (TypeDefinition, bool) {
	for _, td := range s.Types {
		if td.Name == name {
			return td, true
		}
	}
	return TypeDefinition{}, false
}

// TypeDefinition is one row of the types table.
type TypeDefinition struct {
	Name        string
	BaseType    BaseType
	Options     []string
	Description string
	Fields      []FieldDefinition
}

// HasFields reports whether the definition carries a field column.
func (td TypeDefinition) HasFields() bool {
	return td.BaseType.IsStructure()
}

// Tuple returns the positional form of the definition.
func (td TypeDefinition) Tuple() []any {
	row := []any{td.Name, string(td.BaseType), nonNil(td.Options), td.Description}
	if !td.HasFields() {
		return row
	}
	fields := make([]any, 0, len(td.Fields))
	enumerated := td.BaseType == Enumerated
	for _, fd := range td.Fields {
		fields = append(fields, fd.Tuple(enumerated))
	}
	return append(row, fields)
}

// Field returns the field with the given tag.
func (td TypeDefinition) Field(tag int) (FieldDefinition, bool) {
	for _, fd := range td.Fields {
		if fd.Tag == tag {
			return fd, true
		}
	}
	return FieldDefinition{}, false
}

// FieldDefinition is one entry of a structure's field list. Type and Options
// are unused for Enumerated items.
type FieldDefinition struct {
	Tag         int
	Name        string
	Type        string
	Options     []string
	Description string
}

// Tuple returns the positional form of the field.
func (fd FieldDefinition) Tuple(enumerated bool) []any {
	if enumerated {
		return []any{fd.Tag, fd.Name, fd.Description}
	}
	return []any{fd.Tag, fd.Name, fd.Type, nonNil(fd.Options), fd.Description}
}

// Import is one entry of the "import" metadata: a tag, a namespace prefix and
// the imported module's unique identifier.
type Import struct {
	Tag       int
	Namespace string
	UID       string
}

// MetaValue is either plain text or a list of imports.
type MetaValue struct {
	text    string
	imports []Import
	isList  bool
}

// Text wraps a plain metadata string.
func Text(s string) MetaValue {
	return MetaValue{text: s}
}

// Imports wraps an import list.
func Imports(items ...Import) MetaValue {
	return MetaValue{imports: append([]Import{}, items...), isList: true}
}

// Text returns the string value when v is not an import list.
func (v MetaValue) Text() (string, bool) {
	return v.text, !v.isList
}

// Imports returns the import list when v holds one.
func (v MetaValue) Imports() ([]Import, bool) {
	if !v.isList {
		return nil, false
	}
	return append([]Import(nil), v.imports...), true
}

func (v MetaValue) String() string {
	if !v.isList {
		return v.text
	}
	parts := make([]string, 0, len(v.imports))
	for _, imp := range v.imports {
		parts = append(parts, fmt.Sprintf("%d, %s, %s", imp.Tag, imp.Namespace, imp.UID))
	}
	return strings.Join(parts, "; ")
}

// Meta holds module metadata keyed as written in the source.
type Meta map[string]MetaValue

// Keys returns the metadata keys in sorted order.
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text returns a plain-text entry.
func (m Meta) Text(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	return v.Text()
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
