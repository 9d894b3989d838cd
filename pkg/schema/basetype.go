package schema

// BaseType names a JADN built-in type or, for derived definitions, a
// user-defined type.
type BaseType string

const (
	Binary     BaseType = "Binary"
	Boolean    BaseType = "Boolean"
	Integer    BaseType = "Integer"
	Number     BaseType = "Number"
	String     BaseType = "String"
	Array      BaseType = "Array"
	ArrayOf    BaseType = "ArrayOf"
	Choice     BaseType = "Choice"
	Enumerated BaseType = "Enumerated"
	Map        BaseType = "Map"
	Record     BaseType = "Record"
)

// PrimitiveTypes lists the built-in types without fields.
var PrimitiveTypes = []BaseType{Binary, Boolean, Integer, Number, String}

// StructureTypes lists the built-in types that carry a field list. ArrayOf is
// a structure but its list is always empty; the element type is an option.
var StructureTypes = []BaseType{Array, ArrayOf, Choice, Enumerated, Map, Record}

// IsPrimitive reports whether b is one of the five primitive types.
func (b BaseType) IsPrimitive() bool {
	switch b {
	case Binary, Boolean, Integer, Number, String:
		return true
	}
	return false
}

// IsStructure reports whether b is a built-in structure type.
func (b BaseType) IsStructure() bool {
	switch b {
	case Array, ArrayOf, Choice, Enumerated, Map, Record:
		return true
	}
	return false
}

// IsBuiltin reports whether b is any JADN built-in type.
func (b BaseType) IsBuiltin() bool {
	return b.IsPrimitive() || b.IsStructure()
}

// PositionalTags reports whether field tags follow field order.
func (b BaseType) PositionalTags() bool {
	return b == Record
}

func (b BaseType) String() string {
	return string(b)
}
