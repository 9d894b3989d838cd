package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalJSON writes the definition as [name, type, options, description, fields?].
func (td TypeDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(td.Tuple())
}

// UnmarshalJSON reads the positional form written by MarshalJSON.
func (td *TypeDefinition) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("schema: type definition: %w", err)
	}
	if len(row) < 4 || len(row) > 5 {
		return fmt.Errorf("schema: type definition has %d columns, want 4 or 5", len(row))
	}
	var out TypeDefinition
	var base string
	if err := unmarshalColumns(row[:4], &out.Name, &base, &out.Options, &out.Description); err != nil {
		return fmt.Errorf("schema: type definition: %w", err)
	}
	out.BaseType = BaseType(base)
	if len(row) == 5 {
		var fields []json.RawMessage
		if err := json.Unmarshal(row[Fields], &fields); err != nil {
			return fmt.Errorf("schema: type %s fields: %w", out.Name, err)
		}
		out.Fields = make([]FieldDefinition, 0, len(fields))
		for _, raw := range fields {
			fd, err := unmarshalField(raw, out.BaseType == Enumerated)
			if err != nil {
				return fmt.Errorf("schema: type %s: %w", out.Name, err)
			}
			out.Fields = append(out.Fields, fd)
		}
	}
	*td = out
	return nil
}

func unmarshalField(data []byte, enumerated bool) (FieldDefinition, error) {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return FieldDefinition{}, err
	}
	var fd FieldDefinition
	if enumerated {
		if len(row) != 3 {
			return FieldDefinition{}, fmt.Errorf("enumerated item has %d columns, want 3", len(row))
		}
		return fd, unmarshalColumns(row, &fd.Tag, &fd.Name, &fd.Description)
	}
	if len(row) != 5 {
		return FieldDefinition{}, fmt.Errorf("field has %d columns, want 5", len(row))
	}
	return fd, unmarshalColumns(row, &fd.Tag, &fd.Name, &fd.Type, &fd.Options, &fd.Description)
}

func unmarshalColumns(row []json.RawMessage, targets ...any) error {
	for i, target := range targets {
		if err := json.Unmarshal(row[i], target); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON writes an import as [tag, namespace, uid].
func (imp Import) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{imp.Tag, imp.Namespace, imp.UID})
}

// UnmarshalJSON reads [tag, namespace, uid].
func (imp *Import) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) != 3 {
		return fmt.Errorf("schema: import has %d columns, want 3", len(row))
	}
	return unmarshalColumns(row, &imp.Tag, &imp.Namespace, &imp.UID)
}

// MarshalJSON writes the text or the import list.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	if v.isList {
		return json.Marshal(v.imports)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a string or an import list.
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Text(text)
		return nil
	}
	var imports []Import
	if err := json.Unmarshal(data, &imports); err != nil {
		return errors.New("schema: meta value must be a string or an import list")
	}
	*v = Imports(imports...)
	return nil
}
