package compiler

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-jadn/pkg/diag"
	"github.com/goliatone/go-jadn/pkg/jas"
	"github.com/goliatone/go-jadn/pkg/schema"
)

const importKey = "import"

func compileMeta(metas []jas.Meta) (schema.Meta, []error) {
	meta := make(schema.Meta, len(metas))
	var errs []error
	for _, m := range metas {
		if !strings.EqualFold(m.Key, importKey) {
			meta[m.Key] = schema.Text(strings.Join(m.Val, " "))
			continue
		}
		imports := make([]schema.Import, 0, len(m.Val))
		failed := false
		for _, raw := range m.Val {
			imp, err := parseImport(raw)
			if err != nil {
				errs = append(errs, err.WithType(m.Key))
				failed = true
				continue
			}
			imports = append(imports, imp)
		}
		if !failed {
			meta[m.Key] = schema.Imports(imports...)
		}
	}
	return meta, errs
}

// parseImport reads "tag, namespace, uid".
func parseImport(raw string) (schema.Import, *diag.Error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return schema.Import{}, diag.NewError(diag.KindMalformedImportMeta,
			"import needs \"tag, namespace, uid\", got %d parts", len(parts)).WithValue(raw)
	}
	tag, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return schema.Import{}, diag.NewError(diag.KindMalformedImportMeta,
			"import tag %q is not an integer", strings.TrimSpace(parts[0])).WithValue(raw).WithCause(err)
	}
	return schema.Import{
		Tag:       tag,
		Namespace: strings.TrimSpace(parts[1]),
		UID:       strings.TrimSpace(parts[2]),
	}, nil
}
