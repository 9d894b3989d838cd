package options

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-jadn/pkg/diag"
)

// Encode renders an option map with the inverse table used by the JAS
// compiler: optional, atfield, range, pattern, format and aetype. Every other
// key is reported as KindUnknownOptionKey and dropped. Keys are visited in
// sorted order so the output is deterministic.
func Encode(opts Map, r diag.Reporter) []string {
	r = diag.OrDiscard(r)
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		v := opts[k]
		switch k {
		case Optional:
			if b, ok := v.(bool); ok && b {
				out = append(out, "?")
			}
		case ATField:
			out = append(out, "{"+stringValue(v))
		case Range:
			lo, hi, ok := rangeBounds(v)
			if !ok {
				r.Report(diag.Warning(diag.KindMalformedOptionValue, "range option needs two integer bounds").
					WithValue(fmt.Sprint(v)))
				continue
			}
			out = append(out, "["+strconv.Itoa(lo)+":"+strconv.Itoa(hi))
		case Pattern:
			out = append(out, ">"+stringValue(v))
		case Format:
			out = append(out, "@"+stringValue(v))
		case AEType:
			out = append(out, "#"+stringValue(v))
		default:
			r.Report(diag.Warning(diag.KindUnknownOptionKey, "unknown option key %q", k))
		}
	}
	return out
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func rangeBounds(v any) (int, int, bool) {
	switch r := v.(type) {
	case [2]int:
		return r[0], r[1], true
	case []int:
		if len(r) == 2 {
			return r[0], r[1], true
		}
	case []any:
		if len(r) == 2 {
			lo, ok1 := r[0].(int)
			hi, ok2 := r[1].(int)
			return lo, hi, ok1 && ok2
		}
	}
	return 0, 0, false
}

func errWrongKind(d Descriptor, value any) error {
	return fmt.Errorf("expected %s value, got %T", d.Kind, value)
}
