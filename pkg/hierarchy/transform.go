package hierarchy

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-jadn/pkg/diag"
)

// ConflictError reports a path where a leaf and a map (or two leaves) meet
// while merging branches.
type ConflictError = diag.Error

func conflict(path []string, sep, reason string) *ConflictError {
	return diag.NewError(diag.KindStructuralMergeConflict, "%s", reason).
		WithPath(strings.Join(path, sep))
}

// ToSingleBranch builds a chain of single-key maps: path [a b c] with value 1
// yields {a: {b: {c: 1}}}. An empty path returns an empty map.
func ToSingleBranch(path []string, value any) *Map {
	if len(path) == 0 {
		return &Map{}
	}
	current := value
	for i := len(path) - 1; i >= 0; i-- {
		m := &Map{}
		m.Set(path[i], current)
		current = m
	}
	return current.(*Map)
}

// Branch splits a hierarchical key on sep and builds its single branch.
func Branch(key string, value any, sep string) *Map {
	return ToSingleBranch(strings.Split(key, separator(sep)), value)
}

// Merge folds addition into target. Maps present on both sides are merged
// recursively; any other collision fails with a structural conflict naming the
// colliding path. Maps and sequences taken from addition are copied, so target
// never shares structure with it.
func Merge(target, addition *Map) error {
	return mergeAt(target, addition, nil, DefaultSeparator)
}

func mergeAt(target, addition *Map, path []string, sep string) error {
	var err error
	addition.Range(func(key string, value any) bool {
		at := append(append([]string(nil), path...), key)
		existing, ok := target.Get(key)
		if !ok {
			target.Set(key, clone(value))
			return true
		}
		existingMap, existingIsMap := existing.(*Map)
		valueMap, valueIsMap := value.(*Map)
		switch {
		case existingIsMap && valueIsMap:
			err = mergeAt(existingMap, valueMap, at, sep)
		case existingIsMap:
			err = conflict(at, sep, "leaf value collides with nested map")
		case valueIsMap:
			err = conflict(at, sep, "nested map collides with leaf value")
		default:
			err = conflict(at, sep, "duplicate leaf value")
		}
		return err == nil
	})
	return err
}

// Nest converts a flat map with hierarchical keys into a nested map, e.g.
// {"a.b.c": 1, "a.b.d": 2} becomes {a: {b: {c: 1, d: 2}}}. Entries are folded
// in the flat map's order.
func Nest(flat *Map, sep string) (*Map, error) {
	sep = separator(sep)
	out := &Map{}
	var err error
	flat.Range(func(key string, value any) bool {
		err = mergeAt(out, Branch(key, value, sep), nil, sep)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Flatten converts a tree into a flat map with dot-joined keys. Map keys
// drop any namespace prefix up to the first ':'; sequence elements contribute
// their zero-based index. Each call starts from a fresh accumulator.
//
// Empty maps and sequences have no leaves and produce no entries, so
// Nest(Flatten({"a": {}})) yields {}. Like the numeric key ambiguity handled
// by CollapseNumericSequences, this loss is inherent to the flat form.
func Flatten(tree any, prefix string) *Map {
	return FlattenSep(tree, prefix, DefaultSeparator)
}

// FlattenSep is Flatten with an explicit separator.
func FlattenSep(tree any, prefix, sep string) *Map {
	out := &Map{}
	FlattenInto(out, tree, prefix, sep)
	return out
}

// FlattenInto writes the flattened entries of tree into dst. Later entries
// overwrite earlier ones with the same key.
func FlattenInto(dst *Map, tree any, prefix, sep string) {
	sep = separator(sep)
	switch v := tree.(type) {
	case *Map:
		v.Range(func(key string, value any) bool {
			FlattenInto(dst, value, join(prefix, stripNamespace(key), sep), sep)
			return true
		})
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			FlattenInto(dst, v[k], join(prefix, stripNamespace(k), sep), sep)
		}
	case []any:
		for i, item := range v {
			FlattenInto(dst, item, join(prefix, strconv.Itoa(i), sep), sep)
		}
	default:
		dst.Set(prefix, tree)
	}
}

// CollapseNumericSequences replaces every non-empty map whose keys are exactly
// "0".."n-1" with the equivalent sequence, working bottom-up. The input is not
// modified. A map that really uses those keys as names cannot be told apart
// from a flattened sequence and is collapsed as well. Native map[string]any
// values are converted to *Map first, with sorted keys.
func CollapseNumericSequences(tree any) any {
	switch v := tree.(type) {
	case map[string]any:
		return CollapseNumericSequences(FromNative(v))
	case *Map:
		out := &Map{}
		v.Range(func(key string, value any) bool {
			out.Set(key, CollapseNumericSequences(value))
			return true
		})
		if seq, ok := asSequence(out); ok {
			return seq
		}
		return out
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = CollapseNumericSequences(item)
		}
		return items
	default:
		return tree
	}
}

// clone deep-copies maps and sequences; leaves are shared.
func clone(value any) any {
	switch v := value.(type) {
	case *Map:
		out := &Map{}
		v.Range(func(key string, item any) bool {
			out.Set(key, clone(item))
			return true
		})
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = clone(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = clone(item)
		}
		return out
	default:
		return value
	}
}

func asSequence(m *Map) ([]any, bool) {
	n := m.Len()
	if n == 0 {
		return nil, false
	}
	items := make([]any, n)
	for i := 0; i < n; i++ {
		value, ok := m.Get(strconv.Itoa(i))
		if !ok {
			return nil, false
		}
		items[i] = value
	}
	return items, true
}

func stripNamespace(key string) string {
	if _, local, found := strings.Cut(key, ":"); found {
		return local
	}
	return key
}

func join(prefix, segment, sep string) string {
	if prefix == "" {
		return segment
	}
	return prefix + sep + segment
}

func separator(sep string) string {
	if sep == "" {
		return DefaultSeparator
	}
	return sep
}
