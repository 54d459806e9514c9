// Package urlcodec serializes filter state to and from flat URL query
// parameters so filter state survives page reloads and is shareable as a
// link.
//
// The wire format is the percent-encoded flattening of a nested parameter
// map using bracket nesting: key[subkey][subsubkey]=value, with array
// elements encoded by positional index. Decoding tolerates everything a
// hand-edited query string can contain: whatever arrives, the result is a
// valid filter group (possibly the empty one), never an error.
package urlcodec

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Params is the nested parameter space between filter state and the flat
// query string. Leaves are strings, branches are Params or []any.
type Params map[string]any

// Flatten converts a nested parameter map into flat bracket-keyed values.
// Maps recurse into key[sub] form; slices encode elements by positional
// index.
func Flatten(p Params) url.Values {
	values := url.Values{}
	for key, v := range p {
		flattenInto(values, key, v)
	}
	return values
}

func flattenInto(values url.Values, prefix string, v any) {
	switch val := v.(type) {
	case Params:
		for k, sub := range val {
			flattenInto(values, prefix+"["+k+"]", sub)
		}
	case map[string]any:
		for k, sub := range val {
			flattenInto(values, prefix+"["+k+"]", sub)
		}
	case []any:
		for i, sub := range val {
			flattenInto(values, prefix+"["+strconv.Itoa(i)+"]", sub)
		}
	case []string:
		for i, sub := range val {
			flattenInto(values, prefix+"["+strconv.Itoa(i)+"]", sub)
		}
	case nil:
		// Absent value, nothing to emit.
	default:
		values.Set(prefix, leafString(val))
	}
}

func leafString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Expand reconstructs the nested parameter map from bracket-keyed values,
// the inverse of Flatten. Arrays sent as repeated empty brackets
// (field[values][]=a&field[values][]=b) become an ordered slice; arrays
// sent with explicit indices stay index-keyed maps and are repaired during
// decoding. Malformed keys degrade to flat entries, never an error.
func Expand(values url.Values) Params {
	root := Params{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		segments, ok := splitBracketKey(key)
		if !ok {
			root[key] = vals[0]
			continue
		}
		assign(root, segments, vals)
	}
	return root
}

// splitBracketKey parses "a[b][c]" into ["a" "b" "c"]. A trailing empty
// segment ("a[b][]") is kept as "" to signal append semantics. Keys with
// unbalanced brackets report ok=false.
func splitBracketKey(key string) ([]string, bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}, true
	}
	if open == 0 {
		return nil, false
	}
	segments := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil, false
		}
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			return nil, false
		}
		segments = append(segments, rest[1:close])
		rest = rest[close+1:]
	}
	return segments, true
}

func assign(node Params, segments []string, vals []string) {
	head := segments[0]

	if len(segments) == 1 {
		// The nested form wins over a bare scalar at the same key,
		// regardless of arrival order.
		if _, nested := node[head].(Params); !nested {
			node[head] = vals[0]
		}
		return
	}

	// Trailing empty segment: the whole repeated-value slice.
	if len(segments) == 2 && segments[1] == "" {
		list := make([]any, len(vals))
		for i, v := range vals {
			list[i] = v
		}
		node[head] = list
		return
	}

	child, ok := node[head].(Params)
	if !ok {
		// A scalar already sits here; the nested form wins.
		child = Params{}
		node[head] = child
	}
	assign(child, segments[1:], vals)
}

// orderedValues repairs the web-framework quirk of delivering arrays as
// indexed maps {"0": "a", "1": "b"} instead of ordered slices. Entries are
// resorted by numeric key; non-numeric keys sort after all numeric keys.
// Slices pass through in their existing order.
func orderedValues(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	case Params:
		return sortIndexedMap(val), true
	case map[string]any:
		return sortIndexedMap(val), true
	case nil:
		return nil, false
	default:
		// A lone scalar is a one-element list.
		return []any{val}, true
	}
}

func sortIndexedMap(m map[string]any) []any {
	type entry struct {
		key     string
		index   int
		numeric bool
	}
	entries := make([]entry, 0, len(m))
	for k := range m {
		if n, err := strconv.Atoi(k); err == nil {
			entries = append(entries, entry{key: k, index: n, numeric: true})
		} else {
			entries = append(entries, entry{key: k})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.numeric && b.numeric:
			return a.index < b.index
		case a.numeric != b.numeric:
			return a.numeric
		default:
			return a.key < b.key
		}
	})
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = m[e.key]
	}
	return out
}

// stringValue extracts a string leaf from a parameter node.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
