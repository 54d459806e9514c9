package urlcodec

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"livefilter/internal/domain/filter"
)

// Reserved top-level keys that never name a filterable field.
const (
	keyConjunction = "conjunction"
	keySort        = "sort"
	keyPage        = "page"
	keyPerPage     = "per_page"

	groupPrefix = "group_"
)

// Encode serializes a filter group plus optional sorts and pagination into
// a nested parameter map.
//
// Per filter, keyed by field name: between emits start/end/operator/type,
// list values emit values/operator/type, non-null scalars emit
// value/operator/type. A filter whose required value is null is omitted
// entirely: absence means inactive. Operators that take no value emit just
// operator/type.
func Encode(g filter.Group, sorts []filter.Sort, page Page) Params {
	p := Params{}

	encodeGroupInto(p, g)
	if g.Conjunction == filter.Or {
		p[keyConjunction] = string(filter.Or)
	}

	EncodeSortInto(p, sorts)
	EncodePageInto(p, page)

	return p
}

func encodeGroupInto(p Params, g filter.Group) {
	for _, f := range g.Filters {
		if entry, ok := encodeFilter(f); ok {
			p[f.Field] = entry
		}
	}
	for i, sub := range g.Groups {
		p[groupPrefix+strconv.Itoa(i)] = encodeNestedGroup(sub)
	}
}

// encodeNestedGroup namespaces a nested group: its own conjunction plus an
// index-keyed sub-map of filters. Deeper groups nest recursively under
// group_{i} keys of their parent.
func encodeNestedGroup(g filter.Group) Params {
	entry := Params{keyConjunction: string(g.Conjunction)}

	filters := Params{}
	idx := 0
	for _, f := range g.Filters {
		sub, ok := encodeFilter(f)
		if !ok {
			continue
		}
		sub["field"] = f.Field
		filters[strconv.Itoa(idx)] = sub
		idx++
	}
	if len(filters) > 0 {
		entry["filters"] = filters
	}

	for i, sub := range g.Groups {
		entry[groupPrefix+strconv.Itoa(i)] = encodeNestedGroup(sub)
	}
	return entry
}

func encodeFilter(f filter.Filter) (Params, bool) {
	entry := Params{
		"operator": f.Operator.String(),
		"type":     string(f.Type),
	}

	if !f.Operator.RequiresValue() {
		return entry, true
	}
	if f.Value == nil {
		return nil, false
	}

	if r, ok := f.RangeValue(); ok && f.Operator == filter.Between {
		entry["start"] = filter.ValueString(r.Start)
		entry["end"] = filter.ValueString(r.End)
		return entry, true
	}

	if list, ok := f.ListValue(); ok {
		values := make([]any, len(list))
		for i, v := range list {
			values[i] = filter.ValueString(v)
		}
		entry["values"] = values
		return entry, true
	}

	entry["value"] = filter.ValueString(f.Value)
	return entry, true
}

// Decode reconstructs a filter group from a nested parameter map. It never
// fails: unrecognized or malformed entries are skipped, so any query string
// decodes to some valid group. Filters come back ordered by field name,
// nested groups by index.
func Decode(p Params) filter.Group {
	g := filter.Group{Conjunction: filter.And}
	if c, ok := stringValue(p[keyConjunction]); ok {
		g.Conjunction = filter.ParseConjunction(c)
	}

	for _, key := range sortedFieldKeys(p) {
		entry, ok := p[key].(Params)
		if !ok {
			if m, isMap := p[key].(map[string]any); isMap {
				entry = Params(m)
			} else {
				continue
			}
		}
		if f, ok := decodeFilter(key, entry); ok {
			g.Filters = append(g.Filters, f)
		}
	}

	for _, key := range sortedGroupKeys(p) {
		entry, ok := p[key].(Params)
		if !ok {
			continue
		}
		g.Groups = append(g.Groups, decodeNestedGroup(entry))
	}

	return g
}

func decodeNestedGroup(p Params) filter.Group {
	g := filter.Group{Conjunction: filter.And}
	if c, ok := stringValue(p[keyConjunction]); ok {
		g.Conjunction = filter.ParseConjunction(c)
	}

	if filters, ok := p["filters"].(Params); ok {
		entries, _ := orderedValues(filters)
		for _, raw := range entries {
			entry, ok := raw.(Params)
			if !ok {
				continue
			}
			field, ok := stringValue(entry["field"])
			if !ok || field == "" {
				continue
			}
			if f, ok := decodeFilter(field, entry); ok {
				g.Filters = append(g.Filters, f)
			}
		}
	}

	for _, key := range sortedGroupKeys(p) {
		if entry, ok := p[key].(Params); ok {
			g.Groups = append(g.Groups, decodeNestedGroup(entry))
		}
	}

	return g
}

// decodeFilter rebuilds one filter from its sub-map. Shape wins over the
// declared operator: start/end mean between, values means a list filter
// (default operator in), value means a scalar (default operator equals).
// A missing type defaults to string; callers needing typed round trips
// must always emit type.
func decodeFilter(field string, entry Params) (filter.Filter, bool) {
	t := filter.TypeString
	if s, ok := stringValue(entry["type"]); ok {
		if parsed, valid := filter.ParseFieldType(s); valid {
			t = parsed
		}
	}

	op, hasOp := filter.Operator(""), false
	if s, ok := stringValue(entry["operator"]); ok {
		op, hasOp = filter.ParseOperator(s)
	}

	startRaw, hasStart := entry["start"]
	endRaw, hasEnd := entry["end"]
	if hasStart || hasEnd {
		// The start/end shape always means between, even when the entry
		// declares some other operator: a range value is only executable
		// as a range comparison.
		op = filter.Between
		r := filter.Range{}
		if hasStart {
			if s, ok := stringValue(startRaw); ok {
				r.Start = parseWireValue(s)
			}
		}
		if hasEnd {
			if s, ok := stringValue(endRaw); ok {
				r.End = parseWireValue(s)
			}
		}
		return filter.New(field, op, r, t), true
	}

	if raw, ok := entry["values"]; ok {
		if !hasOp {
			op = filter.In
		}
		list, ok := orderedValues(raw)
		if !ok {
			return filter.Filter{}, false
		}
		values := make([]any, 0, len(list))
		for _, v := range list {
			if s, ok := stringValue(v); ok {
				values = append(values, parseWireValue(s))
			}
		}
		return filter.New(field, op, values, t), true
	}

	if raw, ok := entry["value"]; ok {
		if !hasOp {
			op = filter.Equals
		}
		s, ok := stringValue(raw)
		if !ok {
			return filter.Filter{}, false
		}
		return filter.New(field, op, parseWireValue(s), t), true
	}

	// No value keys: only meaningful for operators that take no value.
	if hasOp && !op.RequiresValue() {
		return filter.New(field, op, nil, t), true
	}
	return filter.Filter{}, false
}

// parseWireValue recognizes typed shapes in a wire string: booleans are
// converted unconditionally, then ISO-8601 date, then datetime. Everything
// else stays a string; numeric and enum scalars keep their string
// representation unless the caller re-applies filter.Coerce. That gap is a
// documented property of the codec, not a defect.
func parseWireValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return ts.UTC()
	}
	return s
}

// sortedFieldKeys returns non-reserved, non-group keys in lexicographic
// order so decoding is deterministic regardless of map iteration order.
func sortedFieldKeys(p Params) []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		switch key {
		case keyConjunction, keySort, keyPage, keyPerPage:
			continue
		}
		if strings.HasPrefix(key, groupPrefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// sortedGroupKeys returns group_{i} keys ordered by index.
func sortedGroupKeys(p Params) []string {
	type indexed struct {
		key   string
		index int
	}
	var groups []indexed
	for key := range p {
		if !strings.HasPrefix(key, groupPrefix) {
			continue
		}
		n, err := strconv.Atoi(key[len(groupPrefix):])
		if err != nil {
			continue
		}
		groups = append(groups, indexed{key, n})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].index < groups[j].index })
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.key
	}
	return keys
}

// EncodeQuery returns the percent-encoded query string for a filter group.
// The output is canonical: keys are sorted, defaults omitted.
func EncodeQuery(g filter.Group, sorts []filter.Sort, page Page) string {
	return Flatten(Encode(g, sorts, page)).Encode()
}

// DecodeQuery is the inverse convenience: it parses a raw query string and
// returns whatever filter state it holds. Unparseable input yields empty
// state, never an error.
func DecodeQuery(rawQuery string) (filter.Group, []filter.Sort, Page) {
	values, _ := url.ParseQuery(rawQuery)
	p := Expand(values)
	return Decode(p), DecodeSort(p), DecodePage(p)
}
