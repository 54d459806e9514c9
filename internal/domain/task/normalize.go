package task

import "livefilter/internal/domain/filter"

// NormalizeGroup re-applies the task field registry to a decoded filter
// group: field types are corrected to their registered values and string
// scalars left over from URL decoding are coerced to the field's typed
// representation. Filters on unregistered fields pass through untouched and
// are rejected later by the record store.
func NormalizeGroup(g filter.Group) filter.Group {
	filters := make([]filter.Filter, len(g.Filters))
	for i, f := range g.Filters {
		filters[i] = normalizeFilter(f)
	}
	g.Filters = filters

	groups := make([]filter.Group, len(g.Groups))
	for i, sub := range g.Groups {
		groups[i] = NormalizeGroup(sub)
	}
	g.Groups = groups

	return g
}

func normalizeFilter(f filter.Filter) filter.Filter {
	t, ok := FieldTypes[f.Field]
	if !ok {
		return f
	}
	f.Type = t

	switch v := f.Value.(type) {
	case string:
		f.Value = filter.Coerce(t, v)
	case []any:
		coerced := make([]any, len(v))
		for i, item := range v {
			if s, ok := item.(string); ok {
				coerced[i] = filter.Coerce(t, s)
			} else {
				coerced[i] = item
			}
		}
		f.Value = coerced
	case filter.Range:
		if s, ok := v.Start.(string); ok {
			v.Start = filter.Coerce(t, s)
		}
		if s, ok := v.End.(string); ok {
			v.End = filter.Coerce(t, s)
		}
		f.Value = v
	}

	return f
}
