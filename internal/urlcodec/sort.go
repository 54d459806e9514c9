package urlcodec

import (
	"strconv"

	"livefilter/internal/domain/filter"
)

// EncodeSortInto writes sorts into the parameter map. A single sort uses
// the flat sort[field]/sort[direction] form; multiple sorts use indexed
// entries where index order is priority order.
func EncodeSortInto(p Params, sorts []filter.Sort) {
	switch len(sorts) {
	case 0:
	case 1:
		p[keySort] = Params{
			"field":     sorts[0].Field,
			"direction": string(sorts[0].Direction),
		}
	default:
		entry := Params{}
		for i, s := range sorts {
			entry[strconv.Itoa(i)] = Params{
				"field":     s.Field,
				"direction": string(s.Direction),
			}
		}
		p[keySort] = entry
	}
}

// DecodeSort reads sorts back out of the parameter map, accepting both the
// single and the indexed form. Entries without a field are skipped; a
// missing direction defaults to ascending.
func DecodeSort(p Params) []filter.Sort {
	raw, ok := p[keySort]
	if !ok {
		return nil
	}
	entry := asParams(raw)
	if entry == nil {
		return nil
	}

	if field, ok := stringValue(entry["field"]); ok && field != "" {
		return []filter.Sort{decodeSortEntry(field, entry)}
	}

	items, _ := orderedValues(entry)
	var sorts []filter.Sort
	for _, item := range items {
		sub := asParams(item)
		if sub == nil {
			continue
		}
		field, ok := stringValue(sub["field"])
		if !ok || field == "" {
			continue
		}
		sorts = append(sorts, decodeSortEntry(field, sub))
	}
	return sorts
}

func decodeSortEntry(field string, entry Params) filter.Sort {
	direction := filter.Asc
	if d, ok := stringValue(entry["direction"]); ok {
		direction = filter.ParseSortDirection(d)
	}
	return filter.Sort{Field: field, Direction: direction}
}

func asParams(v any) Params {
	switch val := v.(type) {
	case Params:
		return val
	case map[string]any:
		return Params(val)
	}
	return nil
}
