package filter

// Conjunction combines a group's direct filters and subgroups.
// A group applies one conjunction uniformly; heterogeneous logic is
// expressed by nesting groups with different conjunctions.
type Conjunction string

const (
	And Conjunction = "and"
	Or  Conjunction = "or"
)

// ParseConjunction converts a wire string to a Conjunction, defaulting to And.
func ParseConjunction(s string) Conjunction {
	if s == string(Or) {
		return Or
	}
	return And
}

// Group is a boolean-combination node over Filters and nested Groups.
// Order of both lists is display order: it does not affect predicate
// correctness but must survive serialization round trips.
//
// An empty group means "no constraint" and compiles to no predicate at all,
// never an always-false one.
type Group struct {
	Filters     []Filter    `json:"filters"`
	Groups      []Group     `json:"groups,omitempty"`
	Conjunction Conjunction `json:"conjunction"`
}

// NewGroup returns an empty AND group.
func NewGroup() Group {
	return Group{Conjunction: And}
}

// NewOrGroup returns an empty OR group.
func NewOrGroup() Group {
	return Group{Conjunction: Or}
}

// AddFilter appends a filter, returning the new group value.
func (g Group) AddFilter(f Filter) Group {
	filters := make([]Filter, len(g.Filters), len(g.Filters)+1)
	copy(filters, g.Filters)
	g.Filters = append(filters, f)
	return g
}

// RemoveFilter removes the filter at index, returning the new group value.
// Negative indices count from the end (-1 removes the last filter).
// Out-of-range indices are a no-op returning the group unchanged.
func (g Group) RemoveFilter(index int) Group {
	if index < 0 {
		index += len(g.Filters)
	}
	if index < 0 || index >= len(g.Filters) {
		return g
	}
	filters := make([]Filter, 0, len(g.Filters)-1)
	filters = append(filters, g.Filters[:index]...)
	filters = append(filters, g.Filters[index+1:]...)
	g.Filters = filters
	return g
}

// UpdateFilter replaces the filter at index, returning the new group value.
// Negative indices count from the end. Out-of-range indices are a no-op.
func (g Group) UpdateFilter(index int, f Filter) Group {
	if index < 0 {
		index += len(g.Filters)
	}
	if index < 0 || index >= len(g.Filters) {
		return g
	}
	filters := make([]Filter, len(g.Filters))
	copy(filters, g.Filters)
	filters[index] = f
	g.Filters = filters
	return g
}

// AddGroup appends a nested group, returning the new group value.
func (g Group) AddGroup(sub Group) Group {
	groups := make([]Group, len(g.Groups), len(g.Groups)+1)
	copy(groups, g.Groups)
	g.Groups = append(groups, sub)
	return g
}

// HasFilters reports whether the group or any nested group holds a filter.
func (g Group) HasFilters() bool {
	if len(g.Filters) > 0 {
		return true
	}
	for _, sub := range g.Groups {
		if sub.HasFilters() {
			return true
		}
	}
	return false
}

// CountFilters returns the number of filters in the group and all nested
// groups.
func (g Group) CountFilters() int {
	count := len(g.Filters)
	for _, sub := range g.Groups {
		count += sub.CountFilters()
	}
	return count
}

// Fields returns every field name referenced by the group and its nested
// groups, in order of appearance. Duplicates are preserved.
func (g Group) Fields() []string {
	var fields []string
	for _, f := range g.Filters {
		fields = append(fields, f.Field)
	}
	for _, sub := range g.Groups {
		fields = append(fields, sub.Fields()...)
	}
	return fields
}

// SortDirection is asc or desc.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection converts a wire string to a SortDirection,
// defaulting to Asc.
func ParseSortDirection(s string) SortDirection {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// Sort orders results by a field. Independent of Group but carried
// alongside it through the URL codec.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}
