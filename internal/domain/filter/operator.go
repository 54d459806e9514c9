// Package filter defines the filter expression model: typed fields, operators,
// and the Filter/Group tree combined with AND/OR. The operator vocabulary
// declared here is the single source of truth for both the query compiler and
// the URL codec.
package filter

// Operator is a named comparison/test valid for a subset of field types.
type Operator string

const (
	// Equality family, valid for every type.
	Equals    Operator = "equals"
	NotEquals Operator = "not_equals"

	// String family.
	Contains    Operator = "contains"
	NotContains Operator = "not_contains"
	StartsWith  Operator = "starts_with"
	EndsWith    Operator = "ends_with"

	// Presence family, valid for every type, never takes a value.
	IsEmpty    Operator = "is_empty"
	IsNotEmpty Operator = "is_not_empty"

	// Ordering family.
	GreaterThan        Operator = "greater_than"
	LessThan           Operator = "less_than"
	GreaterThanOrEqual Operator = "greater_than_or_equal"
	LessThanOrEqual    Operator = "less_than_or_equal"
	Between            Operator = "between"

	// Boolean family, never takes a value.
	IsTrue  Operator = "is_true"
	IsFalse Operator = "is_false"

	// Date family, aliases of the ordering family for date/datetime fields.
	Before     Operator = "before"
	After      Operator = "after"
	OnOrBefore Operator = "on_or_before"
	OnOrAfter  Operator = "on_or_after"

	// Set family, value is a list.
	In    Operator = "in"
	NotIn Operator = "not_in"

	// Array family, set-overlap / set-containment semantics.
	ContainsAny    Operator = "contains_any"
	ContainsAll    Operator = "contains_all"
	NotContainsAny Operator = "not_contains_any"

	// Free-text search on virtual/synthetic fields.
	Matches Operator = "matches"
	Custom  Operator = "custom"
)

// operatorInfo holds metadata about an operator.
type operatorInfo struct {
	Label         string
	RequiresValue bool
}

// operatorRegistry maps operators to their metadata.
var operatorRegistry = map[Operator]operatorInfo{
	Equals:    {"is", true},
	NotEquals: {"is not", true},

	Contains:    {"contains", true},
	NotContains: {"does not contain", true},
	StartsWith:  {"starts with", true},
	EndsWith:    {"ends with", true},

	IsEmpty:    {"is empty", false},
	IsNotEmpty: {"is not empty", false},

	GreaterThan:        {"greater than", true},
	LessThan:           {"less than", true},
	GreaterThanOrEqual: {"greater than or equal to", true},
	LessThanOrEqual:    {"less than or equal to", true},
	Between:            {"is between", true},

	IsTrue:  {"is true", false},
	IsFalse: {"is false", false},

	Before:     {"is before", true},
	After:      {"is after", true},
	OnOrBefore: {"is on or before", true},
	OnOrAfter:  {"is on or after", true},

	In:    {"is any of", true},
	NotIn: {"is none of", true},

	ContainsAny:    {"includes any of", true},
	ContainsAll:    {"includes all of", true},
	NotContainsAny: {"excludes", true},

	Matches: {"matches", true},
	Custom:  {"custom", true},
}

// String returns the wire representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// IsValid reports whether the operator is part of the vocabulary.
func (o Operator) IsValid() bool {
	_, ok := operatorRegistry[o]
	return ok
}

// Label returns the human-readable label for the operator,
// or the raw operator string when it is unknown.
func (o Operator) Label() string {
	if info, ok := operatorRegistry[o]; ok {
		return info.Label
	}
	return string(o)
}

// RequiresValue reports whether the operator needs an associated value.
// Unknown operators report true so that a missing value deactivates them.
func (o Operator) RequiresValue() bool {
	if info, ok := operatorRegistry[o]; ok {
		return info.RequiresValue
	}
	return true
}

// ParseOperator converts a wire string to an Operator.
// Unknown strings return ok=false, never an error.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(s)
	if op.IsValid() {
		return op, true
	}
	return "", false
}
