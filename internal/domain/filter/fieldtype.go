package filter

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FieldType is the semantic type of a filterable field. It drives operator
// validation, value parsing, and predicate construction.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeFloat    FieldType = "float"
	TypeBoolean  FieldType = "boolean"
	TypeDate     FieldType = "date"
	TypeDateTime FieldType = "datetime"
	TypeEnum     FieldType = "enum"
	TypeArray    FieldType = "array"
	TypeText     FieldType = "text"
)

// TypeDefinition is the extension point for field types beyond the built-in
// vocabulary. Built-ins and custom types are just different implementers.
type TypeDefinition interface {
	// Operators returns the ordered list of legal operators for the type.
	Operators() []Operator
	// DefaultOperator is the operator preselected when a field is first
	// added to a filter UI.
	DefaultOperator() Operator
	// Validate reports whether op is legal for the type.
	Validate(op Operator) bool
	// ToFilterValue coerces a wire string into the typed value stored in a
	// Filter. Returns the input unchanged when no coercion applies.
	ToFilterValue(s string) any
	// ToUIValue converts a typed value back to its wire/display string.
	ToUIValue(v any) string
	// UIComponentHint names the widget a form renderer should use.
	UIComponentHint() string
}

// builtinType implements TypeDefinition from a static table entry.
type builtinType struct {
	operators []Operator
	defaultOp Operator
	coerce    func(string) any
	uiHint    string
}

func (t builtinType) Operators() []Operator {
	ops := make([]Operator, len(t.operators))
	copy(ops, t.operators)
	return ops
}

func (t builtinType) DefaultOperator() Operator { return t.defaultOp }

func (t builtinType) Validate(op Operator) bool {
	for _, o := range t.operators {
		if o == op {
			return true
		}
	}
	return false
}

func (t builtinType) ToFilterValue(s string) any {
	if t.coerce == nil {
		return s
	}
	return t.coerce(s)
}

func (t builtinType) ToUIValue(v any) string { return ValueString(v) }

func (t builtinType) UIComponentHint() string { return t.uiHint }

// typeRegistry maps field types to their definitions. Equality and presence
// operators appear for every type; presence operators never take a value.
var typeRegistry = map[FieldType]TypeDefinition{
	TypeString: builtinType{
		operators: []Operator{
			Contains, NotContains, Equals, NotEquals,
			StartsWith, EndsWith, IsEmpty, IsNotEmpty,
		},
		defaultOp: Contains,
		uiHint:    "text_input",
	},
	TypeText: builtinType{
		operators: []Operator{
			Matches, Contains, NotContains, Equals, NotEquals,
			StartsWith, EndsWith, IsEmpty, IsNotEmpty,
		},
		defaultOp: Matches,
		uiHint:    "search_input",
	},
	TypeInteger: builtinType{
		operators: []Operator{
			Equals, NotEquals, GreaterThan, LessThan,
			GreaterThanOrEqual, LessThanOrEqual, Between,
			IsEmpty, IsNotEmpty,
		},
		defaultOp: Equals,
		coerce:    coerceInteger,
		uiHint:    "number_input",
	},
	TypeFloat: builtinType{
		operators: []Operator{
			Equals, NotEquals, GreaterThan, LessThan,
			GreaterThanOrEqual, LessThanOrEqual, Between,
			IsEmpty, IsNotEmpty,
		},
		defaultOp: Equals,
		coerce:    coerceFloat,
		uiHint:    "number_input",
	},
	TypeBoolean: builtinType{
		operators: []Operator{
			IsTrue, IsFalse, Equals, NotEquals, IsEmpty, IsNotEmpty,
		},
		defaultOp: IsTrue,
		coerce:    coerceBoolean,
		uiHint:    "checkbox",
	},
	TypeDate: builtinType{
		operators: []Operator{
			Equals, NotEquals, Before, After,
			OnOrBefore, OnOrAfter, Between, IsEmpty, IsNotEmpty,
		},
		defaultOp: Equals,
		coerce:    coerceDate,
		uiHint:    "date_picker",
	},
	TypeDateTime: builtinType{
		operators: []Operator{
			Equals, NotEquals, Before, After,
			OnOrBefore, OnOrAfter, Between, IsEmpty, IsNotEmpty,
		},
		defaultOp: Equals,
		coerce:    coerceDateTime,
		uiHint:    "datetime_picker",
	},
	TypeEnum: builtinType{
		operators: []Operator{
			In, NotIn, Equals, NotEquals, IsEmpty, IsNotEmpty,
		},
		defaultOp: In,
		uiHint:    "select",
	},
	TypeArray: builtinType{
		operators: []Operator{
			ContainsAny, ContainsAll, NotContainsAny,
			Equals, NotEquals, IsEmpty, IsNotEmpty,
		},
		defaultOp: ContainsAny,
		uiHint:    "multi_select",
	},
}

// Definition returns the TypeDefinition for a field type.
// Unknown types return ok=false.
func Definition(t FieldType) (TypeDefinition, bool) {
	def, ok := typeRegistry[t]
	return def, ok
}

// OperatorsFor returns the ordered list of legal operators for a field type.
// Unknown types return an empty list, never an error.
func OperatorsFor(t FieldType) []Operator {
	if def, ok := typeRegistry[t]; ok {
		return def.Operators()
	}
	return []Operator{}
}

// DefaultOperator returns the default operator for a field type,
// or Equals for unknown types.
func DefaultOperator(t FieldType) Operator {
	if def, ok := typeRegistry[t]; ok {
		return def.DefaultOperator()
	}
	return Equals
}

// ValidOperator reports whether op is legal for field type t.
// Unknown type/operator pairs return false, never an error.
func ValidOperator(t FieldType, op Operator) bool {
	if def, ok := typeRegistry[t]; ok {
		return def.Validate(op)
	}
	return false
}

// ParseFieldType converts a wire string to a FieldType.
// Unknown strings return ok=false.
func ParseFieldType(s string) (FieldType, bool) {
	t := FieldType(s)
	_, ok := typeRegistry[t]
	return t, ok
}

// Coerce re-applies a field type's representation to a wire string. URL
// decoding leaves numeric and enum scalars as strings; callers that need
// typed values run them through Coerce.
func Coerce(t FieldType, s string) any {
	if def, ok := typeRegistry[t]; ok {
		return def.ToFilterValue(s)
	}
	return s
}

func coerceInteger(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

// coerceFloat parses through decimal to keep exact numeric values intact
// for predicate arguments.
func coerceFloat(s string) any {
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return s
}

func coerceBoolean(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func coerceDate(s string) any {
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	return s
}

func coerceDateTime(s string) any {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return ts.UTC()
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	return s
}
