package filter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Filter is one leaf predicate: a field compared against a value.
// Filters are immutable value objects; "updating" one means building a
// replacement, never mutating in place.
type Filter struct {
	Field    string    `json:"field"`
	Operator Operator  `json:"operator"`
	Value    any       `json:"value,omitempty"`
	Type     FieldType `json:"type"`
}

// Range is the 2-tuple value of a between filter.
type Range struct {
	Start any `json:"start"`
	End   any `json:"end"`
}

// New constructs a Filter.
func New(field string, op Operator, value any, t FieldType) Filter {
	return Filter{Field: field, Operator: op, Value: value, Type: t}
}

// Valid reports whether the filter's operator is legal for its type.
func (f Filter) Valid() bool {
	return ValidOperator(f.Type, f.Operator)
}

// HasValue reports whether the filter carries a usable value. Operators that
// never take a value (is_empty, is_true, ...) always report true.
func (f Filter) HasValue() bool {
	if !f.Operator.RequiresValue() {
		return true
	}
	return f.Value != nil
}

// RangeValue extracts a Range from the filter value. It accepts a Range
// directly or a 2-element slice; anything else reports ok=false.
func (f Filter) RangeValue() (Range, bool) {
	switch v := f.Value.(type) {
	case Range:
		return v, true
	case *Range:
		if v == nil {
			return Range{}, false
		}
		return *v, true
	case []any:
		if len(v) == 2 {
			return Range{Start: v[0], End: v[1]}, true
		}
	}
	return Range{}, false
}

// ListValue extracts a list from the filter value, normalizing []string
// to []any. A scalar value reports ok=false.
func (f Filter) ListValue() ([]any, bool) {
	switch v := f.Value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// ValueString renders a filter value in its wire representation: dates as
// 2006-01-02, timestamps as RFC 3339, booleans as true/false.
func ValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
