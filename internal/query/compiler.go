// Package query compiles filter expression trees into squirrel predicates.
//
// Compilation is pure syntax-to-predicate translation: field names are
// passed through as column references without existence checks. A filter
// referencing a column the record store does not recognize is surfaced as a
// fatal error by the store at execution time, never swallowed here.
package query

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"livefilter/internal/domain/filter"
)

// PredicateFunc builds the predicate for a custom-operator filter on a
// virtual/synthetic field not backed by a single column.
// Returning ok=false leaves the filter inactive.
type PredicateFunc func(f filter.Filter) (squirrel.Sqlizer, bool)

// Compiler translates filter groups into squirrel predicate trees.
// The zero value is ready to use.
type Compiler struct {
	// custom maps field names to predicate builders for the custom operator.
	custom map[string]PredicateFunc
}

// NewCompiler creates a compiler without custom predicates.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// WithCustomPredicate registers a predicate builder for a virtual field.
func (c *Compiler) WithCustomPredicate(field string, fn PredicateFunc) *Compiler {
	if c.custom == nil {
		c.custom = make(map[string]PredicateFunc)
	}
	c.custom[field] = fn
	return c
}

// Compile walks a filter group and returns the combined predicate.
// ok=false means no predicate: the caller applies no filtering at all,
// which is distinct from a predicate matching nothing. Empty groups,
// filters without a required value, malformed between values, and unknown
// operators all contribute no predicate.
func (c *Compiler) Compile(g filter.Group) (squirrel.Sqlizer, bool) {
	parts := make([]squirrel.Sqlizer, 0, len(g.Filters)+len(g.Groups))

	for _, f := range g.Filters {
		if pred, ok := c.compileFilter(f); ok {
			parts = append(parts, pred)
		}
	}
	for _, sub := range g.Groups {
		if pred, ok := c.Compile(sub); ok {
			parts = append(parts, pred)
		}
	}

	switch len(parts) {
	case 0:
		return nil, false
	case 1:
		return parts[0], true
	}
	if g.Conjunction == filter.Or {
		return squirrel.Or(parts), true
	}
	return squirrel.And(parts), true
}

// Compile compiles a group with the default compiler.
func Compile(g filter.Group) (squirrel.Sqlizer, bool) {
	return NewCompiler().Compile(g)
}

// compileFilter builds the leaf predicate for one filter. A filter that has
// lost its value is treated as inactive, not as an error: filter UIs pass
// through transient incomplete states and must not crash the page.
func (c *Compiler) compileFilter(f filter.Filter) (squirrel.Sqlizer, bool) {
	col := f.Field

	switch f.Operator {
	case filter.Equals:
		// Eq{col: nil} renders IS NULL; an equality comparison against
		// null would never match in SQL semantics.
		return squirrel.Eq{col: f.Value}, true
	case filter.NotEquals:
		return squirrel.NotEq{col: f.Value}, true

	case filter.Contains, filter.Matches:
		if f.Value == nil {
			return nil, false
		}
		return squirrel.ILike{col: "%" + filter.ValueString(f.Value) + "%"}, true
	case filter.NotContains:
		if f.Value == nil {
			return nil, false
		}
		return squirrel.NotILike{col: "%" + filter.ValueString(f.Value) + "%"}, true
	case filter.StartsWith:
		if f.Value == nil {
			return nil, false
		}
		return squirrel.ILike{col: filter.ValueString(f.Value) + "%"}, true
	case filter.EndsWith:
		if f.Value == nil {
			return nil, false
		}
		return squirrel.ILike{col: "%" + filter.ValueString(f.Value)}, true

	case filter.IsEmpty:
		return c.emptyPredicate(f, false), true
	case filter.IsNotEmpty:
		return c.emptyPredicate(f, true), true

	case filter.IsTrue:
		return squirrel.Eq{col: true}, true
	case filter.IsFalse:
		return squirrel.Eq{col: false}, true

	case filter.GreaterThan, filter.After:
		v, ok := scalarValue(f)
		if !ok {
			return nil, false
		}
		return squirrel.Gt{col: v}, true
	case filter.LessThan, filter.Before:
		v, ok := scalarValue(f)
		if !ok {
			return nil, false
		}
		return squirrel.Lt{col: v}, true
	case filter.GreaterThanOrEqual, filter.OnOrAfter:
		v, ok := scalarValue(f)
		if !ok {
			return nil, false
		}
		return squirrel.GtOrEq{col: v}, true
	case filter.LessThanOrEqual, filter.OnOrBefore:
		v, ok := scalarValue(f)
		if !ok {
			return nil, false
		}
		return squirrel.LtOrEq{col: v}, true

	case filter.Between:
		r, ok := f.RangeValue()
		if !ok || r.Start == nil || r.End == nil {
			return nil, false
		}
		return squirrel.And{
			squirrel.GtOrEq{col: r.Start},
			squirrel.LtOrEq{col: r.End},
		}, true

	case filter.In:
		list, ok := f.ListValue()
		if !ok || len(list) == 0 {
			return nil, false
		}
		return squirrel.Eq{col: list}, true
	case filter.NotIn:
		list, ok := f.ListValue()
		if !ok || len(list) == 0 {
			return nil, false
		}
		return squirrel.NotEq{col: list}, true

	case filter.ContainsAny:
		return c.arrayPredicate(f, col+" && ?")
	case filter.ContainsAll:
		return c.arrayPredicate(f, col+" @> ?")
	case filter.NotContainsAny:
		return c.arrayPredicate(f, "NOT ("+col+" && ?)")

	case filter.Custom:
		if fn, ok := c.custom[f.Field]; ok {
			return fn(f)
		}
		return nil, false
	}

	// Unknown operator: the leaf contributes no predicate.
	return nil, false
}

// scalarValue extracts the value of a scalar-comparison filter. Range and
// list values cannot bind as a single comparison argument; a filter carrying
// one is inactive, not a broken predicate handed to the driver.
func scalarValue(f filter.Filter) (any, bool) {
	switch f.Value.(type) {
	case nil, filter.Range, *filter.Range, []any, []string:
		return nil, false
	}
	return f.Value, true
}

// emptyPredicate builds is_empty / is_not_empty with type-dependent
// semantics: strings test the empty string, arrays the empty array literal,
// everything else plain NULL checks.
func (c *Compiler) emptyPredicate(f filter.Filter, negate bool) squirrel.Sqlizer {
	col := f.Field

	switch f.Type {
	case filter.TypeString, filter.TypeText:
		if negate {
			return squirrel.And{
				squirrel.NotEq{col: nil},
				squirrel.NotEq{col: ""},
			}
		}
		return squirrel.Or{
			squirrel.Eq{col: nil},
			squirrel.Eq{col: ""},
		}
	case filter.TypeArray:
		if negate {
			return squirrel.And{
				squirrel.NotEq{col: nil},
				squirrel.Expr(col + " <> '{}'"),
			}
		}
		return squirrel.Or{
			squirrel.Eq{col: nil},
			squirrel.Expr(col + " = '{}'"),
		}
	}

	if negate {
		return squirrel.NotEq{col: nil}
	}
	return squirrel.Eq{col: nil}
}

// arrayPredicate builds an array-operator expression, binding the value list
// as a Postgres text array argument.
func (c *Compiler) arrayPredicate(f filter.Filter, expr string) (squirrel.Sqlizer, bool) {
	list, ok := f.ListValue()
	if !ok || len(list) == 0 {
		return nil, false
	}
	elems := make([]string, len(list))
	for i, v := range list {
		elems[i] = fmt.Sprintf("%v", v)
	}
	return squirrel.Expr(expr, elems), true
}
