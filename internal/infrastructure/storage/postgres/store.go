package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"livefilter/internal/core/apperror"
	"livefilter/internal/domain/filter"
	"livefilter/internal/query"
)

var tracer = otel.Tracer("livefilter/store")

// ListQuery carries everything a list call needs: the filter tree, sort
// priority, and a page window. Limit <= 0 disables pagination.
type ListQuery struct {
	Filters filter.Group
	Sorts   []filter.Sort
	Limit   int
	Offset  int
}

// ListResult holds one page of records plus the unpaginated total.
type ListResult[T any] struct {
	Items      []T
	TotalCount int64
	Limit      int
	Offset     int
}

// Store executes compiled filter predicates over one table.
//
// Field names in the filter group are resolved against the store's column
// list before execution: referencing an unknown field is a fatal error, not
// a silently dropped filter, since it indicates a programming or
// configuration error rather than user input.
type Store[T any] struct {
	tableName  string
	selectCols []string
	validCols  map[string]bool
	pool       *Pool
	compiler   *query.Compiler
}

// NewStore creates a record store for a table.
func NewStore[T any](pool *Pool, tableName string, selectCols []string) *Store[T] {
	validCols := make(map[string]bool, len(selectCols))
	for _, col := range selectCols {
		validCols[col] = true
	}
	return &Store[T]{
		tableName:  tableName,
		selectCols: selectCols,
		validCols:  validCols,
		pool:       pool,
		compiler:   query.NewCompiler(),
	}
}

// WithCustomPredicate registers a predicate builder for a virtual field and
// marks the field as known.
func (s *Store[T]) WithCustomPredicate(field string, fn query.PredicateFunc) *Store[T] {
	s.compiler = s.compiler.WithCustomPredicate(field, fn)
	s.validCols[field] = true
	return s
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (s *Store[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (s *Store[T]) baseSelect() squirrel.SelectBuilder {
	return s.Builder().
		Select(s.selectCols...).
		From(s.tableName)
}

// List retrieves records matching the filter group, ordered and paginated.
// An empty group applies no filtering at all.
func (s *Store[T]) List(ctx context.Context, q ListQuery) (ListResult[T], error) {
	ctx, span := tracer.Start(ctx, "store.list",
		trace.WithAttributes(
			attribute.String("db.table", s.tableName),
			attribute.Int("filter.count", q.Filters.CountFilters()),
		))
	defer span.End()

	result := ListResult[T]{Limit: q.Limit, Offset: q.Offset}

	if err := s.checkFields(q.Filters.Fields()); err != nil {
		return result, err
	}

	sel := s.baseSelect()
	if pred, ok := s.compiler.Compile(q.Filters); ok {
		sel = sel.Where(pred)
	}

	// Count total (before pagination)
	countQ := s.Builder().
		Select("COUNT(*)").
		FromSelect(sel, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	if err := s.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count %s: %w", s.tableName, err))
	}

	orderBy, err := s.orderClauses(q.Sorts)
	if err != nil {
		return result, err
	}
	if len(orderBy) > 0 {
		sel = sel.OrderBy(orderBy...)
	}

	if q.Limit > 0 {
		sel = sel.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		sel = sel.Offset(uint64(q.Offset))
	}

	sql, args, err := sel.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, s.pool, &result.Items, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("list %s: %w", s.tableName, err))
	}

	return result, nil
}

// GetByID retrieves one record by primary key.
func (s *Store[T]) GetByID(ctx context.Context, id any) (T, error) {
	var entity T

	sql, args, err := s.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, s.pool, &entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(s.tableName, id)
		}
		return entity, apperror.NewDatabase(fmt.Errorf("get %s by id: %w", s.tableName, err))
	}

	return entity, nil
}

// checkFields validates every referenced field against the column
// whitelist. This doubles as SQL injection protection: field names are
// interpolated into predicates as identifiers.
func (s *Store[T]) checkFields(fields []string) error {
	for _, field := range fields {
		if !s.validCols[field] {
			return apperror.NewUnknownField(field)
		}
	}
	return nil
}

// orderClauses maps sorts to ORDER BY clauses, validating fields against
// the column whitelist.
func (s *Store[T]) orderClauses(sorts []filter.Sort) ([]string, error) {
	clauses := make([]string, 0, len(sorts))
	for _, sort := range sorts {
		if !s.validCols[sort.Field] {
			return nil, apperror.NewUnknownField(sort.Field)
		}
		dir := "ASC"
		if sort.Direction == filter.Desc {
			dir = "DESC"
		}
		clauses = append(clauses, sort.Field+" "+dir)
	}
	return clauses, nil
}
