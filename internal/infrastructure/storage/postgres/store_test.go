package postgres

import (
	"testing"

	"livefilter/internal/core/apperror"
	"livefilter/internal/domain/filter"
)

func testStore() *Store[struct{}] {
	return NewStore[struct{}](nil, "tasks", []string{"id", "title", "status"})
}

func TestStore_CheckFields(t *testing.T) {
	s := testStore()

	g := filter.NewGroup().
		AddFilter(filter.New("title", filter.Contains, "x", filter.TypeString))
	if err := s.checkFields(g.Fields()); err != nil {
		t.Fatalf("known field rejected: %v", err)
	}

	g = g.AddGroup(filter.NewOrGroup().
		AddFilter(filter.New("salary", filter.Equals, 1, filter.TypeInteger)))
	err := s.checkFields(g.Fields())
	if err == nil {
		t.Fatal("unknown field in nested group must be fatal")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeUnknownField {
		t.Errorf("expected %s error, got %v", apperror.CodeUnknownField, err)
	}
}

func TestStore_OrderClauses(t *testing.T) {
	s := testStore()

	clauses, err := s.orderClauses([]filter.Sort{
		{Field: "title", Direction: filter.Asc},
		{Field: "status", Direction: filter.Desc},
	})
	if err != nil {
		t.Fatalf("orderClauses failed: %v", err)
	}
	if len(clauses) != 2 || clauses[0] != "title ASC" || clauses[1] != "status DESC" {
		t.Errorf("clauses mismatch: %v", clauses)
	}

	if _, err := s.orderClauses([]filter.Sort{{Field: "salary"}}); err == nil {
		t.Error("unknown sort field must be fatal")
	}
}

func TestStore_CustomPredicateFieldIsKnown(t *testing.T) {
	s := testStore().WithCustomPredicate("search", nil)
	if err := s.checkFields([]string{"search"}); err != nil {
		t.Errorf("custom predicate field should pass the whitelist: %v", err)
	}
}
