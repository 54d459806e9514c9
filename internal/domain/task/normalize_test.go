package task

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livefilter/internal/domain/filter"
)

func TestNormalizeGroup(t *testing.T) {
	g := filter.NewGroup().
		AddFilter(filter.New("priority", filter.GreaterThan, "3", filter.TypeString)).
		AddFilter(filter.New("estimated_hours", filter.Between,
			filter.Range{Start: "0.5", End: "8"}, filter.TypeString)).
		AddFilter(filter.New("status", filter.In, []any{"pending", "archived"}, filter.TypeString)).
		AddGroup(filter.NewOrGroup().
			AddFilter(filter.New("completed", filter.Equals, "true", filter.TypeString)))

	n := NormalizeGroup(g)

	priority := n.Filters[0]
	assert.Equal(t, filter.TypeInteger, priority.Type, "registry type wins over wire type")
	assert.Equal(t, int64(3), priority.Value)

	hours := n.Filters[1]
	assert.Equal(t, filter.TypeFloat, hours.Type)
	r, ok := hours.RangeValue()
	require.True(t, ok)
	start, ok := r.Start.(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, start.Equal(decimal.NewFromFloat(0.5)))

	status := n.Filters[2]
	assert.Equal(t, filter.TypeEnum, status.Type)
	assert.Equal(t, []any{"pending", "archived"}, status.Value, "enum values stay strings")

	nested := n.Groups[0].Filters[0]
	assert.Equal(t, filter.TypeBoolean, nested.Type)
	assert.Equal(t, true, nested.Value)

	// Original group is untouched.
	assert.Equal(t, filter.TypeString, g.Filters[0].Type)
}

func TestNormalizeGroup_UnknownFieldPassesThrough(t *testing.T) {
	g := filter.NewGroup().
		AddFilter(filter.New("mystery", filter.Equals, "x", filter.TypeString))

	n := NormalizeGroup(g)
	assert.Equal(t, g.Filters[0], n.Filters[0],
		"unregistered fields are left for the record store to reject")
}

func TestNormalizeGroup_DateFields(t *testing.T) {
	g := filter.NewGroup().
		AddFilter(filter.New("due_date", filter.OnOrAfter, "2025-06-01", filter.TypeString))

	n := NormalizeGroup(g)
	assert.Equal(t, filter.TypeDate, n.Filters[0].Type)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), n.Filters[0].Value)
}

func TestFieldRegistryMatchesColumns(t *testing.T) {
	colSet := map[string]bool{}
	for _, c := range Columns {
		colSet[c] = true
	}
	for field := range FieldTypes {
		assert.True(t, colSet[field], "filterable field %s must be a selectable column", field)
	}
}
