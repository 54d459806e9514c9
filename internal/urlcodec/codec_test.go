package urlcodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livefilter/internal/domain/filter"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEncode_BetweenAndInScenario(t *testing.T) {
	g := filter.NewGroup().
		AddFilter(filter.New("due_date", filter.Between,
			filter.Range{Start: date(2025, 1, 1), End: date(2025, 1, 31)}, filter.TypeDate)).
		AddFilter(filter.New("status", filter.In,
			[]any{"pending", "in_progress"}, filter.TypeEnum))

	p := Encode(g, nil, DefaultPage())

	dueDate, ok := p["due_date"].(Params)
	require.True(t, ok)
	assert.Equal(t, "2025-01-01", dueDate["start"])
	assert.Equal(t, "2025-01-31", dueDate["end"])
	assert.Equal(t, "between", dueDate["operator"])
	assert.Equal(t, "date", dueDate["type"])

	status, ok := p["status"].(Params)
	require.True(t, ok)
	assert.Equal(t, []any{"pending", "in_progress"}, status["values"])
	assert.Equal(t, "in", status["operator"])

	// Defaults are omitted to keep URLs minimal.
	assert.NotContains(t, p, keyPage)
	assert.NotContains(t, p, keyPerPage)
	assert.NotContains(t, p, keyConjunction)
}

func TestEncode_NullValueOmitsField(t *testing.T) {
	g := filter.NewGroup().
		AddFilter(filter.New("title", filter.Contains, nil, filter.TypeString)).
		AddFilter(filter.New("status", filter.Equals, "pending", filter.TypeEnum))

	p := Encode(g, nil, DefaultPage())
	assert.NotContains(t, p, "title", "a filter that lost its value is absent from the URL")
	assert.Contains(t, p, "status")
}

func TestEncode_NoValueOperatorKeepsField(t *testing.T) {
	g := filter.NewGroup().
		AddFilter(filter.New("assigned_to", filter.IsEmpty, nil, filter.TypeString))

	p := Encode(g, nil, DefaultPage())
	entry, ok := p["assigned_to"].(Params)
	require.True(t, ok)
	assert.Equal(t, "is_empty", entry["operator"])
	assert.NotContains(t, entry, "value")
}

func TestEncode_NestedGroups(t *testing.T) {
	inner := filter.NewOrGroup().
		AddFilter(filter.New("status", filter.Equals, "pending", filter.TypeEnum)).
		AddFilter(filter.New("status", filter.Equals, "in_progress", filter.TypeEnum))

	g := filter.NewGroup().
		AddFilter(filter.New("completed", filter.IsFalse, nil, filter.TypeBoolean)).
		AddGroup(inner)

	p := Encode(g, nil, DefaultPage())

	group0, ok := p["group_0"].(Params)
	require.True(t, ok)
	assert.Equal(t, "or", group0[keyConjunction])

	filters, ok := group0["filters"].(Params)
	require.True(t, ok)

	first, ok := filters["0"].(Params)
	require.True(t, ok)
	assert.Equal(t, "status", first["field"])
	assert.Equal(t, "pending", first["value"])
}

func TestDecode_IndexedArrayRecovery(t *testing.T) {
	p := Params{
		"tags": Params{
			"values":   map[string]any{"2": "urgent", "0": "bug"},
			"operator": "contains_any",
			"type":     "array",
		},
	}

	g := Decode(p)
	require.Len(t, g.Filters, 1)

	f := g.Filters[0]
	assert.Equal(t, "tags", f.Field)
	assert.Equal(t, filter.ContainsAny, f.Operator)
	assert.Equal(t, filter.TypeArray, f.Type)
	assert.Equal(t, []any{"bug", "urgent"}, f.Value,
		"indexed maps are resorted by numeric key, not insertion order")
}

func TestDecode_NonNumericIndicesSortAfterNumeric(t *testing.T) {
	got := sortIndexedMap(map[string]any{
		"b": "last", "1": "two", "10": "ten", "2": "three", "a": "first",
	})
	assert.Equal(t, []any{"two", "three", "ten", "first", "last"}, got)
}

func TestDecode_Defaults(t *testing.T) {
	p := Params{
		"title":    Params{"value": "launch"},
		"status":   Params{"values": []any{"pending"}},
		"due_date": Params{"start": "2025-01-01", "end": "2025-01-31"},
	}

	g := Decode(p)
	require.Len(t, g.Filters, 3)

	byField := map[string]filter.Filter{}
	for _, f := range g.Filters {
		byField[f.Field] = f
	}

	assert.Equal(t, filter.Equals, byField["title"].Operator, "scalar defaults to equals")
	assert.Equal(t, filter.TypeString, byField["title"].Type, "missing type defaults to string")
	assert.Equal(t, filter.In, byField["status"].Operator, "values default to in")
	assert.Equal(t, filter.Between, byField["due_date"].Operator, "start/end mean between")

	r, ok := byField["due_date"].RangeValue()
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 1), r.Start, "date-shaped strings are recognized")
}

func TestDecode_WireValueRecognition(t *testing.T) {
	p := Params{
		"completed": Params{"value": "true", "operator": "equals", "type": "boolean"},
		"priority":  Params{"value": "3", "operator": "equals", "type": "integer"},
		"created_at": Params{
			"value":    "2025-06-01T08:30:00Z",
			"operator": "on_or_after",
			"type":     "datetime",
		},
	}

	g := Decode(p)
	byField := map[string]filter.Filter{}
	for _, f := range g.Filters {
		byField[f.Field] = f
	}

	assert.Equal(t, true, byField["completed"].Value, "boolean strings convert unconditionally")
	assert.Equal(t, "3", byField["priority"].Value,
		"numeric scalars stay strings unless the caller re-applies typed coercion")
	assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		byField["created_at"].Value)
}

func TestDecode_MalformedEntriesAreSkipped(t *testing.T) {
	p := Params{
		"title":       "not a map",
		"empty":       Params{},
		"conjunction": "or",
		"valid":       Params{"value": "x"},
	}

	g := Decode(p)
	assert.Equal(t, filter.Or, g.Conjunction)
	require.Len(t, g.Filters, 1)
	assert.Equal(t, "valid", g.Filters[0].Field)
}

func TestDecode_StartEndShapeForcesBetween(t *testing.T) {
	// A hand-edited URL can pair a range shape with any operator string.
	// The shape decides: a start/end entry is a between filter no matter
	// what operator it declares.
	p := Params{
		"due_date": Params{
			"start":    "2025-01-01",
			"end":      "2025-01-31",
			"operator": "greater_than",
			"type":     "date",
		},
	}

	g := Decode(p)
	require.Len(t, g.Filters, 1)

	f := g.Filters[0]
	assert.Equal(t, filter.Between, f.Operator)
	r, ok := f.RangeValue()
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 1), r.Start)
	assert.Equal(t, date(2025, 1, 31), r.End)
}

func TestDecode_UnknownTypeFallsBackToString(t *testing.T) {
	p := Params{
		"thing": Params{"value": "x", "type": "geo_point"},
	}
	g := Decode(p)
	require.Len(t, g.Filters, 1)
	assert.Equal(t, filter.TypeString, g.Filters[0].Type)
}

func TestRoundTrip(t *testing.T) {
	inner := filter.NewOrGroup().
		AddFilter(filter.New("tags", filter.ContainsAny, []any{"bug", "urgent"}, filter.TypeArray)).
		AddFilter(filter.New("assigned_to", filter.IsEmpty, nil, filter.TypeString))

	g := filter.NewGroup().
		AddFilter(filter.New("due_date", filter.Between,
			filter.Range{Start: date(2025, 1, 1), End: date(2025, 1, 31)}, filter.TypeDate)).
		AddFilter(filter.New("status", filter.In, []any{"pending", "in_progress"}, filter.TypeEnum)).
		AddFilter(filter.New("completed", filter.Equals, true, filter.TypeBoolean)).
		AddGroup(inner)

	sorts := []filter.Sort{
		{Field: "due_date", Direction: filter.Asc},
		{Field: "priority", Direction: filter.Desc},
	}
	page := Page{Number: 3, Size: 25}

	// Through the full wire: nested map, flat query string, and back.
	rawQuery := EncodeQuery(g, sorts, page)
	decoded, decodedSorts, decodedPage := DecodeQuery(rawQuery)

	assert.Equal(t, g.Conjunction, decoded.Conjunction)
	require.Len(t, decoded.Filters, 3)
	require.Len(t, decoded.Groups, 1)

	byField := map[string]filter.Filter{}
	for _, f := range decoded.Filters {
		byField[f.Field] = f
	}

	dueDate := byField["due_date"]
	assert.Equal(t, filter.Between, dueDate.Operator)
	assert.Equal(t, filter.TypeDate, dueDate.Type)
	r, ok := dueDate.RangeValue()
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 1), r.Start)
	assert.Equal(t, date(2025, 1, 31), r.End)

	status := byField["status"]
	assert.Equal(t, filter.In, status.Operator)
	assert.Equal(t, []any{"pending", "in_progress"}, status.Value)

	assert.Equal(t, true, byField["completed"].Value)

	nested := decoded.Groups[0]
	assert.Equal(t, filter.Or, nested.Conjunction)
	require.Len(t, nested.Filters, 2)
	assert.Equal(t, "tags", nested.Filters[0].Field)
	assert.Equal(t, []any{"bug", "urgent"}, nested.Filters[0].Value)
	assert.Equal(t, filter.IsEmpty, nested.Filters[1].Operator)

	assert.Equal(t, sorts, decodedSorts)
	assert.Equal(t, page, decodedPage)
}

func TestRoundTrip_TripleMultiset(t *testing.T) {
	g := filter.NewOrGroup().
		AddFilter(filter.New("title", filter.StartsWith, "Fix", filter.TypeString)).
		AddFilter(filter.New("priority", filter.LessThan, "4", filter.TypeInteger)).
		AddFilter(filter.New("estimated_hours", filter.GreaterThan, "1.5", filter.TypeFloat))

	decoded, _, _ := DecodeQuery(EncodeQuery(g, nil, DefaultPage()))

	want := map[[3]string]bool{}
	for _, f := range g.Filters {
		want[[3]string{f.Field, string(f.Operator), string(f.Type)}] = true
	}
	got := map[[3]string]bool{}
	for _, f := range decoded.Filters {
		got[[3]string{f.Field, string(f.Operator), string(f.Type)}] = true
	}
	assert.Equal(t, want, got, "every (field, operator, type) triple survives the round trip")
}
