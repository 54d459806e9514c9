// Package daterange resolves named date presets and converts range
// boundaries between date-only and timestamped representations.
package daterange

import (
	"time"

	"livefilter/internal/domain/filter"
)

// Preset is a named relative date range resolved against "now" at use time.
// Presets are never stored inside a filter; the resolved concrete range is
// what gets persisted and serialized.
type Preset string

const (
	Today      Preset = "today"
	Tomorrow   Preset = "tomorrow"
	Yesterday  Preset = "yesterday"
	Last7Days  Preset = "last_7_days"
	Next7Days  Preset = "next_7_days"
	Last30Days Preset = "last_30_days"
	Next30Days Preset = "next_30_days"
	ThisMonth  Preset = "this_month"
	LastMonth  Preset = "last_month"
	ThisYear   Preset = "this_year"
)

// Boundary marks which side of a range a value sits on. Start boundaries get
// start-of-day timestamps, end boundaries end-of-day, so a between filter on
// a timestamp column covers the entirety of the end day.
type Boundary int

const (
	RangeStart Boundary = iota
	RangeEnd
)

// Resolve returns the (start, end) dates for a preset relative to today in
// UTC. Both ends are inclusive date-only values at midnight UTC.
// Unknown presets return ok=false, never an error.
func Resolve(p Preset) (start, end time.Time, ok bool) {
	return ResolveAt(p, time.Now().UTC())
}

// ResolveAt resolves a preset against an explicit reference time.
func ResolveAt(p Preset, now time.Time) (start, end time.Time, ok bool) {
	today := truncateToDay(now.UTC())

	switch p {
	case Today:
		return today, today, true
	case Tomorrow:
		d := today.AddDate(0, 0, 1)
		return d, d, true
	case Yesterday:
		d := today.AddDate(0, 0, -1)
		return d, d, true
	case Last7Days:
		// Inclusive 7-day window ending today.
		return today.AddDate(0, 0, -6), today, true
	case Next7Days:
		return today, today.AddDate(0, 0, 6), true
	case Last30Days:
		return today.AddDate(0, 0, -29), today, true
	case Next30Days:
		return today, today.AddDate(0, 0, 29), true
	case ThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first, last, true
	case LastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		first := firstOfThis.AddDate(0, -1, 0)
		last := firstOfThis.AddDate(0, 0, -1)
		return first, last, true
	case ThisYear:
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return first, last, true
	}
	return time.Time{}, time.Time{}, false
}

// ResolveRange resolves a preset into a filter.Range with both boundaries
// converted to the target field type's storage representation.
func ResolveRange(p Preset, target filter.FieldType) (filter.Range, bool) {
	return ResolveRangeAt(p, target, time.Now().UTC())
}

// ResolveRangeAt is ResolveRange against an explicit reference time.
func ResolveRangeAt(p Preset, target filter.FieldType, now time.Time) (filter.Range, bool) {
	start, end, ok := ResolveAt(p, now)
	if !ok {
		return filter.Range{}, false
	}
	return filter.Range{
		Start: ConvertToType(start, target, RangeStart),
		End:   ConvertToType(end, target, RangeEnd),
	}, true
}

// ConvertToType converts a range boundary into the field's storage
// representation. For datetime targets a date-only start boundary gets time
// 00:00:00 and an end boundary 23:59:59; date targets are truncated to the
// day. Conversion is total: values that are not times pass through
// unchanged.
func ConvertToType(v any, target filter.FieldType, position Boundary) any {
	ts, ok := v.(time.Time)
	if !ok {
		return v
	}

	switch target {
	case filter.TypeDate:
		return truncateToDay(ts)
	case filter.TypeDateTime:
		if !isMidnight(ts) {
			return ts
		}
		if position == RangeEnd {
			return endOfDay(ts)
		}
		return ts
	}
	return v
}

func truncateToDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

func endOfDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 23, 59, 59, 0, ts.Location())
}

func isMidnight(ts time.Time) bool {
	return ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0
}
