package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livefilter/internal/domain/filter"
)

// Fixed reference date for deterministic preset resolution.
var refDate = time.Date(2025, time.July, 9, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveAt(t *testing.T) {
	tests := []struct {
		preset    Preset
		wantStart time.Time
		wantEnd   time.Time
	}{
		{Today, day(2025, 7, 9), day(2025, 7, 9)},
		{Tomorrow, day(2025, 7, 10), day(2025, 7, 10)},
		{Yesterday, day(2025, 7, 8), day(2025, 7, 8)},
		{Last7Days, day(2025, 7, 3), day(2025, 7, 9)},
		{Next7Days, day(2025, 7, 9), day(2025, 7, 15)},
		{Last30Days, day(2025, 6, 10), day(2025, 7, 9)},
		{Next30Days, day(2025, 7, 9), day(2025, 8, 7)},
		{ThisMonth, day(2025, 7, 1), day(2025, 7, 31)},
		{LastMonth, day(2025, 6, 1), day(2025, 6, 30)},
		{ThisYear, day(2025, 1, 1), day(2025, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			start, end, ok := ResolveAt(tt.preset, refDate)
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestResolveAt_Last7DaysIsSevenDayWindow(t *testing.T) {
	start, end, ok := ResolveAt(Last7Days, refDate)
	require.True(t, ok)
	assert.Equal(t, 6.0, end.Sub(start).Hours()/24, "inclusive window ending today spans 7 days")
}

func TestResolveAt_UnknownPreset(t *testing.T) {
	_, _, ok := ResolveAt(Preset("fortnight"), refDate)
	assert.False(t, ok, "unknown presets return ok=false, never panic")
}

func TestResolveAt_MonthBoundaries(t *testing.T) {
	// Last month across a year boundary.
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	start, end, ok := ResolveAt(LastMonth, jan)
	require.True(t, ok)
	assert.Equal(t, day(2024, 12, 1), start)
	assert.Equal(t, day(2024, 12, 31), end)

	// This month in a leap February.
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	start, end, ok = ResolveAt(ThisMonth, feb)
	require.True(t, ok)
	assert.Equal(t, day(2024, 2, 1), start)
	assert.Equal(t, day(2024, 2, 29), end)
}

func TestConvertToType_DatetimeBoundaries(t *testing.T) {
	d := day(2025, 1, 31)

	start := ConvertToType(d, filter.TypeDateTime, RangeStart)
	assert.Equal(t, day(2025, 1, 31), start, "start boundary keeps start of day")

	end := ConvertToType(d, filter.TypeDateTime, RangeEnd)
	assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), end,
		"end boundary extends to end of day so the whole day is included")
}

func TestConvertToType_DateTruncates(t *testing.T) {
	ts := time.Date(2025, 1, 31, 18, 45, 12, 0, time.UTC)
	got := ConvertToType(ts, filter.TypeDate, RangeEnd)
	assert.Equal(t, day(2025, 1, 31), got, "datetime to date drops time of day")
}

func TestConvertToType_NonMidnightDatetimePassesThrough(t *testing.T) {
	ts := time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC)
	got := ConvertToType(ts, filter.TypeDateTime, RangeEnd)
	assert.Equal(t, ts, got, "an explicit timestamp is not rewritten")
}

func TestConvertToType_TotalOverNonTimes(t *testing.T) {
	assert.Equal(t, "hello", ConvertToType("hello", filter.TypeDate, RangeStart))
	assert.Equal(t, 42, ConvertToType(42, filter.TypeDateTime, RangeEnd))
	assert.Nil(t, ConvertToType(nil, filter.TypeDate, RangeEnd))
}

func TestResolveRangeAt(t *testing.T) {
	r, ok := ResolveRangeAt(Last7Days, filter.TypeDateTime, refDate)
	require.True(t, ok)
	assert.Equal(t, day(2025, 7, 3), r.Start)
	assert.Equal(t, time.Date(2025, 7, 9, 23, 59, 59, 0, time.UTC), r.End)

	r, ok = ResolveRangeAt(Last7Days, filter.TypeDate, refDate)
	require.True(t, ok)
	assert.Equal(t, day(2025, 7, 9), r.End, "date-only target stays date-only")

	_, ok = ResolveRangeAt(Preset("fortnight"), filter.TypeDate, refDate)
	assert.False(t, ok)
}
