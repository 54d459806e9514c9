package urlcodec

import "strconv"

// Pagination defaults and limits.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Page holds pagination state carried alongside the filter group.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"per_page"`
}

// DefaultPage returns page 1 with the default size.
func DefaultPage() Page {
	return Page{Number: DefaultPageNumber, Size: DefaultPageSize}
}

// Offset calculates the SQL offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// EncodePageInto writes pagination into the parameter map, omitting each
// value when it equals its default to keep URLs minimal. Out-of-range sizes
// are omitted too, since decoding resets them to the default anyway; the
// emitted URL always stays within the documented bound.
func EncodePageInto(p Params, page Page) {
	if page.Number > 0 && page.Number != DefaultPageNumber {
		p[keyPage] = strconv.Itoa(page.Number)
	}
	if page.Size > 0 && page.Size <= MaxPageSize && page.Size != DefaultPageSize {
		p[keyPerPage] = strconv.Itoa(page.Size)
	}
}

// DecodePage reads pagination from the parameter map. Missing, non-numeric,
// or out-of-range values silently reset to the defaults.
func DecodePage(p Params) Page {
	page := DefaultPage()

	if s, ok := stringValue(p[keyPage]); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			page.Number = n
		}
	}
	if s, ok := stringValue(p[keyPerPage]); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= MaxPageSize {
			page.Size = n
		}
	}
	return page
}
