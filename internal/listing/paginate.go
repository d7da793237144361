package listing

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultPerPage is the page size of the admin lists.
const DefaultPerPage = 10

// pageWindowDelta is how many pages are shown on each side of the current one.
const pageWindowDelta = 2

// Page is one slice of a filtered list plus its metadata.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PerPage     int `json:"perPage"`
}

// Paginate returns page number page of items. Pages are 1-based; a page
// outside [1, TotalPages] is clamped into range.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	slice := make([]T, end-start)
	copy(slice, items[start:end])

	return Page[T]{
		Items:       slice,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PerPage:     perPage,
	}
}

// ShowingRange describes the visible slice, e.g. "Showing 11 to 20 of 42
// items". It is empty for an empty list.
func (p Page[T]) ShowingRange() string {
	if p.TotalItems == 0 {
		return ""
	}
	first := (p.CurrentPage-1)*p.PerPage + 1
	last := min(p.CurrentPage*p.PerPage, p.TotalItems)
	return fmt.Sprintf("Showing %d to %d of %d items", first, last, p.TotalItems)
}

// PageMarker is one entry of the page selector: a page number or a gap.
type PageMarker struct {
	Page     int
	Ellipsis bool
}

func (m PageMarker) String() string {
	if m.Ellipsis {
		return "..."
	}
	return strconv.Itoa(m.Page)
}

// MarshalJSON encodes a page as a number and a gap as "...".
func (m PageMarker) MarshalJSON() ([]byte, error) {
	if m.Ellipsis {
		return json.Marshal("...")
	}
	return json.Marshal(m.Page)
}

// PageWindow returns the page selector for current out of total pages. The
// first and last pages are always present, up to two pages on each side of
// current are shown and larger gaps collapse to an ellipsis. A single page
// needs no selector.
func PageWindow(current, total int) []PageMarker {
	if total <= 1 {
		return nil
	}

	gap := PageMarker{Ellipsis: true}
	markers := []PageMarker{{Page: 1}}

	if current-pageWindowDelta > 2 {
		markers = append(markers, gap)
	}

	for i := max(2, current-pageWindowDelta); i <= min(total-1, current+pageWindowDelta); i++ {
		markers = append(markers, PageMarker{Page: i})
	}

	if current+pageWindowDelta < total-1 {
		markers = append(markers, gap)
	}

	return append(markers, PageMarker{Page: total})
}
