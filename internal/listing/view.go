package listing

import "sync"

// View is a paginated, filtered list. Changing the source items or the
// query sends the view back to page 1.
type View[T any, Q Matcher[T]] struct {
	mu      sync.RWMutex
	items   []T
	query   Q
	page    int
	perPage int
}

// NewView creates a view over items showing perPage items per page.
func NewView[T any, Q Matcher[T]](items []T, query Q, perPage int) *View[T, Q] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &View[T, Q]{
		items:   items,
		query:   query,
		page:    1,
		perPage: perPage,
	}
}

// SetItems replaces the source list, e.g. after a successful reload.
func (v *View[T, Q]) SetItems(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = items
	v.page = 1
}

// SetQuery replaces the filter.
func (v *View[T, Q]) SetQuery(q Q) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
	v.page = 1
}

// SetPage moves to page. Out-of-range pages are clamped when read.
func (v *View[T, Q]) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
}

// Query returns the current filter.
func (v *View[T, Q]) Query() Q {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Filtered returns every item matching the query.
func (v *View[T, Q]) Filtered() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Apply(v.items, v.query)
}

// Page returns the current page of the filtered list.
func (v *View[T, Q]) Page() Page[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Paginate(Apply(v.items, v.query), v.page, v.perPage)
}
