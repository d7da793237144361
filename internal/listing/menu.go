// Package listing filters, sorts and paginates collections already held in
// memory. Nothing here performs I/O or returns an error.
package listing

import (
	"sort"
	"strings"

	"restaurant-site/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey orders items within a menu category.
type SortKey string

const (
	SortName      SortKey = "name"
	SortNameDesc  SortKey = "name-desc"
	SortPrice     SortKey = "price"
	SortPriceDesc SortKey = "price-desc"
	// SortCategory keeps the source order; items are already grouped.
	SortCategory SortKey = "category"
)

// Default price bounds of the menu filter.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 50
)

// PriceRange is an inclusive price bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MenuFilter is the state of the public menu's search panel.
type MenuFilter struct {
	SearchTerm         string     `json:"searchTerm"`
	SelectedCategories []string   `json:"selectedCategories"`
	PriceRange         PriceRange `json:"priceRange"`
	SortBy             SortKey    `json:"sortBy"`
}

// DefaultMenuFilter returns the filter a fresh menu page starts with.
func DefaultMenuFilter() MenuFilter {
	return MenuFilter{
		PriceRange: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		SortBy:     SortName,
	}
}

// IsDefault reports whether f would show the full menu.
func (f MenuFilter) IsDefault() bool {
	return strings.TrimSpace(f.SearchTerm) == "" &&
		len(f.SelectedCategories) == 0 &&
		!f.priceFiltered()
}

func (f MenuFilter) priceFiltered() bool {
	return f.PriceRange != PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
}

// ApplyMenuFilter returns the visible part of menu under f. The steps run
// in a fixed order: search, category allow-list, price range, sort, then
// empty categories are dropped. menu is never modified and applying the
// same filter twice gives the same result.
func ApplyMenuFilter(menu model.Menu, f MenuFilter) model.Menu {
	filtered := menu.Clone()

	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		for i := range filtered {
			filtered[i].Items = Filter(filtered[i].Items, func(item model.MenuItem) bool {
				return MatchesAny(term, item.Name, item.Description)
			})
		}
	}

	if len(f.SelectedCategories) > 0 {
		allowed := make(map[string]bool, len(f.SelectedCategories))
		for _, c := range f.SelectedCategories {
			allowed[c] = true
		}
		filtered = Filter(filtered, func(c model.MenuCategory) bool {
			return allowed[c.Name]
		})
	}

	if f.priceFiltered() {
		lo, hi := f.PriceRange.Min, f.PriceRange.Max
		for i := range filtered {
			filtered[i].Items = Filter(filtered[i].Items, func(item model.MenuItem) bool {
				return item.Price >= lo && item.Price <= hi
			})
		}
	}

	sortItems(filtered, f.SortBy)

	return Filter(filtered, func(c model.MenuCategory) bool {
		return len(c.Items) > 0
	})
}

func sortItems(menu model.Menu, key SortKey) {
	var less func(a, b model.MenuItem) bool

	switch key {
	case SortName, SortNameDesc:
		col := collate.New(language.English)
		if key == SortName {
			less = func(a, b model.MenuItem) bool { return col.CompareString(a.Name, b.Name) < 0 }
		} else {
			less = func(a, b model.MenuItem) bool { return col.CompareString(b.Name, a.Name) < 0 }
		}
	case SortPrice:
		less = func(a, b model.MenuItem) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b model.MenuItem) bool { return b.Price < a.Price }
	default:
		return
	}

	for i := range menu {
		items := menu[i].Items
		sort.SliceStable(items, func(x, y int) bool { return less(items[x], items[y]) })
	}
}
