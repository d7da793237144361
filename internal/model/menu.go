package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Menu categories offered by the restaurant.
const (
	CategoryStarters    = "Starters"
	CategoryMainCourses = "Main Courses"
	CategoryDesserts    = "Desserts"
	CategoryBeverages   = "Beverages"
)

// Categories lists the menu categories in display order.
var Categories = []string{
	CategoryStarters,
	CategoryMainCourses,
	CategoryDesserts,
	CategoryBeverages,
}

// IsCategory reports whether name is one of Categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// MenuItem is a single dish or drink.
type MenuItem struct {
	ID          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
}

// MenuCategory is one named group of items.
type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Menu is the grouped-by-category collection. Category order is
// significant and survives a JSON round trip.
type Menu []MenuCategory

// GroupByCategory groups a flat item list, keeping first-seen category order.
func GroupByCategory(items []MenuItem) Menu {
	index := make(map[string]int)
	menu := Menu{}
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(menu)
			index[item.Category] = i
			menu = append(menu, MenuCategory{Name: item.Category})
		}
		menu[i].Items = append(menu[i].Items, item)
	}
	return menu
}

// Category returns the named category and whether it exists.
func (m Menu) Category(name string) (MenuCategory, bool) {
	for _, c := range m {
		if c.Name == name {
			return c, true
		}
	}
	return MenuCategory{}, false
}

// CategoryNames returns the category names in order.
func (m Menu) CategoryNames() []string {
	names := make([]string, 0, len(m))
	for _, c := range m {
		names = append(names, c.Name)
	}
	return names
}

// ItemCount returns the total number of items across categories.
func (m Menu) ItemCount() int {
	n := 0
	for _, c := range m {
		n += len(c.Items)
	}
	return n
}

// Clone returns a deep copy of m.
func (m Menu) Clone() Menu {
	out := make(Menu, len(m))
	for i, c := range m {
		items := make([]MenuItem, len(c.Items))
		copy(items, c.Items)
		out[i] = MenuCategory{Name: c.Name, Items: items}
	}
	return out
}

// MarshalJSON encodes the menu as {"Category": [items...]} in order.
func (m Menu) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		items := c.Items
		if items == nil {
			items = []MenuItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes {"Category": [items...]} keeping key order. Items
// missing a category inherit their group's name.
func (m *Menu) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read menu: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("menu must be a JSON object")
	}

	menu := Menu{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read menu category: %w", err)
		}
		name, _ := tok.(string)

		var items []MenuItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("failed to decode items for %q: %w", name, err)
		}
		for i := range items {
			if items[i].Category == "" {
				items[i].Category = name
			}
		}
		menu = append(menu, MenuCategory{Name: name, Items: items})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close menu object: %w", err)
	}

	*m = menu
	return nil
}
