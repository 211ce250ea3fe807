package normalizer

import "sort"

// Category is one featured category holding a list of items.
type Category struct {
	Name  string
	Value map[string]any
}

// Items returns the category's item list.
func (c Category) Items() []any {
	items, _ := c.Value["items"].([]any)

	return items
}

// ExtractCategories keeps the entries of data that are objects with an
// "items" list, ordered by name. Everything else is dropped without error.
func ExtractCategories(data map[string]any) []Category {
	var categories []Category

	for name, raw := range data {
		value, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if _, ok := value["items"].([]any); !ok {
			continue
		}

		categories = append(categories, Category{Name: name, Value: value})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories
}
