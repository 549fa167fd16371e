package spending

import "sort"

// Dictionary is one user's category -> subcategories mapping for a single
// language. Names are kept lowercase; subcategory order is insertion order
// (it only matters for display). The same subcategory may legitimately live
// under several categories - that is the ambiguous case the resolver
// classifies, not something to prevent here.
type Dictionary struct {
	cats map[string][]string
}

func NewDictionary(m map[string][]string) *Dictionary {
	if m == nil {
		m = make(map[string][]string, 0)
	}
	return &Dictionary{cats: m}
}

// Categories returns category names sorted for stable display.
func (d *Dictionary) Categories() []string {
	categories := make([]string, 0, len(d.cats))
	for category := range d.cats {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func (d *Dictionary) Subcategories(category string) []string {
	return d.cats[category]
}

// AddPair registers a subcategory under a category. Adding an existing pair
// is a no-op; empty names are rejected. Returns whether the dictionary
// changed.
func (d *Dictionary) AddPair(category, subcategory string) bool {
	if category == "" || subcategory == "" {
		return false
	}
	subcategories, found := d.cats[category]
	if !found {
		d.cats[category] = []string{subcategory}
		return true
	}
	for _, s := range subcategories {
		if s == subcategory {
			return false
		}
	}
	d.cats[category] = append(subcategories, subcategory)
	return true
}

// RemovePair removes a subcategory from a category; a category left with no
// subcategories is dropped entirely. Returns whether the dictionary changed.
func (d *Dictionary) RemovePair(category, subcategory string) bool {
	subcategories, found := d.cats[category]
	if !found {
		return false
	}
	for i, s := range subcategories {
		if s != subcategory {
			continue
		}
		subcategories = append(subcategories[:i], subcategories[i+1:]...)
		if len(subcategories) == 0 {
			delete(d.cats, category)
		} else {
			d.cats[category] = subcategories
		}
		return true
	}
	return false
}

// ReverseLookup inverts the dictionary on the fly: all categories the given
// subcategory appears under, sorted. An ambiguous subcategory yields more
// than one.
func (d *Dictionary) ReverseLookup(subcategory string) []string {
	matches := make([]string, 0, 1)
	for category, subcategories := range d.cats {
		for _, s := range subcategories {
			if s == subcategory {
				matches = append(matches, category)
				break
			}
		}
	}
	sort.Strings(matches)
	return matches
}

func (d *Dictionary) Map() map[string][]string {
	return d.cats
}

// DefaultDictionary is the template a fresh user starts from (and the
// fallback when a legacy dictionary file has to be reset).
func DefaultDictionary(language string) map[string][]string {
	if language == "ru" {
		return map[string][]string{
			"транспорт": {"такси", "метро", "автобус", "бензин"},
			"еда":       {"продукты", "ресторан", "кофе"},
			"дом":       {"аренда", "коммуналка", "интернет"},
			"здоровье":  {"аптека", "врач", "спорт"},
			"досуг":     {"кино", "книги", "игры"},
		}
	}
	return map[string][]string{
		"transport": {"taxi", "metro", "bus", "fuel"},
		"food":      {"groceries", "restaurant", "coffee"},
		"home":      {"rent", "utilities", "internet"},
		"health":    {"pharmacy", "doctor", "sport"},
		"fun":       {"cinema", "books", "games"},
	}
}
