// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// Quote represents a quotation with its author.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the opaque backend identifier for this quote.
	ID string

	// Content is the text of the quote.
	Content string

	// Author is who said or wrote the quote.
	Author string

	// Category is one of the fixed labels, never CategoryAll.
	Category Category

	// CreatedAt orders quotes for the quote of the day.
	CreatedAt time.Time

	// IsFavorite is computed per viewer at query time. It is not stored on the quote.
	IsFavorite bool
}

// Category is a quote label. CategoryAll only appears as a filter selector.
type Category string

// The fixed category set, in display order.
const (
	CategoryAll        Category = "All"
	CategoryMotivation Category = "Motivation"
	CategoryLove       Category = "Love"
	CategorySuccess    Category = "Success"
	CategoryWisdom     Category = "Wisdom"
	CategoryHumor      Category = "Humor"
)

// IsAll reports whether c is the All selector. The empty category counts as All.
func (c Category) IsAll() bool {
	return c == CategoryAll || c == ""
}

// Categories returns the selector labels in display order.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryMotivation,
		CategoryLove,
		CategorySuccess,
		CategoryWisdom,
		CategoryHumor,
	}
}

// ParseCategory matches a label case-insensitively. An empty label means All.
func ParseCategory(label string) (Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return CategoryAll, nil
	}

	for _, c := range Categories() {
		if strings.EqualFold(string(c), label) {
			return c, nil
		}
	}

	return "", NewValidationError("category", "unknown category "+label)
}

// Filter is the search screen's (term, category) pair.
type Filter struct {
	Term     string
	Category Category
}

// Normalized trims the term and maps an empty category to All.
func (f Filter) Normalized() Filter {
	out := Filter{Term: strings.TrimSpace(f.Term), Category: f.Category}
	if out.Category == "" {
		out.Category = CategoryAll
	}

	return out
}

// Unfiltered reports whether f selects every quote.
func (f Filter) Unfiltered() bool {
	n := f.Normalized()
	return n.Term == "" && n.Category == CategoryAll
}

// Favorite is the existence-only relation between a user and a quote.
type Favorite struct {
	UserID  string
	QuoteID string
}

// MarkFavorites sets IsFavorite on each quote from the viewer's favorite IDs.
func MarkFavorites(quotes []Quote, favoriteIDs map[string]struct{}) []Quote {
	out := make([]Quote, len(quotes))
	for i, q := range quotes {
		_, q.IsFavorite = favoriteIDs[q.ID]
		out[i] = q
	}

	return out
}
