// Package catalog implements the in-memory selection and ordering pipeline
// applied to a page-scoped product list: free-text search, facet filters and
// the four supported sort orders. All functions are pure; the input slice is
// never mutated.
package catalog

import (
	"strings"

	"github.com/steve958/plant-shop/internal/domain"
)

// Facet is a named filter dimension. An empty selection for a facet means
// "no restriction", not "match nothing".
type Facet string

const (
	FacetManufacturer Facet = "manufacturer"
	FacetCategory     Facet = "category"
	FacetType         Facet = "type"
	FacetGender       Facet = "gender"
	FacetSize         Facet = "size"
)

// Criteria is the transient, page-scoped filter state: a free-text search
// string plus zero or more selected values per facet. Unknown facet keys are
// ignored so the pipeline stays total.
type Criteria struct {
	Search string
	Facets map[Facet][]string
}

// Select returns the products matching the search string and every non-empty
// facet selection, preserving input order. The search is a case-insensitive
// substring match against the product name; the size facet matches when the
// product's size set intersects the selection.
func Select(products []domain.Product, c Criteria) []domain.Product {
	if len(products) == 0 {
		return []domain.Product{}
	}
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if !matchesFacets(&p, c.Facets) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesFacets(p *domain.Product, facets map[Facet][]string) bool {
	for facet, selected := range facets {
		if len(selected) == 0 {
			continue
		}
		switch facet {
		case FacetManufacturer:
			if !contains(selected, p.Manufacturer) {
				return false
			}
		case FacetCategory:
			if !contains(selected, p.Category) {
				return false
			}
		case FacetType:
			if !contains(selected, p.Type) {
				return false
			}
		case FacetGender:
			if !contains(selected, string(p.Gender)) {
				return false
			}
		case FacetSize:
			if !intersects(p.Sizes, selected) {
				return false
			}
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
