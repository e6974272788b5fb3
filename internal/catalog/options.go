package catalog

import (
	"golang.org/x/text/collate"

	"github.com/steve958/plant-shop/internal/domain"
)

// Options derives the distinct values available for a facet within the given
// page scope, collated alphabetically. Empty attribute values are skipped so
// they never show up as a selectable filter.
func Options(products []domain.Product, facet Facet) []string {
	seen := map[string]struct{}{}
	out := []string{}
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, p := range products {
		switch facet {
		case FacetManufacturer:
			add(p.Manufacturer)
		case FacetCategory:
			add(p.Category)
		case FacetType:
			add(p.Type)
		case FacetGender:
			add(string(p.Gender))
		case FacetSize:
			for _, s := range p.Sizes {
				add(s)
			}
		}
	}
	collate.New(collatorTag).SortStrings(out)
	return out
}
