package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steve958/plant-shop/internal/domain"
)

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestSelectEmptyCriteriaReturnsAll(t *testing.T) {
	products := []domain.Product{
		{Name: "Ruža", Manufacturer: "Floris"},
		{Name: "Božur", Manufacturer: "Agrosem"},
		{Name: "Lala", Manufacturer: "Floris"},
	}
	got := Select(products, Criteria{})
	assert.Equal(t, names(products), names(got), "empty criteria must keep membership and order")

	got = Select(products, Criteria{Facets: map[Facet][]string{FacetManufacturer: {}}})
	assert.Equal(t, names(products), names(got), "empty facet selection imposes no restriction")
}

func TestSelectEmptyInput(t *testing.T) {
	got := Select(nil, Criteria{Search: "ruža", Facets: map[Facet][]string{FacetManufacturer: {"Floris"}}})
	assert.Empty(t, got)
}

func TestSelectSearchIsCaseInsensitiveSubstring(t *testing.T) {
	products := []domain.Product{
		{Name: "Šimšir"},
		{Name: "Maslina"},
		{Name: "Limun"},
	}
	got := Select(products, Criteria{Search: "LIN"})
	assert.Equal(t, []string{"Maslina"}, names(got))
}

func TestSelectSearchAndFacetCombine(t *testing.T) {
	// "Beta" also contains "a", so only the manufacturer facet excludes it.
	products := []domain.Product{
		{Name: "Alfa", Manufacturer: "X"},
		{Name: "Beta", Manufacturer: "Y"},
	}
	got := Select(products, Criteria{
		Search: "a",
		Facets: map[Facet][]string{FacetManufacturer: {"X"}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Alfa", got[0].Name)
}

func TestSelectSizeFacetMatchesOnIntersection(t *testing.T) {
	products := []domain.Product{
		{Name: "Rukavice", Sizes: []string{"S", "M"}},
		{Name: "Čizme", Sizes: []string{"42", "43"}},
		{Name: "Kecelja", Sizes: nil},
	}
	got := Select(products, Criteria{Facets: map[Facet][]string{FacetSize: {"M", "41"}}})
	assert.Equal(t, []string{"Rukavice"}, names(got), "at least one size must intersect")
}

func TestSelectMultipleFacets(t *testing.T) {
	products := []domain.Product{
		{Name: "Ruža", Category: "cveće", Gender: domain.GenderFemale, Type: "sadnica"},
		{Name: "Božur", Category: "cveće", Gender: domain.GenderMale, Type: "sadnica"},
		{Name: "Lala", Category: "lukovice", Gender: domain.GenderFemale, Type: "seme"},
	}
	got := Select(products, Criteria{Facets: map[Facet][]string{
		FacetCategory: {"cveće"},
		FacetGender:   {string(domain.GenderFemale)},
	}})
	assert.Equal(t, []string{"Ruža"}, names(got))
}

func TestSelectUnknownFacetIgnored(t *testing.T) {
	products := []domain.Product{{Name: "Ruža"}}
	got := Select(products, Criteria{Facets: map[Facet][]string{Facet("colour"): {"red"}}})
	assert.Equal(t, []string{"Ruža"}, names(got), "unknown facet keys must not throw or exclude")
}

func TestSelectIsIdempotent(t *testing.T) {
	products := []domain.Product{
		{Name: "Ruža", Manufacturer: "Floris"},
		{Name: "Božur", Manufacturer: "Agrosem"},
		{Name: "Ruzmarin", Manufacturer: "Floris"},
	}
	c := Criteria{Search: "ru", Facets: map[Facet][]string{FacetManufacturer: {"Floris"}}}
	once := Select(products, c)
	twice := Select(once, c)
	assert.Equal(t, names(once), names(twice))
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	products := []domain.Product{
		{Name: "Ruža"},
		{Name: "Božur"},
	}
	_ = Select(products, Criteria{Search: "ruža"})
	assert.Equal(t, []string{"Ruža", "Božur"}, names(products))
}

func TestOptionsDistinctAndCollated(t *testing.T) {
	products := []domain.Product{
		{Manufacturer: "Zeleni svet"},
		{Manufacturer: "Šumadija agrar"},
		{Manufacturer: "Zeleni svet"},
		{Manufacturer: ""},
		{Manufacturer: "Tisa"},
	}
	got := Options(products, FacetManufacturer)
	assert.Equal(t, []string{"Šumadija agrar", "Tisa", "Zeleni svet"}, got)
}

func TestOptionsSizeFacetFlattensSets(t *testing.T) {
	products := []domain.Product{
		{Sizes: []string{"M", "L"}},
		{Sizes: []string{"L", "XL"}},
	}
	got := Options(products, FacetSize)
	assert.ElementsMatch(t, []string{"L", "M", "XL"}, got)
}
