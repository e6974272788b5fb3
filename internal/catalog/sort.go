package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/steve958/plant-shop/internal/domain"
)

type SortKey string

const (
	SortNameAsc   SortKey = "nameAsc"
	SortNameDesc  SortKey = "nameDesc"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

// Product names are Serbian and contain Š, Ž, Č, Ć and Đ; byte-wise
// comparison puts them after Z, the collator keeps the alphabet order.
// x/text's sr-Latn table weights the caron letters only at the secondary
// level, so "Žalfija" would land before "Zova". The hr table shares Gaj's
// Latin alphabet and carries the letter order at the primary level.
var collatorTag = language.Croatian

// Sort returns a sorted copy of products; the input is never mutated.
// The sort is stable: products with an equal key keep their relative input
// order. Price keys compare by effective price. An unknown or empty key
// falls back to name ascending.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	// a collate.Collator keeps an internal buffer, so it is not shared
	collator := collate.New(collatorTag)
	var less func(i, j int) bool
	switch key {
	case SortNameDesc:
		less = func(i, j int) bool { return collator.CompareString(out[i].Name, out[j].Name) > 0 }
	case SortPriceAsc:
		less = func(i, j int) bool { return out[i].EffectivePrice() < out[j].EffectivePrice() }
	case SortPriceDesc:
		less = func(i, j int) bool { return out[i].EffectivePrice() > out[j].EffectivePrice() }
	default: // SortNameAsc
		less = func(i, j int) bool { return collator.CompareString(out[i].Name, out[j].Name) < 0 }
	}
	sort.SliceStable(out, less)
	return out
}
