package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/steve958/plant-shop/internal/catalog"
	"github.com/steve958/plant-shop/internal/domain"
)

type CatalogUC struct {
	Products domain.ProductRepo
}

// PageResult is everything a catalog page renders: the selected and ordered
// products plus the facet options available within the page scope.
type PageResult struct {
	Products      []domain.Product
	Manufacturers []string
	Categories    []string
	Types         []string
	Sizes         []string
}

// Page fetches the page-scoped collection and runs the in-memory pipeline
// over it. Facet options are derived from the unfiltered scope, so deselecting
// a value does not make it disappear from the filter list.
func (uc *CatalogUC) Page(ctx context.Context, scope domain.PageScope, c catalog.Criteria, key catalog.SortKey) (*PageResult, error) {
	scoped, err := uc.Products.ListByScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	visible := catalog.Sort(catalog.Select(scoped, c), key)
	return &PageResult{
		Products:      visible,
		Manufacturers: catalog.Options(scoped, catalog.FacetManufacturer),
		Categories:    catalog.Options(scoped, catalog.FacetCategory),
		Types:         catalog.Options(scoped, catalog.FacetType),
		Sizes:         catalog.Options(scoped, catalog.FacetSize),
	}, nil
}

func (uc *CatalogUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, errors.New("empty product id")
	}
	return uc.Products.FindByID(ctx, id)
}
