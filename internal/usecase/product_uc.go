package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/steve958/plant-shop/internal/domain"
)

// ProductUC carries the administrative writes: create, edit, image handling
// and delete. Reads for the storefront live in CatalogUC.
type ProductUC struct {
	Products domain.ProductRepo
	Storage  domain.FileStorage
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("empty name")
	}
	if p.Price < 0 || p.DiscountPrice < 0 {
		return errors.New("negative price")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if p == nil || p.ID == uuid.Nil {
		return errors.New("product id")
	}
	if p.Price < 0 || p.DiscountPrice < 0 {
		return errors.New("negative price")
	}
	return uc.Products.Save(ctx, p)
}

// Delete removes the product and its stored image files. Cart lines that
// reference the product keep their captured name and price; nothing here
// reaches into client carts.
func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("product id")
	}
	paths, err := uc.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		_ = uc.Storage.Remove(ctx, p)
	}
	return nil
}

func (uc *ProductUC) AddImages(ctx context.Context, productID uuid.UUID, imgs []domain.Image) error {
	if productID == uuid.Nil {
		return errors.New("product id")
	}
	return uc.Products.AddImages(ctx, productID, imgs)
}

// PromoteImage moves the image with the given URL to the front of the
// product's image list, making it the primary one.
func (uc *ProductUC) PromoteImage(ctx context.Context, productID uuid.UUID, url string) error {
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	urls := make([]string, 0, len(p.Images))
	found := false
	for _, img := range p.Images {
		if img.URL == url {
			found = true
			continue
		}
		urls = append(urls, img.URL)
	}
	if !found {
		return domain.ErrNotFound
	}
	urls = append([]string{url}, urls...)
	return uc.Products.ReorderImages(ctx, productID, urls)
}
