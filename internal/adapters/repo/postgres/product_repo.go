package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steve958/plant-shop/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, created_at asc") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByScope applies the coarse page predicate in SQL and returns the full
// scoped collection; the catalog package does the rest in memory.
func (r *ProductRepo) ListByScope(ctx context.Context, scope domain.PageScope) ([]domain.Product, error) {
	list := []domain.Product{}
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if scope.OnDiscount != nil {
		q = q.Where("on_discount = ?", *scope.OnDiscount)
	}
	if scope.Gender != domain.GenderUnspecified {
		q = q.Where("gender = ?", string(scope.Gender))
	}
	if scope.Subcategory != "" {
		q = q.Where("subcategory = ?", scope.Subcategory)
	}
	err := q.Order("created_at asc").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, created_at asc") }).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) AddImages(ctx context.Context, productID uuid.UUID, imgs []domain.Image) error {
	if len(imgs) == 0 {
		return nil
	}
	var next int64
	_ = r.db.WithContext(ctx).Model(&domain.Image{}).Where("product_id = ?", productID).Count(&next).Error
	for i := range imgs {
		if imgs[i].ID == uuid.Nil {
			imgs[i].ID = uuid.New()
		}
		imgs[i].ProductID = productID
		imgs[i].Position = int(next) + i
		if imgs[i].CreatedAt.IsZero() {
			imgs[i].CreatedAt = time.Now()
		}
	}
	return r.db.WithContext(ctx).Create(&imgs).Error
}

// ReorderImages rewrites positions so the image list matches urls; index 0
// becomes the primary image.
func (r *ProductRepo) ReorderImages(ctx context.Context, productID uuid.UUID, urls []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, u := range urls {
			if err := tx.Model(&domain.Image{}).
				Where("product_id = ? AND url = ?", productID, u).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).Preload("Images").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	paths := make([]string, 0, len(p.Images))
	for _, im := range p.Images {
		paths = append(paths, im.URL)
	}
	return paths, r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", p.ID).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, "id = ?", p.ID).Error
	})
}
