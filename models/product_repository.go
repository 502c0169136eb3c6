package models

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

var ProductSortFields = map[string]string{
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const ProductDefaultSort = "name"

// ProductFilter holds the optional facets for product queries, ANDed when
// present: status, keyword over name/description, and owning category.
type ProductFilter struct {
	Status     *bool
	Keyword    string
	CategoryID *uint
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindFiltered(ctx context.Context, filter ProductFilter, p Pageable) ([]Product, int64, error) {
	query := applyProductFilter(r.db.WithContext(ctx).Model(&Product{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []Product
	if err := query.Preload("Category").
		Order(p.OrderClause()).Offset(p.Offset()).Limit(p.Size).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func applyProductFilter(query *gorm.DB, f ProductFilter) *gorm.DB {
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		pattern := "%" + kw + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	return query
}

func (r *ProductRepository) Save(ctx context.Context, product *Product) error {
	// Omit the preloaded association so saving a product never writes the
	// category row.
	return r.db.WithContext(ctx).Omit("Category").Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Product{}, id).Error
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) ExistsByNameIgnoreCase(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Product{}).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepository) CountByStatus(ctx context.Context, status bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Product{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountByCategory counts every product referencing the category regardless of
// status; soft-deleted products still block category removal.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
