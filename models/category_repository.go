package models

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// CategorySortFields maps caller-facing sort keys to database columns.
// Anything outside this map falls back to CategoryDefaultSort.
var CategorySortFields = map[string]string{
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const CategoryDefaultSort = "name"

// CategoryFilter holds the optional facets for category queries. Present
// facets are ANDed together; absent ones do not narrow the result.
type CategoryFilter struct {
	Status  *bool
	Keyword string
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindFiltered returns one page of categories matching the filter, together
// with the total match count across all pages.
func (r *CategoryRepository) FindFiltered(ctx context.Context, filter CategoryFilter, p Pageable) ([]Category, int64, error) {
	query := applyCategoryFilter(r.db.WithContext(ctx).Model(&Category{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []Category
	if err := query.Order(p.OrderClause()).Offset(p.Offset()).Limit(p.Size).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func applyCategoryFilter(query *gorm.DB, f CategoryFilter) *gorm.DB {
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		pattern := "%" + kw + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	return query
}

func (r *CategoryRepository) Save(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Category{}, id).Error
}

func (r *CategoryRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNameIgnoreCase reports whether another category already uses the
// name. Pass excludeID != 0 to ignore the row being renamed.
func (r *CategoryRepository) ExistsByNameIgnoreCase(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Category{}).
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

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Category{}).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) CountByStatus(ctx context.Context, status bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Category{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// FindRecent returns the newest categories, for dashboard-style listings.
func (r *CategoryRepository) FindRecent(ctx context.Context, limit int) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&categories).Error
	return categories, err
}

// FindActive returns all active categories without paging, for dropdowns.
func (r *CategoryRepository) FindActive(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).Where("status = ?", true).Order("name asc").Find(&categories).Error
	return categories, err
}
