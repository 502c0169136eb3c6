package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"catalog-backend/models"
	"catalog-backend/storage"

	"gorm.io/gorm"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 500
)

// CreateCategoryInput carries the caller's fields for a new category. Any
// identity the caller might have supplied is ignored; creation always
// assigns a fresh one.
type CreateCategoryInput struct {
	Name        string
	Description string
	Icon        string // generated asset name, already stored
	Status      *bool  // nil defaults to active
}

// UpdateCategoryInput updates only the fields that are non-nil. Icon nil
// keeps the existing asset reference; a non-nil icon replaces it and the old
// asset is deleted after the row update succeeds.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
	Status      *bool
}

type CategoryService struct {
	categories *models.CategoryRepository
	products   *models.ProductRepository
	storage    storage.Storage
}

func NewCategoryService(categories *models.CategoryRepository, products *models.ProductRepository, store storage.Storage) *CategoryService {
	return &CategoryService{categories: categories, products: products, storage: store}
}

func (s *CategoryService) List(ctx context.Context, filter models.CategoryFilter, p models.Pageable) (models.Page[models.Category], error) {
	p = p.Normalize(models.CategorySortFields, models.CategoryDefaultSort)
	items, total, err := s.categories.FindFiltered(ctx, filter, p)
	if err != nil {
		return models.Page[models.Category]{}, err
	}
	return models.NewPage(items, total, p), nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	taken, err := s.categories.ExistsByNameIgnoreCase(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	category := &models.Category{
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
		Status:      true,
	}
	if input.Status != nil {
		category.Status = *input.Status
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, conflictOr(err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		taken, err := s.categories.ExistsByNameIgnoreCase(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
		category.Name = name
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		category.Description = *input.Description
	}
	if input.Status != nil {
		category.Status = *input.Status
	}

	oldIcon := category.Icon
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, conflictOr(err)
	}

	// The old asset goes away only once the row points at the new one.
	if input.Icon != nil && oldIcon != "" && oldIcon != category.Icon {
		s.storage.DeleteIfExists(oldIcon)
	}
	return category, nil
}

// ChangeStatus flips the category between active and inactive.
func (s *CategoryService) ChangeStatus(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	category.Status = !category.Status
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Restore forces the category active regardless of its current state.
func (s *CategoryService) Restore(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	category.Status = true
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete permanently removes the category and its icon asset. It refuses
// with CategoryInUseError while any product, active or not, references it.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &CategoryInUseError{CategoryID: id, ProductCount: count}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	if category.Icon != "" {
		s.storage.DeleteIfExists(category.Icon)
	}
	return nil
}

func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	return s.categories.Count(ctx)
}

func (s *CategoryService) CountByStatus(ctx context.Context, status bool) (int64, error) {
	return s.categories.CountByStatus(ctx, status)
}

func (s *CategoryService) Recent(ctx context.Context, limit int) ([]models.Category, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.categories.FindRecent(ctx, limit)
}

func (s *CategoryService) Active(ctx context.Context) ([]models.Category, error) {
	return s.categories.FindActive(ctx)
}

// Length limits count characters, not bytes, so multibyte names are not
// penalized.
func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return &ValidationError{Field: "name", Message: "must be at most 200 characters"}
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return &ValidationError{Field: "description", Message: "must be at most 500 characters"}
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// conflictOr maps a database unique-constraint violation to ErrNameTaken.
// Two concurrent creates can both pass the application-level name check;
// the unique index is the final backstop.
func conflictOr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNameTaken
	}
	return err
}
