package services

import (
	"context"
	"strings"

	"catalog-backend/models"
	"catalog-backend/storage"

	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Image       string // generated asset name, already stored
	Status      *bool  // nil defaults to active
	CategoryID  uint
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	Image       *string
	Status      *bool
	CategoryID  *uint
}

type ProductService struct {
	products   *models.ProductRepository
	categories *models.CategoryRepository
	storage    storage.Storage
}

func NewProductService(products *models.ProductRepository, categories *models.CategoryRepository, store storage.Storage) *ProductService {
	return &ProductService{products: products, categories: categories, storage: store}
}

func (s *ProductService) List(ctx context.Context, filter models.ProductFilter, p models.Pageable) (models.Page[models.Product], error) {
	p = p.Normalize(models.ProductSortFields, models.ProductDefaultSort)
	items, total, err := s.products.FindFiltered(ctx, filter, p)
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.NewPage(items, total, p), nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if input.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "must not be negative"}
	}

	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	taken, err := s.products.ExistsByNameIgnoreCase(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	product := &models.Product{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Image:       input.Image,
		Status:      true,
		CategoryID:  input.CategoryID,
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, conflictOr(err)
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		taken, err := s.products.ExistsByNameIgnoreCase(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
		product.Name = name
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, &ValidationError{Field: "price", Message: "must not be negative"}
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, &ValidationError{Field: "quantity", Message: "must not be negative"}
		}
		product.Quantity = *input.Quantity
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
		product.Category = nil
	}

	oldImage := product.Image
	if input.Image != nil {
		product.Image = *input.Image
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, conflictOr(err)
	}

	// The old asset goes away only once the row points at the new one.
	if input.Image != nil && oldImage != "" && oldImage != product.Image {
		s.storage.DeleteIfExists(oldImage)
	}
	return product, nil
}

// ChangeStatus flips the product between active and inactive.
func (s *ProductService) ChangeStatus(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	product.Status = !product.Status
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete forces the product inactive regardless of its current state.
// Calling it on an already inactive product is not an error.
func (s *ProductService) SoftDelete(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	product.Status = false
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Restore forces the product active regardless of its current state.
func (s *ProductService) Restore(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	product.Status = true
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete permanently removes the product row and its image asset. Asset
// cleanup is best effort; the row is gone either way.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if product.Image != "" {
		s.storage.DeleteIfExists(product.Image)
	}
	return nil
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

func (s *ProductService) CountByStatus(ctx context.Context, status bool) (int64, error) {
	return s.products.CountByStatus(ctx, status)
}

// CountByCategory counts every product referencing the category, including
// soft-deleted ones.
func (s *ProductService) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return s.products.CountByCategory(ctx, categoryID)
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID uint) error {
	exists, err := s.categories.ExistsByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidCategory
	}
	return nil
}
