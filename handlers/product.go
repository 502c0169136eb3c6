package handlers

import (
	"net/http"
	"strconv"

	"catalog-backend/models"
	"catalog-backend/services"
	"catalog-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	Service *services.ProductService
	Storage storage.Storage
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Status:  parseStatusFilter(c),
		Keyword: c.Query("keyword"),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	page, err := h.Service.List(c.Request.Context(), filter, parsePageable(c))
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProductStats(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.Service.Count(ctx)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	active, err := h.Service.CountByStatus(ctx, true)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"active":   active,
		"inactive": total - active,
	})
}

// CountByCategory serves GET /categories/:id/products/count.
func (h *ProductHandler) CountByCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	count, err := h.Service.CountByCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category_id": id, "product_count": count})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	input := services.CreateProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		input.Price = price
	}
	if raw := c.PostForm("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		input.Quantity = quantity
	}
	if v, ok := c.GetPostForm("status"); ok {
		b := v == "true"
		input.Status = &b
	}

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}
	input.CategoryID = uint(categoryID)

	if fh, err := c.FormFile("image"); err == nil {
		name, ok := storeUpload(c, h.Storage, fh)
		if !ok {
			return
		}
		input.Image = name
	}

	product, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		// Don't leave the freshly stored image orphaned.
		if input.Image != "" {
			h.Storage.DeleteIfExists(input.Image)
		}
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input services.UpdateProductInput
	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if raw, ok := c.GetPostForm("price"); ok {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		input.Price = &price
	}
	if raw, ok := c.GetPostForm("quantity"); ok {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		input.Quantity = &quantity
	}
	if v, ok := c.GetPostForm("status"); ok {
		b := v == "true"
		input.Status = &b
	}
	if raw, ok := c.GetPostForm("category_id"); ok {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		categoryID := uint(parsed)
		input.CategoryID = &categoryID
	}

	if fh, err := c.FormFile("image"); err == nil {
		name, ok := storeUpload(c, h.Storage, fh)
		if !ok {
			return
		}
		input.Image = &name
	}

	product, err := h.Service.Update(c.Request.Context(), id, input)
	if err != nil {
		if input.Image != nil {
			h.Storage.DeleteIfExists(*input.Image)
		}
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ToggleProductStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.Service.ChangeStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) SoftDeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.Service.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) RestoreProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.Service.Restore(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
