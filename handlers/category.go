package handlers

import (
	"net/http"
	"strconv"

	"catalog-backend/models"
	"catalog-backend/services"
	"catalog-backend/storage"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Service *services.CategoryService
	Storage storage.Storage
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	filter := models.CategoryFilter{
		Status:  parseStatusFilter(c),
		Keyword: c.Query("keyword"),
	}

	page, err := h.Service.List(c.Request.Context(), filter, parsePageable(c))
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetRecentCategories(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	categories, err := h.Service.Recent(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetActiveCategories(c *gin.Context) {
	categories, err := h.Service.Active(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryStats(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.Service.Count(ctx)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	active, err := h.Service.CountByStatus(ctx, true)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"active":   active,
		"inactive": total - active,
	})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	input := services.CreateCategoryInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if v, ok := c.GetPostForm("status"); ok {
		b := v == "true"
		input.Status = &b
	}

	if fh, err := c.FormFile("icon"); err == nil {
		name, ok := storeUpload(c, h.Storage, fh)
		if !ok {
			return
		}
		input.Icon = name
	}

	category, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		// Don't leave the freshly stored icon orphaned.
		if input.Icon != "" {
			h.Storage.DeleteIfExists(input.Icon)
		}
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input services.UpdateCategoryInput
	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		b := v == "true"
		input.Status = &b
	}

	if fh, err := c.FormFile("icon"); err == nil {
		name, ok := storeUpload(c, h.Storage, fh)
		if !ok {
			return
		}
		input.Icon = &name
	}

	category, err := h.Service.Update(c.Request.Context(), id, input)
	if err != nil {
		if input.Icon != nil {
			h.Storage.DeleteIfExists(*input.Icon)
		}
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) ToggleCategoryStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.Service.ChangeStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) RestoreCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.Service.Restore(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
