package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"catalog-backend/models"
	"catalog-backend/services"
	"catalog-backend/storage"
	"catalog-backend/utils"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func parsePageable(c *gin.Context) models.Pageable {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size := models.DefaultPageSize
	if v, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(models.DefaultPageSize))); err == nil {
		size = v
	}
	return models.Pageable{
		Page:  page,
		Size:  size,
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}
}

// parseStatusFilter reads the optional status facet; anything other than an
// explicit true/false leaves the axis unfiltered.
func parseStatusFilter(c *gin.Context) *bool {
	switch c.Query("status") {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// storeUpload validates and stores one uploaded file, writing the HTTP error
// response itself when something is wrong. Returns the generated asset name.
func storeUpload(c *gin.Context, store storage.Storage, fh *multipart.FileHeader) (string, bool) {
	if err := utils.ValidateFileUpload(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
		return "", false
	}
	defer file.Close()

	name, err := store.StoreImage(file, fh.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return "", false
	}
	return name, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, entity string) {
	var inUse *services.CategoryInUseError
	var invalid *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", entity)})
	case errors.Is(err, services.ErrNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Name already in use"})
	case errors.Is(err, services.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
	case errors.As(err, &inUse):
		c.JSON(http.StatusConflict, gin.H{
			"error":         "Cannot delete category with associated products",
			"message":       "Please reassign or delete the associated products first",
			"product_count": inUse.ProductCount,
		})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	default:
		log.Printf("Unexpected error handling %s request: %v", entity, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
