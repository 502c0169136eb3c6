package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"catalog-backend/middleware"
	"catalog-backend/models"
	"catalog-backend/services"
	"catalog-backend/storage"
	"catalog-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// One open connection keeps every test on the same in-memory database.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := testDB.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	code := m.Run()
	os.Exit(code)
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	testDB.Exec("DELETE FROM products")
	testDB.Exec("DELETE FROM categories")
	testDB.Exec("DELETE FROM users")
	return testDB
}

// setupRouter wires the catalog routes the way routes.SetupRoutes does,
// against the given database and storage.
func setupRouter(db *gorm.DB, store storage.Storage) *gin.Engine {
	categoryRepo := models.NewCategoryRepository(db)
	productRepo := models.NewProductRepository(db)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, store)
	productService := services.NewProductService(productRepo, categoryRepo, store)

	categoryHandler := &CategoryHandler{Service: categoryService, Storage: store}
	productHandler := &ProductHandler{Service: productService, Storage: store}

	r := gin.New()
	api := r.Group("/api")
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/recent", categoryHandler.GetRecentCategories)
	api.GET("/categories/active", categoryHandler.GetActiveCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)
	api.GET("/categories/:id/products/count", productHandler.CountByCategory)
	api.GET("/products", productHandler.GetProducts)
	api.GET("/products/:id", productHandler.GetProduct)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.POST("/categories", categoryHandler.CreateCategory)
	admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
	admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	admin.PATCH("/categories/:id/status", categoryHandler.ToggleCategoryStatus)
	admin.PATCH("/categories/:id/restore", categoryHandler.RestoreCategory)
	admin.GET("/categories/stats", categoryHandler.GetCategoryStats)
	admin.POST("/products", productHandler.CreateProduct)
	admin.PUT("/products/:id", productHandler.UpdateProduct)
	admin.DELETE("/products/:id", productHandler.DeleteProduct)
	admin.PATCH("/products/:id/status", productHandler.ToggleProductStatus)
	admin.PATCH("/products/:id/soft-delete", productHandler.SoftDeleteProduct)
	admin.PATCH("/products/:id/restore", productHandler.RestoreProduct)
	admin.GET("/products/stats", productHandler.GetProductStats)

	return r
}

func seedAdmin(t *testing.T, db *gorm.DB) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := models.User{Email: "admin@test.com", Password: string(hash), Role: "admin", Name: "Admin"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func seedStaff(t *testing.T, db *gorm.DB) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := models.User{Email: "staff@test.com", Password: string(hash), Role: "staff", Name: "Staff"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding staff: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Status: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seeding category %q: %v", name, err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price int64) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Quantity:   1,
		Status:     true,
		CategoryID: categoryID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seeding product %q: %v", name, err)
	}
	return product
}

// formRequest builds a urlencoded form request, optionally authenticated.
func formRequest(method, target string, fields url.Values, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// multipartRequest builds a multipart form request carrying one file part.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileField, fileName string, fileContent []byte, token string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("writing field %q: %v", k, err)
		}
	}
	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, fileName))
		h.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(h)
		if err != nil {
			t.Fatalf("creating file part: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("writing file content: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func authRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing response %q: %v", w.Body.String(), err)
	}
	return resp
}
