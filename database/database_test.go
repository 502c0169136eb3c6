package database

import (
	"errors"
	"os"
	"testing"

	"catalog-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal(err)
	}
	// One open connection keeps the test on the same in-memory database.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestMigrateRejectsCaseInsensitiveDuplicateCategoryNames(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&models.Category{Name: "Electronics", Status: true}).Error; err != nil {
		t.Fatal(err)
	}

	err := db.Create(&models.Category{Name: "ELECTRONICS", Status: true}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected duplicate key error for case-variant name, got %v", err)
	}
}

func TestMigrateRejectsCaseInsensitiveDuplicateProductNames(t *testing.T) {
	db := setupTestDB(t)

	category := models.Category{Name: "Electronics", Status: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatal(err)
	}

	if err := db.Create(&models.Product{Name: "Laptop", Status: true, CategoryID: category.ID}).Error; err != nil {
		t.Fatal(err)
	}

	err := db.Create(&models.Product{Name: "laptop", Status: true, CategoryID: category.ID}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected duplicate key error for case-variant name, got %v", err)
	}
}

func TestCreateDefaultAdminNew(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "testadmin@test.com")
	os.Setenv("ADMIN_PASSWORD", "testpassword123")
	defer os.Unsetenv("ADMIN_EMAIL")
	defer os.Unsetenv("ADMIN_PASSWORD")

	err := CreateDefaultAdmin(db)
	if err != nil {
		t.Fatal(err)
	}

	var user models.User
	if err := db.Where("email = ?", "testadmin@test.com").First(&user).Error; err != nil {
		t.Fatal("admin user not created")
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got '%s'", user.Role)
	}
}

func TestCreateDefaultAdminAlreadyExists(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "existing@test.com")
	os.Setenv("ADMIN_PASSWORD", "password123")
	defer os.Unsetenv("ADMIN_EMAIL")
	defer os.Unsetenv("ADMIN_PASSWORD")

	// Create admin first time
	err := CreateDefaultAdmin(db)
	if err != nil {
		t.Fatal(err)
	}

	// Second call should skip (no error)
	err = CreateDefaultAdmin(db)
	if err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "existing@test.com").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 admin, got %d", count)
	}
}

func TestSeedCatalogEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	if err := SeedCatalog(db); err != nil {
		t.Fatal(err)
	}

	var categories, products int64
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Product{}).Count(&products)
	if categories != 6 {
		t.Errorf("expected 6 seeded categories, got %d", categories)
	}
	if products != 3 {
		t.Errorf("expected 3 seeded products, got %d", products)
	}
}

func TestSeedCatalogSkipsNonEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&models.Category{Name: "Existing", Status: true}).Error; err != nil {
		t.Fatal(err)
	}

	if err := SeedCatalog(db); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 1 {
		t.Errorf("expected seed to be skipped, got %d categories", count)
	}
}
