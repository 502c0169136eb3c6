package database

import (
	"log"
	"os"

	"catalog-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable"
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services map to a name conflict.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
	); err != nil {
		return err
	}

	// Unique indexes on LOWER(name) back the case-insensitive uniqueness
	// check in the services, so two racing creates cannot both land even
	// when their names differ only by case.
	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories (LOWER(name))",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_lower ON products (LOWER(name))",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@catalog.local"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// SeedCatalog inserts a starter set of categories and products when the
// catalog is completely empty, so a fresh install has something to show.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Electronics", Description: "Devices and gadgets", Status: true},
		{Name: "Fashion", Description: "Clothing and accessories", Status: true},
		{Name: "Books", Description: "Books and study materials", Status: true},
		{Name: "Sports", Description: "Sporting goods and apparel", Status: true},
		{Name: "Home", Description: "Household goods and furniture", Status: true},
		{Name: "Food", Description: "Food and beverages", Status: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:        "Dell XPS 13",
			Description: "Compact laptop with an InfinityEdge display",
			Price:       decimal.NewFromInt(25000000),
			Quantity:    15,
			Status:      true,
			CategoryID:  categories[0].ID,
		},
		{
			Name:        "Running Shoes",
			Description: "Lightweight everyday trainers",
			Price:       decimal.NewFromInt(1500000),
			Quantity:    40,
			Status:      true,
			CategoryID:  categories[3].ID,
		},
		{
			Name:        "Espresso Maker",
			Description: "Stovetop espresso maker, 6 cups",
			Price:       decimal.NewFromInt(650000),
			Quantity:    25,
			Status:      true,
			CategoryID:  categories[4].ID,
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d categories and %d products", len(categories), len(products))
	return nil
}
