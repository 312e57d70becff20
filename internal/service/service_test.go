package service

import (
	"fmt"
	"testing"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func seedItem(t *testing.T, db *gorm.DB, quantity int) *models.InventoryItem {
	t.Helper()

	item := models.InventoryItem{
		ItemName: "Gaming Laptop",
		Brand:    "FOCUS",
		Model:    "FX-15",
		UnitCost: 45000.00,
		SRPPrice: 55000.00,
		Quantity: quantity,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return &item
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{Username: "cashier", Role: "employee"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}
