package service

import (
	"errors"
	"testing"

	"go-trading-backend/internal/models"
)

func TestRecordSale(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)
	user := seedUser(t, db)

	sale, err := RecordSale(db, item.ID, 3, 55000.00, user.ID, SaleMeta{CustomerName: "Walk-in"})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	if sale.TotalAmount != 165000.00 {
		t.Errorf("TotalAmount = %v, want 165000.00", sale.TotalAmount)
	}
	if sale.QuantitySold != 3 {
		t.Errorf("QuantitySold = %d, want 3", sale.QuantitySold)
	}
	if sale.Item.Quantity != 2 {
		t.Errorf("returned item quantity = %d, want 2", sale.Item.Quantity)
	}

	var stored models.InventoryItem
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if stored.Quantity != 2 {
		t.Errorf("stored quantity = %d, want 2", stored.Quantity)
	}

	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 1 {
		t.Errorf("sale count = %d, want 1", count)
	}
}

func TestRecordSaleDefaultsToSRP(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)
	user := seedUser(t, db)

	sale, err := RecordSale(db, item.ID, 2, 0, user.ID, SaleMeta{})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	if sale.UnitPrice != 55000.00 {
		t.Errorf("UnitPrice = %v, want SRP 55000.00", sale.UnitPrice)
	}
	if sale.TotalAmount != 110000.00 {
		t.Errorf("TotalAmount = %v, want 110000.00", sale.TotalAmount)
	}
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)
	user := seedUser(t, db)

	_, err := RecordSale(db, item.ID, 6, 55000.00, user.ID, SaleMeta{})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	// The store must be left untouched: no sale row, no stock change
	var stored models.InventoryItem
	db.First(&stored, item.ID)
	if stored.Quantity != 5 {
		t.Errorf("quantity changed to %d on a failed sale, want 5", stored.Quantity)
	}
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sale count = %d after failed sale, want 0", count)
	}
}

func TestRecordSaleInvalidQuantity(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)
	user := seedUser(t, db)

	for _, quantity := range []int{0, -3} {
		_, err := RecordSale(db, item.ID, quantity, 55000.00, user.ID, SaleMeta{})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("RecordSale(quantity=%d) err = %v, want ErrInvalidQuantity", quantity, err)
		}
	}
}

func TestRecordSaleUnknownItem(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	_, err := RecordSale(db, 9999, 1, 100, user.ID, SaleMeta{})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestRecordSaleExactStock(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 5)
	user := seedUser(t, db)

	sale, err := RecordSale(db, item.ID, 5, 55000.00, user.ID, SaleMeta{})
	if err != nil {
		t.Fatalf("selling the whole stock should succeed: %v", err)
	}
	if sale.Item.Quantity != 0 {
		t.Errorf("remaining quantity = %d, want 0", sale.Item.Quantity)
	}
	if sale.Item.StockStatus != models.StatusOutOfStock {
		t.Errorf("stock status = %q, want %q", sale.Item.StockStatus, models.StatusOutOfStock)
	}
}

func TestRecordPurchase(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 2)
	user := seedUser(t, db)

	purchase, err := RecordPurchase(db, item.ID, 10, 42000.00, user.ID, PurchaseMeta{Supplier: "PC Depot"})
	if err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}

	if purchase.TotalCost != 420000.00 {
		t.Errorf("TotalCost = %v, want 420000.00", purchase.TotalCost)
	}
	if purchase.Item.Quantity != 12 {
		t.Errorf("returned item quantity = %d, want 12", purchase.Item.Quantity)
	}

	var stored models.InventoryItem
	db.First(&stored, item.ID)
	if stored.Quantity != 12 {
		t.Errorf("stored quantity = %d, want 12", stored.Quantity)
	}
}

func TestRecordPurchaseDefaultsToUnitCost(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 2)
	user := seedUser(t, db)

	purchase, err := RecordPurchase(db, item.ID, 3, 0, user.ID, PurchaseMeta{})
	if err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}

	if purchase.UnitCost != 45000.00 {
		t.Errorf("UnitCost = %v, want item cost 45000.00", purchase.UnitCost)
	}
}

func TestRecordPurchaseInvalidQuantity(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, 2)
	user := seedUser(t, db)

	_, err := RecordPurchase(db, item.ID, 0, 100, user.ID, PurchaseMeta{})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}

	var stored models.InventoryItem
	db.First(&stored, item.ID)
	if stored.Quantity != 2 {
		t.Errorf("quantity changed to %d on a failed purchase, want 2", stored.Quantity)
	}
}
