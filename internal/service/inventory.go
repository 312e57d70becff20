package service

import (
	"errors"
	"fmt"
	"time"

	"go-trading-backend/internal/models"

	"gorm.io/gorm"
)

// SaleMeta carries the optional fields of a sale receipt.
type SaleMeta struct {
	CustomerName  string
	PaymentMethod string
	Notes         string
}

// PurchaseMeta carries the optional fields of a supplier purchase.
type PurchaseMeta struct {
	Supplier string
	Notes    string
}

// RecordSale writes one Sale row and deducts the sold quantity from stock,
// both inside a single transaction. The deduction is a conditional UPDATE
// guarded by "quantity >= sold", so two concurrent sales of the last units
// cannot both succeed: the loser sees zero rows affected and the whole
// transaction rolls back with ErrInsufficientStock.
func RecordSale(db *gorm.DB, itemID uint, quantity int, unitPrice float64, userID uint, meta SaleMeta) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var sale models.Sale

	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if quantity > item.Quantity {
			return ErrInsufficientStock
		}

		// Unit price falls back to the item's SRP when the cashier leaves it blank
		if unitPrice <= 0 {
			unitPrice = item.SRPPrice
		}

		sale = models.Sale{
			ItemID:        item.ID,
			UserID:        userID,
			QuantitySold:  quantity,
			UnitPrice:     unitPrice,
			TotalAmount:   float64(quantity) * unitPrice,
			SaleTime:      time.Now(),
			CustomerName:  meta.CustomerName,
			PaymentMethod: meta.PaymentMethod,
			Notes:         meta.Notes,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("failed to create sale record: %w", err)
		}

		result := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity >= ?", item.ID, quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to update stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Someone else sold the stock between our read and this update
			return ErrInsufficientStock
		}

		item.Quantity -= quantity
		item.Recalculate()
		sale.Item = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

// RecordPurchase writes one BuyItem row and adds the bought quantity to
// stock inside a single transaction. There is no upper bound on the
// resulting quantity.
func RecordPurchase(db *gorm.DB, itemID uint, quantity int, unitCost float64, userID uint, meta PurchaseMeta) (*models.BuyItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var purchase models.BuyItem

	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		// Cost falls back to the item's recorded unit cost
		if unitCost <= 0 {
			unitCost = item.UnitCost
		}

		purchase = models.BuyItem{
			ItemID:         item.ID,
			UserID:         userID,
			QuantityBought: quantity,
			UnitCost:       unitCost,
			TotalCost:      float64(quantity) * unitCost,
			PurchaseTime:   time.Now(),
			Supplier:       meta.Supplier,
			Notes:          meta.Notes,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return fmt.Errorf("failed to create purchase record: %w", err)
		}

		result := tx.Model(&models.InventoryItem{}).
			Where("id = ?", item.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to update stock: %w", result.Error)
		}

		item.Quantity += quantity
		item.Recalculate()
		purchase.Item = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &purchase, nil
}
