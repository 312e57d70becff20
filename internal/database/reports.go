package database

import (
	"time"

	"go-trading-backend/internal/models"

	"gorm.io/gorm"
)

// SalesReportResult holds totals for a date range
type SalesReportResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// GetSalesReport calculates sales within a specific date range.
// Takes the db handle so tests can run it against sqlite.
func GetSalesReport(db *gorm.DB, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := db.Model(&models.Sale{}).
		Where("sale_time BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Sale{}).
		Where("sale_time BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// InventorySummary feeds the dashboard header cards
type InventorySummary struct {
	TotalItems      int64   `json:"total_items"`
	TotalValue      float64 `json:"total_value"`
	LowStockItems   int64   `json:"low_stock_items"`
	OutOfStockItems int64   `json:"out_of_stock_items"`
}

// GetInventorySummary computes the dashboard statistics in SQL rather than
// loading every row into memory.
func GetInventorySummary(db *gorm.DB) (*InventorySummary, error) {
	var summary InventorySummary

	if err := db.Model(&models.InventoryItem{}).Count(&summary.TotalItems).Error; err != nil {
		return nil, err
	}

	err := db.Model(&models.InventoryItem{}).
		Select("COALESCE(SUM(unit_cost * quantity), 0)").
		Scan(&summary.TotalValue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.InventoryItem{}).
		Where("quantity > 0 AND quantity <= ?", models.LowStockThreshold).
		Count(&summary.LowStockItems).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.InventoryItem{}).
		Where("quantity = 0").
		Count(&summary.OutOfStockItems).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
