package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

// User - shop staff who can log in
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'employee'
	CreatedAt    time.Time `json:"created_at"`
}

// Session - one row per login, checked by the inactivity-timeout middleware
type Session struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	LastActivity time.Time `json:"last_activity"`
	Revoked      bool      `json:"revoked"`
	CreatedAt    time.Time `json:"created_at"`
}

// InventoryItem - one stocked product (laptops, parts, peripherals)
type InventoryItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ItemName      string    `gorm:"size:100" json:"item_name"`
	Brand         string    `gorm:"size:50;index:idx_brand_model" json:"brand"`
	Model         string    `gorm:"size:50;index:idx_brand_model" json:"model"`
	Description   string    `json:"description"`
	UnitCost      float64   `json:"unit_cost"`
	SRPPrice      float64   `json:"srp_price"`
	DiscountPrice *float64  `json:"discount_price"`
	Quantity      int       `json:"quantity"`
	SerialNumber  *string   `gorm:"uniqueIndex;size:100" json:"serial_number"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"date_added"`
	UpdatedAt     time.Time `json:"last_updated"`

	// Computed fields, filled by AfterFind / Recalculate. Never stored.
	TotalValue   float64 `gorm:"-" json:"total_value"`
	ProfitMargin float64 `gorm:"-" json:"profit_margin"`
	StockStatus  string  `gorm:"-" json:"stock_status"`
}

// Stock level labels shown on the dashboard
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// LowStockThreshold - 1 to 5 units on hand counts as low stock
const LowStockThreshold = 5

// StockStatusFor maps a quantity to its dashboard label
func StockStatusFor(quantity int) string {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Recalculate refreshes the computed fields after a quantity or price change
func (i *InventoryItem) Recalculate() {
	i.TotalValue = i.UnitCost * float64(i.Quantity)
	if i.UnitCost > 0 {
		i.ProfitMargin = (i.SRPPrice - i.UnitCost) / i.UnitCost * 100
	} else {
		i.ProfitMargin = 0
	}
	i.StockStatus = StockStatusFor(i.Quantity)
}

// AfterFind makes sure every item loaded from the DB carries its computed fields
func (i *InventoryItem) AfterFind(tx *gorm.DB) error {
	i.Recalculate()
	return nil
}

// BeforeSave normalizes a blank serial number to NULL so the unique index
// does not reject two items that both have no serial
func (i *InventoryItem) BeforeSave(tx *gorm.DB) error {
	if i.SerialNumber != nil && strings.TrimSpace(*i.SerialNumber) == "" {
		i.SerialNumber = nil
	}
	if i.Quantity < 0 {
		return fmt.Errorf("inventory quantity cannot be negative (item %q)", i.ItemName)
	}
	return nil
}

// Sale - one cash sale of a single inventory item
type Sale struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ItemID        uint          `json:"item_id"`
	Item          InventoryItem `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	UserID        uint          `json:"user_id"` // The cashier who processed it
	QuantitySold  int           `json:"quantity_sold"`
	UnitPrice     float64       `json:"unit_price"`
	TotalAmount   float64       `json:"total_amount"`
	SaleTime      time.Time     `json:"sale_time"`
	CustomerName  string        `gorm:"size:100" json:"customer_name"`
	PaymentMethod string        `gorm:"size:30" json:"payment_method"`
	Notes         string        `json:"notes"`
}

// BuyItem - one stock purchase from a supplier
type BuyItem struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ItemID         uint          `json:"item_id"`
	Item           InventoryItem `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	UserID         uint          `json:"user_id"` // Who recorded the purchase
	QuantityBought int           `json:"quantity_bought"`
	UnitCost       float64       `json:"unit_cost"`
	TotalCost      float64       `json:"total_cost"`
	PurchaseTime   time.Time     `json:"purchase_time"`
	Supplier       string        `gorm:"size:100" json:"supplier"`
	Notes          string        `json:"notes"`
}

// TimeLog - one employee clock-in/clock-out session
type TimeLog struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	UserID   uint       `gorm:"index" json:"user_id"`
	TimeIn   time.Time  `json:"time_in"`
	TimeOut  *time.Time `json:"time_out"`
	IsActive bool       `gorm:"index" json:"is_active"`
	Notes    string     `json:"notes"`

	DurationHours float64 `gorm:"-" json:"duration_hours"`
}

// ComputeDurationHours returns the session length in hours rounded to 2
// decimals, or 0 while the session is still open
func (t *TimeLog) ComputeDurationHours() float64 {
	if t.TimeOut == nil {
		return 0
	}
	hours := t.TimeOut.Sub(t.TimeIn).Hours()
	return math.Round(hours*100) / 100
}

// AfterFind fills the computed duration on every load
func (t *TimeLog) AfterFind(tx *gorm.DB) error {
	t.DurationHours = t.ComputeDurationHours()
	return nil
}
