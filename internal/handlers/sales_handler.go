package handlers

import (
	"errors"
	"net/http"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"
	"go-trading-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SaleRequest is what the POS screen sends for one sale
type SaleRequest struct {
	ItemID        uint    `json:"item_id" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required"`
	UnitPrice     float64 `json:"unit_price"` // 0 = use the item's SRP
	CustomerName  string  `json:"customer_name"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

func ProcessSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.MustGet("userID").(uint)

	sale, err := service.RecordSale(database.DB, req.ItemID, req.Quantity, req.UnitPrice, userID, service.SaleMeta{
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than zero"})
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for this sale"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Sale recorded!",
		"sale":            sale,
		"remaining_stock": sale.Item.Quantity,
	})
}

// --- GET: Recent sales, newest first ---
func GetSales(c *gin.Context) {
	var sales []models.Sale
	err := database.DB.Preload("Item").
		Order("sale_time desc").
		Limit(50).
		Find(&sales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// PurchaseRequest records stock arriving from a supplier
type PurchaseRequest struct {
	ItemID   uint    `json:"item_id" binding:"required"`
	Quantity int     `json:"quantity" binding:"required"`
	UnitCost float64 `json:"unit_cost"` // 0 = use the item's recorded cost
	Supplier string  `json:"supplier"`
	Notes    string  `json:"notes"`
}

func ProcessPurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.MustGet("userID").(uint)

	purchase, err := service.RecordPurchase(database.DB, req.ItemID, req.Quantity, req.UnitCost, userID, service.PurchaseMeta{
		Supplier: req.Supplier,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than zero"})
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Purchase recorded!",
		"purchase":      purchase,
		"current_stock": purchase.Item.Quantity,
	})
}

// --- GET: Recent purchases, newest first ---
func GetPurchases(c *gin.Context) {
	var purchases []models.BuyItem
	err := database.DB.Preload("Item").
		Order("purchase_time desc").
		Limit(50).
		Find(&purchases).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	c.JSON(http.StatusOK, purchases)
}
