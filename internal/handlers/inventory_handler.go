package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const itemsPerPage = 12

// Columns the dashboard is allowed to sort by
var sortableColumns = map[string]bool{
	"item_name":  true,
	"brand":      true,
	"model":      true,
	"unit_cost":  true,
	"srp_price":  true,
	"quantity":   true,
	"created_at": true,
}

// --- GET: Dashboard inventory list with search, sort and pagination ---
func GetInventory(c *gin.Context) {
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "item_name")
	order := c.DefaultQuery("order", "asc")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	if !sortableColumns[sortBy] {
		sortBy = "item_name"
	}
	if order != "desc" {
		order = "asc"
	}

	// Fresh query per use; sharing one chain between Count and Find
	// leaves stale clauses behind
	filtered := func() *gorm.DB {
		q := database.DB.Model(&models.InventoryItem{})
		if search != "" {
			like := "%" + search + "%"
			q = q.Where(
				"item_name LIKE ? OR brand LIKE ? OR model LIKE ? OR description LIKE ? OR serial_number LIKE ?",
				like, like, like, like, like,
			)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count inventory"})
		return
	}

	var items []models.InventoryItem
	err = filtered().Order(sortBy + " " + order).
		Offset((page - 1) * itemsPerPage).
		Limit(itemsPerPage).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	summary, err := database.GetInventorySummary(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	totalPages := (total + itemsPerPage - 1) / itemsPerPage
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"summary":     summary,
		"page":        page,
		"total_pages": totalPages,
		"total_items": total,
	})
}

// ItemRequest is the payload for creating or editing an inventory item
type ItemRequest struct {
	ItemName      string   `json:"item_name" binding:"required"`
	Brand         string   `json:"brand"`
	Model         string   `json:"model"`
	Description   string   `json:"description"`
	UnitCost      float64  `json:"unit_cost" binding:"required,gt=0"`
	SRPPrice      float64  `json:"srp_price" binding:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price"`
	Quantity      int      `json:"quantity" binding:"gte=0"`
	SerialNumber  *string  `json:"serial_number"`
	ImageURL      string   `json:"image_url"`
}

// --- POST: Add a new inventory item ---
func AddItem(c *gin.Context) {
	var input ItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	item := models.InventoryItem{
		ItemName:      input.ItemName,
		Brand:         input.Brand,
		Model:         input.Model,
		Description:   input.Description,
		UnitCost:      input.UnitCost,
		SRPPrice:      input.SRPPrice,
		DiscountPrice: input.DiscountPrice,
		Quantity:      input.Quantity,
		SerialNumber:  input.SerialNumber,
		ImageURL:      input.ImageURL,
	}

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create item. Serial number may already exist."})
		return
	}

	item.Recalculate()
	c.JSON(http.StatusCreated, item)
}

// --- PUT: Edit an existing item ---
func UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.InventoryItem
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var input ItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	item.ItemName = input.ItemName
	item.Brand = input.Brand
	item.Model = input.Model
	item.Description = input.Description
	item.UnitCost = input.UnitCost
	item.SRPPrice = input.SRPPrice
	item.DiscountPrice = input.DiscountPrice
	item.Quantity = input.Quantity
	item.SerialNumber = input.SerialNumber
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	item.Recalculate()
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully", "item": item})
}

// QuickUpdateRequest carries the subset of fields the dashboard edits inline
type QuickUpdateRequest struct {
	Quantity *int     `json:"quantity"`
	UnitCost *float64 `json:"unit_cost"`
	SRPPrice *float64 `json:"srp_price"`
}

// --- POST: Inline AJAX update from the dashboard grid ---
// Only the supplied fields are applied; the response carries the refreshed
// computed fields so the grid can repaint without a reload.
func QuickUpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item ID"})
		return
	}

	var item models.InventoryItem
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
		return
	}

	var input QuickUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if input.Quantity != nil {
		if *input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity cannot be negative"})
			return
		}
		item.Quantity = *input.Quantity
	}
	if input.UnitCost != nil {
		item.UnitCost = *input.UnitCost
	}
	if input.SRPPrice != nil {
		item.SRPPrice = *input.SRPPrice
	}

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	item.Recalculate()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Item updated successfully",
		"total_value":  item.TotalValue,
		"stock_status": item.StockStatus,
	})
}

// --- DELETE: Remove an item ---
// Sale and purchase history rows cascade away with it.
func DeleteItem(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Delete(&models.InventoryItem{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// --- UPLOAD: Item picture ---
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Random filename so uploads can never collide or overwrite each other
	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dest := filepath.Join(cfg.UploadDir, filename)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	fullURL := fmt.Sprintf("%s/uploads/%s", cfg.BaseURL, filename)
	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     fullURL,
	})
}
