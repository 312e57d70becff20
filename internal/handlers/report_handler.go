package handlers

import (
	"net/http"
	"time"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportData is the analytics payload for the admin dashboard
type ReportData struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalOrders  int64   `json:"total_orders"`
	TopSelling   []struct {
		ItemName string  `json:"item_name"`
		Sold     int     `json:"sold"`
		Revenue  float64 `json:"revenue"`
	} `json:"top_selling"`
	RecentSales []models.Sale `json:"recent_sales"`
}

// --- GET: /api/reports ---
// Optional start/end query params (YYYY-MM-DD) narrow the range; the
// default is all time.
func GetSalesReport(c *gin.Context) {
	// Zero time is outside MySQL's DATETIME range, so all-time starts at the epoch
	start := time.Unix(0, 0)
	end := time.Now()

	if raw := c.Query("start"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			start = t
		}
	}
	if raw := c.Query("end"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			end = t.Add(23*time.Hour + 59*time.Minute)
		}
	}

	var data ReportData

	totals, err := database.GetSalesReport(database.DB, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}
	data.TotalRevenue = totals.TotalRevenue
	data.TotalOrders = totals.TotalCount

	// Top 5 best sellers in the range
	err = database.DB.Table("sales").
		Select("inventory_items.item_name as item_name, SUM(sales.quantity_sold) as sold, SUM(sales.total_amount) as revenue").
		Joins("JOIN inventory_items ON sales.item_id = inventory_items.id").
		Where("sales.sale_time BETWEEN ? AND ?", start, end).
		Group("inventory_items.item_name").
		Order("sold desc").
		Limit(5).
		Scan(&data.TopSelling).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}

	err = database.DB.Preload("Item").
		Order("sale_time desc").
		Limit(10).
		Find(&data.RecentSales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// ValuationItem is a single row in the stock valuation table
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
}

// BrandGroup is one brand's section of the valuation report
type BrandGroup struct {
	BrandName string          `json:"brand_name"`
	Items     []ValuationItem `json:"items"`
	Subtotal  float64         `json:"subtotal"`
}

// ValuationResponse is the full stock valuation payload
type ValuationResponse struct {
	Brands     []BrandGroup `json:"brands"`
	GrandTotal float64      `json:"grand_total"`
}

// --- GET: /api/reports/valuation ---
// GetStockValuation totals the purchase value of everything on hand,
// grouped by brand.
func GetStockValuation(c *gin.Context) {
	var items []models.InventoryItem
	if err := database.DB.Order("brand ASC, item_name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	var grandTotal float64
	groupedMap := make(map[string]*BrandGroup)
	var order []string

	for _, item := range items {
		brand := item.Brand
		if brand == "" {
			brand = "Unbranded"
		}

		group, exists := groupedMap[brand]
		if !exists {
			group = &BrandGroup{BrandName: brand}
			groupedMap[brand] = group
			order = append(order, brand)
		}

		itemTotal := float64(item.Quantity) * item.UnitCost
		group.Items = append(group.Items, ValuationItem{
			Name:      item.ItemName,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			TotalCost: itemTotal,
		})
		group.Subtotal += itemTotal
		grandTotal += itemTotal
	}

	response := ValuationResponse{GrandTotal: grandTotal}
	for _, brand := range order {
		response.Brands = append(response.Brands, *groupedMap[brand])
	}

	c.JSON(http.StatusOK, response)
}
