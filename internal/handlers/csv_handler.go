package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// --- GET: Download the inventory as a CSV file ---
func ExportInventoryCSV(c *gin.Context) {
	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := service.ExportInventoryCSV(database.DB, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export inventory"})
		return
	}
}

// --- POST: Upload a CSV and reconcile it against the inventory ---
// The import is best-effort: bad rows are reported back but never abort
// the rest of the file.
func ImportInventoryCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	result, err := service.ImportInventoryCSV(database.DB, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read CSV: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Import finished: %d created, %d updated, %d failed",
			result.Created, result.Updated, result.FailedRows),
		"result": result,
	})
}
