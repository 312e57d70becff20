package handlers

import (
	"errors"
	"net/http"

	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"
	"go-trading-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ClockInRequest struct {
	Notes string `json:"notes"`
}

func ClockIn(c *gin.Context) {
	var req ClockInRequest
	// Body is optional; ignore bind errors on an empty request
	_ = c.ShouldBindJSON(&req)

	userID := c.MustGet("userID").(uint)

	entry, err := service.ClockIn(database.DB, userID, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyClockedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": "You are already clocked in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clock in"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Clocked in", "time_log": entry})
}

func ClockOut(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	entry, err := service.ClockOut(database.DB, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			c.JSON(http.StatusConflict, gin.H{"error": "You are not clocked in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clock out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Clocked out",
		"time_log":       entry,
		"duration_hours": entry.DurationHours,
	})
}

// --- GET: The caller's own time logs, newest first ---
func GetMyTimeLogs(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var logs []models.TimeLog
	err := database.DB.Where("user_id = ?", userID).
		Order("time_in desc").
		Limit(50).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// --- GET: All staff time logs (admin) ---
func GetAllTimeLogs(c *gin.Context) {
	var logs []models.TimeLog
	err := database.DB.Order("time_in desc").
		Limit(200).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
