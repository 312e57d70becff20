package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"go-trading-backend/internal/auth"
	"go-trading-backend/internal/config"
	"go-trading-backend/internal/database"
	"go-trading-backend/internal/handlers"
	"go-trading-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	auth.Init(cfg.JWTSecret)
	handlers.Init(cfg)
	database.Connect(cfg.DBDSN)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)
	r.Static("/uploads", cfg.UploadDir)

	// --- FEATURE FLAG: Staff Registration ---
	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	// Every route in here refreshes the caller's session and enforces the
	// inactivity timeout.
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.SessionTimeout))
	{
		// STAFF & ADMIN
		api.POST("/logout", handlers.Logout)
		api.GET("/inventory", handlers.GetInventory)
		api.POST("/sales", handlers.ProcessSale)
		api.GET("/sales", handlers.GetSales)
		api.POST("/purchases", handlers.ProcessPurchase)
		api.GET("/purchases", handlers.GetPurchases)
		api.POST("/timelogs/clock-in", handlers.ClockIn)
		api.POST("/timelogs/clock-out", handlers.ClockOut)
		api.GET("/timelogs", handlers.GetMyTimeLogs)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/ask", handlers.AskAI)

			admin.POST("/upload", handlers.UploadImage)
			admin.POST("/inventory", handlers.AddItem)
			admin.PUT("/inventory/:id", handlers.UpdateItem)
			admin.POST("/inventory/:id/quick-update", handlers.QuickUpdateItem)
			admin.DELETE("/inventory/:id", handlers.DeleteItem)
			admin.GET("/inventory/export", handlers.ExportInventoryCSV)
			admin.POST("/inventory/import", handlers.ImportInventoryCSV)
			admin.GET("/timelogs/all", handlers.GetAllTimeLogs)
			admin.GET("/reports", handlers.GetSalesReport)
			admin.GET("/reports/valuation", handlers.GetStockValuation)
		}
	}

	log.Println("🚀 Server starting on " + cfg.BaseURL)
	if err := r.Run(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
