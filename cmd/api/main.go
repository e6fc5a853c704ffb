package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-ledger/internal/handler"
	"go-pos-ledger/internal/middleware"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/internal/service"
	"go-pos-ledger/internal/ws"
	"go-pos-ledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Role{}, &model.User{}, &model.Product{}, &model.SaleLine{}, &model.AuditEntry{})

	// 3. Seed default roles and admin user
	seedRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db, productRepo)
	auditRepo := repository.NewAuditRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	notifier := service.NewAuditNotifier(auditRepo)
	ledgerService := service.NewLedgerService(productRepo, saleRepo, notifier, wsHub)
	saleService := service.NewSaleService(saleRepo, notifier, wsHub)
	reportService := service.NewReportService(saleRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, roleRepo, notifier)

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	saleHandler := handler.NewSaleHandler(saleService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Stock Ledger v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require a verified, still-existing actor
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product / Ledger Routes
	protected.Get("/products", ledgerHandler.GetProducts)
	protected.Get("/products/barcode/:code", ledgerHandler.GetProductByBarcode)
	protected.Get("/products/:id", ledgerHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), ledgerHandler.RegisterProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), ledgerHandler.DeleteProduct)
	protected.Post("/products/:id/adjust", ledgerHandler.Adjust)

	// Checkout / Sale History Routes
	protected.Post("/checkout", saleHandler.Checkout)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/receipt/:id", saleHandler.GetReceipt)

	// Report Routes
	protected.Get("/reports/summary", reportHandler.GetSummaryStats)
	protected.Get("/reports/daily-sales", reportHandler.GetDailySales)

	// Audit Log Routes (admin only)
	protected.Get("/audit", middleware.RequireRole(model.RoleAdmin), auditHandler.GetEntries)

	// User Management Routes (admin only)
	protected.Get("/users", middleware.RequireRole(model.RoleAdmin), userHandler.GetUsers)
	protected.Post("/users", middleware.RequireRole(model.RoleAdmin), userHandler.CreateUser)
	protected.Put("/users/:id/deactivate", middleware.RequireRole(model.RoleAdmin), userHandler.DeactivateUser)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedRolesAndAdmin creates default roles and an admin user if they don't exist
func seedRolesAndAdmin(db *gorm.DB) {
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
		if err != nil {
			log.Printf("Warning: Failed to load admin role: %v", err)
			return
		}

		admin := &model.User{
			Email:    "admin@example.com",
			FullName: "Administrator",
			RoleID:   &adminRole.ID,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (ADMIN)")
		}
	}
}
