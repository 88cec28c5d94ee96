package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-topup-store/internal/handler"
	"go-topup-store/internal/middleware"
	"go-topup-store/internal/model"
	"go-topup-store/internal/repository"
	"go-topup-store/internal/service"
	"go-topup-store/internal/ws"
	"go-topup-store/pkg/database"
	"go-topup-store/pkg/digiflazz"

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
	db.AutoMigrate(&model.Order{}, &model.User{}, &model.Privilege{}, &model.Role{})

	// 3. Seed default privileges, roles, and the first operator
	seedPrivilegesRolesAndOperator(db)

	// 4. Setup WebSocket Hub (order events for admin dashboards)
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	priceSource := digiflazz.NewClient(os.Getenv("DIGIFLAZZ_USERNAME"), os.Getenv("DIGIFLAZZ_API_KEY"))
	catalogService := service.NewCatalogService(priceSource, markupFromEnv())
	orderService := service.NewOrderService(orderRepo, catalogService, wsHub, os.Getenv("WHATSAPP_ADMIN_PHONE"))
	verifier := service.NewCredentialVerifier(userRepo)
	authService := service.NewAuthService(verifier, userRepo)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(orderService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "TopUp Store v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Storefront: catalog, ordering, status check
	api.Get("/games", catalogHandler.GetGames)
	api.Get("/games/:id", catalogHandler.GetGame)
	api.Get("/games/:id/quote", catalogHandler.QuoteAmount)
	api.Post("/orders", orderHandler.PlaceOrder)
	api.Get("/orders/:sn", orderHandler.CheckStatus)

	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Admin panel (with privilege checks)
	protected.Get("/admin/orders", middleware.RequirePrivilege("order:view"), adminHandler.ListOrders)
	protected.Put("/admin/orders/:sn/status", middleware.RequirePrivilege("order:update_status"), adminHandler.UpdateStatus)
	protected.Get("/admin/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), adminHandler.GetDashboardStats)

	// Operator Management Routes (with privilege checks)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

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

// markupFromEnv reads the seller markup policy. One observed deployment adds
// a fixed 1000 IDR per denomination, another sells at base price; both are
// valid, so the amount is configuration with 1000 as the default.
func markupFromEnv() int64 {
	raw := os.Getenv("MARKUP_IDR")
	if raw == "" {
		return 1000
	}
	markup, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || markup < 0 {
		log.Printf("Warning: invalid MARKUP_IDR %q, using 1000", raw)
		return 1000
	}
	return markup
}

// seedPrivilegesRolesAndOperator creates default privileges and roles, and a
// first operator if ADMIN_EMAIL/ADMIN_PASSWORD are configured. There is no
// built-in credential pair; without the env vars no operator is created.
func seedPrivilegesRolesAndOperator(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN gets ALL privileges
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(&masterRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MASTER_ADMIN role assigned all privileges")
	}

	// ADMIN handles orders but not operator accounts
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code != "user:create" && p.Code != "user:update" && p.Code != "user:delete" && p.Code != "user:update_privilege" {
				adminPrivileges = append(adminPrivileges, p)
			}
		}
		db.Model(&adminRole).Association("Privileges").Replace(adminPrivileges)
		log.Println("ADMIN role assigned order management privileges")
	}

	// 4. Create the first operator with MASTER_ADMIN role, env-configured only
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping operator seed")
		return
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	masterRole, err = roleRepo.FindByCode(model.RoleMasterAdmin)
	if err != nil {
		log.Printf("Warning: MASTER_ADMIN role missing, cannot seed operator: %v", err)
		return
	}

	operator := &model.User{
		Email:       email,
		FullName:    "Store Operator",
		PhoneNumber: os.Getenv("WHATSAPP_ADMIN_PHONE"),
		RoleID:      &masterRole.ID,
		IsActive:    true,
		Privileges:  masterRole.Privileges,
	}
	operator.CreatedBy = "system"
	operator.UpdatedBy = "system"

	if err := operator.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash operator password: %v", err)
		return
	}

	if err := userRepo.Create(operator); err != nil {
		log.Printf("Warning: Failed to create operator: %v", err)
	} else {
		log.Printf("Operator created: %s (MASTER_ADMIN)", email)
	}
}
