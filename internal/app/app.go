package app

import (
	"net/http"

	"github.com/ilmsadmin/zbase-sub005/internal/auth"
	"github.com/ilmsadmin/zbase-sub005/internal/config"
	"github.com/ilmsadmin/zbase-sub005/internal/constants"
	"github.com/ilmsadmin/zbase-sub005/internal/customers"
	"github.com/ilmsadmin/zbase-sub005/internal/database"
	"github.com/ilmsadmin/zbase-sub005/internal/health"
	"github.com/ilmsadmin/zbase-sub005/internal/inventory"
	"github.com/ilmsadmin/zbase-sub005/internal/invoices"
	"github.com/ilmsadmin/zbase-sub005/internal/middleware"
	"github.com/ilmsadmin/zbase-sub005/internal/partners"
	"github.com/ilmsadmin/zbase-sub005/internal/products"
	"github.com/ilmsadmin/zbase-sub005/internal/transactions"
	"github.com/ilmsadmin/zbase-sub005/internal/users"
	"github.com/ilmsadmin/zbase-sub005/internal/warranties"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// gormPinger adapts *gorm.DB to the health check's DBPinger.
type gormPinger struct{ db *gorm.DB }

func (g *gormPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis clients so entrypoints can verify
// connectivity at startup.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS before session
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Request counters for the health dashboard, after session
	app.Use(middleware.HealthMarker(rdb))

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health module (no auth)
	var pinger health.DBPinger
	if db != nil {
		pinger = &gormPinger{db: db}
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             pinger,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", healthHandlers.Dashboard)
	app.Get("/reset", healthHandlers.Reset)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)

	// Auth (no auth middleware)
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// Protected modules
	if db != nil && rdb != nil {
		userService := &users.Service{DB: db, Rdb: rdb}
		userHandlers := &users.Handlers{Service: userService}
		userGroup := app.Group("/api/v1/users", middleware.RequireAuth())
		userGroup.Post("/", userHandlers.Create)
		userGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), userHandlers.List)
		userGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), userHandlers.Get)
		userGroup.Patch("/:id/role", middleware.AuthorizePermission(constants.AssignRole), userHandlers.UpdateRole)
		userGroup.Patch("/:id", userHandlers.Update)
		userGroup.Delete("/:id", middleware.AuthorizePermission(constants.RemoveUser), userHandlers.Remove)

		warrantyService := &warranties.Service{DB: db}
		warrantyHandlers := &warranties.Handlers{Service: warrantyService}
		warrantyGroup := app.Group("/api/v1/warranties", middleware.RequireAuth())
		warrantyGroup.Post("/", middleware.AuthorizePermission(constants.CreateWarranty), warrantyHandlers.Create)
		warrantyGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), warrantyHandlers.FindAll)
		warrantyGroup.Get("/code/:code", middleware.AuthorizePermission(constants.ViewData), warrantyHandlers.FindByCode)
		warrantyGroup.Get("/:id/events", middleware.AuthorizePermission(constants.ViewData), warrantyHandlers.ListEvents)
		warrantyGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), warrantyHandlers.FindOne)
		warrantyGroup.Patch("/:id", middleware.AuthorizePermission(constants.UpdateWarranty), warrantyHandlers.Update)
		warrantyGroup.Delete("/:id", middleware.AuthorizePermission(constants.DeleteWarranty), warrantyHandlers.Remove)

		customerService := &customers.Service{DB: db}
		customerHandlers := &customers.Handlers{Service: customerService}
		customerGroup := app.Group("/api/v1/customers", middleware.RequireAuth())
		customerGroup.Post("/", middleware.AuthorizePermission(constants.ManageCustomers), customerHandlers.Create)
		customerGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), customerHandlers.List)
		customerGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), customerHandlers.Get)
		customerGroup.Patch("/:id", middleware.AuthorizePermission(constants.ManageCustomers), customerHandlers.Update)
		customerGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageCustomers), customerHandlers.Remove)

		productService := &products.Service{DB: db}
		productHandlers := &products.Handlers{Service: productService}
		productGroup := app.Group("/api/v1/products", middleware.RequireAuth())
		productGroup.Post("/", middleware.AuthorizePermission(constants.ManageProducts), productHandlers.Create)
		productGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), productHandlers.List)
		productGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), productHandlers.Get)
		productGroup.Patch("/:id", middleware.AuthorizePermission(constants.ManageProducts), productHandlers.Update)
		productGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageProducts), productHandlers.Remove)

		invoiceService := &invoices.Service{DB: db}
		invoiceHandlers := &invoices.Handlers{Service: invoiceService}
		invoiceGroup := app.Group("/api/v1/invoices", middleware.RequireAuth())
		invoiceGroup.Post("/", middleware.AuthorizePermission(constants.ManageInvoices), invoiceHandlers.Create)
		invoiceGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), invoiceHandlers.List)
		invoiceGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), invoiceHandlers.Get)
		invoiceGroup.Patch("/:id/status", middleware.AuthorizePermission(constants.ManageInvoices), invoiceHandlers.SetStatus)
		invoiceGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageInvoices), invoiceHandlers.Remove)

		partnerService := &partners.Service{DB: db}
		partnerHandlers := &partners.Handlers{Service: partnerService}
		partnerGroup := app.Group("/api/v1/partners", middleware.RequireAuth())
		partnerGroup.Post("/", middleware.AuthorizePermission(constants.ManagePartners), partnerHandlers.Create)
		partnerGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), partnerHandlers.List)
		partnerGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), partnerHandlers.Get)
		partnerGroup.Patch("/:id", middleware.AuthorizePermission(constants.ManagePartners), partnerHandlers.Update)
		partnerGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManagePartners), partnerHandlers.Remove)

		inventoryService := &inventory.Service{DB: db}
		inventoryHandlers := &inventory.Handlers{Service: inventoryService}
		inventoryGroup := app.Group("/api/v1/inventory", middleware.RequireAuth())
		inventoryGroup.Get("/view-stock", middleware.AuthorizePermission(constants.ViewData), inventoryHandlers.ViewStock)
		inventoryGroup.Post("/adjust-stock", middleware.AuthorizePermission(constants.AdjustStock), inventoryHandlers.AdjustStock)

		txService := &transactions.Service{DB: db}
		txHandlers := &transactions.Handlers{Service: txService}
		txGroup := app.Group("/api/v1/transactions", middleware.RequireAuth())
		txGroup.Post("/", middleware.AuthorizePermission(constants.ManageInvoices), txHandlers.Create)
		txGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), txHandlers.List)
	}

	return app, db, rdb, nil
}

// Handler returns an http.Handler for serverless platforms.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
