package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"photostudio-backend/internal/auth"
	"photostudio-backend/internal/config"
	handler "photostudio-backend/internal/handlers"
	"photostudio-backend/internal/middleware"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/services/audit"
	"photostudio-backend/internal/services/bookkeeping"
	"photostudio-backend/internal/services/content"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	recorder := audit.NewRecorder(auditRepo)
	sessions := auth.NewSessionManager(cfg.Session.SigningKey, cfg.Session.TTL)

	bookkeepingService := bookkeeping.NewService(
		ledgerRepo,
		customerRepo,
		invoiceRepo,
		assetRepo,
		recorder,
	)
	contentService := content.NewService(
		galleryRepo,
		settingsRepo,
		pricingRepo,
		contactRepo,
		recorder,
	)

	authHandler := handler.NewAuthHandler(
		userRepo,
		sessions,
		recorder,
		cfg.Session.CookieName,
		cfg.Session.CookieSecure,
	)
	bookkeepingHandler := handler.NewBookkeepingHandler(bookkeepingService)
	contentHandler := handler.NewContentHandler(contentService, cfg.Upload.Dir)
	publicHandler := handler.NewPublicHandler(contentService)

	api := r.Group("/api")

	// Public website routes
	api.GET("/health", publicHandler.Health)
	api.GET("/home", publicHandler.Home)
	api.GET("/gallery", publicHandler.Gallery)
	api.GET("/pricing", publicHandler.Pricing)
	api.GET("/settings", publicHandler.Settings)
	api.POST("/contact", publicHandler.Contact)

	// Authentication
	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authed := authGroup.Group("")
	authed.Use(middleware.RequireSession(sessions, cfg.Session.CookieName))
	authed.Use(middleware.CSRFGuard())
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/me", authHandler.Me)
	}

	// Admin back-office: everything below needs a valid session, and
	// mutating requests need the CSRF token from login.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireSession(sessions, cfg.Session.CookieName))
	admin.Use(middleware.CSRFGuard())
	{
		admin.GET("/dashboard", bookkeepingHandler.Dashboard)
		admin.GET("/report", bookkeepingHandler.Report)
		admin.GET("/audit-log", bookkeepingHandler.AuditTrail)

		admin.GET("/income", bookkeepingHandler.ListIncome)
		admin.POST("/income", bookkeepingHandler.AddIncome)
		admin.POST("/income/:id/delete", bookkeepingHandler.DeleteIncome)
		admin.POST("/income/:id/restore", bookkeepingHandler.RestoreIncome)

		admin.GET("/expenses", bookkeepingHandler.ListExpenses)
		admin.POST("/expenses", bookkeepingHandler.AddExpense)
		admin.POST("/expenses/:id/delete", bookkeepingHandler.DeleteExpense)
		admin.POST("/expenses/:id/restore", bookkeepingHandler.RestoreExpense)

		admin.GET("/customers", bookkeepingHandler.ListCustomers)
		admin.POST("/customers", bookkeepingHandler.AddCustomer)
		admin.POST("/customers/:id/payment", bookkeepingHandler.UpdateCustomerPayment)
		admin.POST("/customers/:id/delete", bookkeepingHandler.DeleteCustomer)
		admin.POST("/customers/:id/restore", bookkeepingHandler.RestoreCustomer)

		admin.GET("/invoices", bookkeepingHandler.ListInvoices)
		admin.POST("/invoices", bookkeepingHandler.AddInvoice)
		admin.POST("/invoices/:id/mark-paid", bookkeepingHandler.MarkInvoicePaid)
		admin.POST("/invoices/:id/cancel", bookkeepingHandler.CancelInvoice)
		admin.POST("/invoices/:id/delete", bookkeepingHandler.DeleteInvoice)
		admin.POST("/invoices/:id/restore", bookkeepingHandler.RestoreInvoice)

		admin.GET("/assets", bookkeepingHandler.ListAssets)
		admin.POST("/assets", bookkeepingHandler.AddAsset)
		admin.POST("/assets/:id/delete", bookkeepingHandler.DeleteAsset)

		admin.GET("/gallery", contentHandler.ListGallery)
		admin.POST("/gallery", contentHandler.UploadGalleryImage)
		admin.POST("/gallery/:id/toggle", contentHandler.ToggleGalleryImage)
		admin.POST("/gallery/:id/delete", contentHandler.DeleteGalleryImage)
		admin.POST("/gallery/:id/restore", contentHandler.RestoreGalleryImage)

		admin.GET("/website", contentHandler.GetSettings)
		admin.POST("/website", contentHandler.UpdateSettings)
		admin.POST("/website/hero", contentHandler.UploadHeroImage)
		admin.POST("/website/hero/:id/delete", contentHandler.DeleteHeroImage)

		admin.GET("/pricing", contentHandler.ListPricing)
		admin.POST("/pricing", contentHandler.AddPricing)
		admin.GET("/pricing/:id", contentHandler.GetPricing)
		admin.POST("/pricing/:id", contentHandler.UpdatePricing)
		admin.POST("/pricing/:id/delete", contentHandler.DeletePricing)
		admin.POST("/pricing/:id/toggle", contentHandler.TogglePricing)

		admin.GET("/messages", contentHandler.ListMessages)
		admin.POST("/messages/:id/read", contentHandler.MarkMessageRead)
		admin.POST("/messages/:id/delete", contentHandler.DeleteMessage)
	}
}
