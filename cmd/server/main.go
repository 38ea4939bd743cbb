package main

import (
	"time"

	"photostudio-backend/internal/auth"
	"photostudio-backend/internal/config"
	applog "photostudio-backend/internal/logger"
	"photostudio-backend/internal/metrics"
	"photostudio-backend/internal/middleware"
	"photostudio-backend/internal/models"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/routes"
	"photostudio-backend/internal/services/audit"
	"photostudio-backend/internal/services/content"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		zap.S().Info("no .env file found, relying on system env")
	}

	cfg := config.Load()

	if err := applog.Init(&applog.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Server.Env,
	}); err != nil {
		panic(err)
	}
	log := applog.Get()
	defer log.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DB.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(cfg.DB.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Income{},
		&models.Expense{},
		&models.Customer{},
		&models.Invoice{},
		&models.Asset{},
		&models.GalleryImage{},
		&models.HeroImage{},
		&models.WebsiteSettings{},
		&models.ContactMessage{},
		&models.PricingPackage{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	if err := seed(db, cfg); err != nil {
		log.Fatal("database seeding failed", zap.Error(err))
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(applog.Middleware())
	r.Use(metrics.Middleware())
	r.Use(middleware.SecurityHeaders())
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = cfg.Upload.MaxBytes

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static("/uploads", cfg.Upload.Dir)

	routes.RegisterRoutes(r, db, cfg)

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

// seed creates the initial admin account plus the default website settings
// and pricing packages on an empty database.
func seed(db *gorm.DB, cfg *config.Config) error {
	userRepo := repository.NewUserRepository(db)

	if cfg.Admin.Password != "" {
		count, err := userRepo.Count()
		if err != nil {
			return err
		}
		if count == 0 {
			hash, err := auth.HashPassword(cfg.Admin.Password)
			if err != nil {
				return err
			}
			if err := userRepo.Create(&models.User{
				Name:         cfg.Admin.Name,
				Email:        cfg.Admin.Email,
				PasswordHash: hash,
				Role:         "admin",
			}); err != nil {
				return err
			}
			applog.Get().Info("default admin account created", zap.String("email", cfg.Admin.Email))
		}
	}

	contentService := content.NewService(
		repository.NewGalleryRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewPricingRepository(db),
		repository.NewContactRepository(db),
		audit.NewRecorder(repository.NewAuditRepository(db)),
	)
	return contentService.EnsureDefaults()
}
