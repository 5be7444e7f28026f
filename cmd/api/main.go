package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/config"
	"github.com/tableside/tableside-api/internal/database"
	"github.com/tableside/tableside-api/internal/handler"
	"github.com/tableside/tableside-api/internal/jobs"
	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/repository"
	"github.com/tableside/tableside-api/internal/router"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/sports"
	cloud "github.com/tableside/tableside-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	specialRepo := repository.NewSpecialRepository(db)
	eventRepo := repository.NewEventRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	pingRepo := repository.NewPingRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	auditService := service.NewAuditService(auditRepo, natsConn, cfg.NATSAuditSubject, logger)
	menuService := service.NewAdminMenuService(menuRepo, validate, auditService, logger)
	specialService := service.NewAdminSpecialService(specialRepo, validate, auditService, logger)
	eventService := service.NewAdminEventService(eventRepo, validate, auditService, logger)
	userService := service.NewAdminUserService(userRepo, validate, auditService, cfg.JWTSecret, cfg.JWTTTL, logger)
	tenantService := service.NewAdminTenantService(tenantRepo, validate, auditService, logger)
	publicService := service.NewPublicContentService(tenantRepo, menuRepo, specialRepo, eventRepo, redisClient, cfg.PublicCacheTTL, logger)
	uploadService := service.NewUploadService(uploader, uploadRepo, cfg.UploadMaxSizeMB, logger)
	pingService := service.NewHealthPingService(tenantRepo, pingRepo, cfg.PingTimeout, logger)

	scheduleSource := sports.NewClient(cfg.SportsAPIBaseURL, nil, logger)
	scheduleCache := sports.NewScheduleCache(scheduleSource, cfg.ScheduleCacheTTL)
	syncService := service.NewScheduleSyncService(eventRepo, tenantRepo, scheduleCache, auditService, logger)

	deps := router.Dependencies{
		AuthHandler:          handler.NewAuthHandler(userService, logger),
		AdminMenuHandler:     handler.NewAdminMenuHandler(menuService, logger),
		AdminSpecialHandler:  handler.NewAdminSpecialHandler(specialService, logger),
		AdminEventHandler:    handler.NewAdminEventHandler(eventService, logger),
		AdminUserHandler:     handler.NewAdminUserHandler(userService, logger),
		AdminTenantHandler:   handler.NewAdminTenantHandler(tenantService, pingRepo, logger),
		AdminAuditHandler:    handler.NewAdminAuditHandler(auditService, logger),
		AdminSportsHandler:   handler.NewAdminSportsHandler(syncService, scheduleCache, cfg.SportsTeam, logger),
		UploadHandler:        handler.NewUploadHandler(uploadService, logger),
		PublicContentHandler: handler.NewPublicContentHandler(publicService, logger),
		JobsHandler:          handler.NewJobsHandler(pingService, syncService, cfg.SportsTeam, logger),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:             &logger,
		CanonicalAdminHost: cfg.CanonicalAdminHost,
	})
	router.Register(app, cfg, deps)

	scheduler := jobs.NewScheduler(pingService, syncService, cfg.SportsTeam, logger)
	if err := scheduler.Start(cfg.PingSweepCron, cfg.ScheduleSyncCron); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
