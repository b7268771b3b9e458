package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/displaydynamix/studio-api/internal/api"
	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
	"github.com/displaydynamix/studio-api/internal/core/security"
	"github.com/displaydynamix/studio-api/internal/core/service"
	"github.com/displaydynamix/studio-api/internal/infrastructure/config"
	mongodb "github.com/displaydynamix/studio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/displaydynamix/studio-api/internal/infrastructure/db/redis"
	"github.com/displaydynamix/studio-api/internal/infrastructure/queue"
	"github.com/displaydynamix/studio-api/pkg/logger"
)

// @title           Display Dynamix Studio API
// @version         1.0
// @description     Backend for the Display Dynamix Studio display editor: authentication, user management and template storage.
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: os.Getenv("ENV") == "development"})

	cfg := config.Load(log)
	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// Repositories and adapters.
	userRepo := mongodb.NewUserRepository(db)
	templateRepo := mongodb.NewTemplateRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	attempts := redisdb.NewAttemptTracker(rdb, cfg.Auth.LockoutDuration)

	// Audit trail: sharded workers keep per-account ordering.
	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(0, auditService, log)
	dispatcher.Start(ctx)

	// Core services.
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)
	codec := security.NewTokenCodec(security.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	authService := service.NewAuthService(userRepo, hasher, codec, attempts, dispatcher, cfg.Auth.MaxLoginAttempts, log)
	userService := service.NewUserService(userRepo, hasher, dispatcher, log)
	templateService := service.NewTemplateService(templateRepo, log)

	if err := bootstrapAdmin(ctx, cfg, userService, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(api.RouterDeps{
		Config:    cfg,
		Logger:    log,
		Mongo:     db,
		Redis:     rdb,
		Auth:      authService,
		Users:     userService,
		Templates: templateService,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	cancel() // stops audit workers

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// bootstrapAdmin seeds the initial administrator when no admin account
// exists yet. Without it a fresh deployment has no way to reach the
// admin-only user management endpoints.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, users ports.UserService, log zerolog.Logger) error {
	adminRole := domain.RoleAdmin
	existing, err := users.List(ctx, ports.UserFilter{Role: &adminRole, Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if cfg.Bootstrap.AdminPassword == "" {
		log.Warn().Msg("no admin account exists and BOOTSTRAP_ADMIN_PASSWORD is unset, skipping bootstrap")
		return nil
	}

	admin, err := users.Create(ctx, ports.CreateUserInput{
		Username:            cfg.Bootstrap.AdminUsername,
		Email:               cfg.Bootstrap.AdminEmail,
		Password:            cfg.Bootstrap.AdminPassword,
		Role:                domain.RoleAdmin,
		ForcePasswordChange: true,
	})
	if err != nil {
		return err
	}

	log.Info().Str("username", admin.Username).Msg("bootstrap admin created")
	return nil
}
