package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/akshat1423/scaleup-backend/internal/app/controllers"
	appMigrations "github.com/akshat1423/scaleup-backend/internal/app/migrations"
	appRepos "github.com/akshat1423/scaleup-backend/internal/app/repositories"
	appRoutes "github.com/akshat1423/scaleup-backend/internal/app/routes"
	appServices "github.com/akshat1423/scaleup-backend/internal/app/services"
	"github.com/akshat1423/scaleup-backend/internal/config"
	"github.com/akshat1423/scaleup-backend/internal/db"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	appMiddleware "github.com/akshat1423/scaleup-backend/internal/middleware"
	pkgAuth "github.com/akshat1423/scaleup-backend/internal/pkg/auth"
	"github.com/akshat1423/scaleup-backend/internal/pkg/cache"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
	"github.com/akshat1423/scaleup-backend/internal/pkg/logger"
	"github.com/akshat1423/scaleup-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Cache          cache.Cache
	Registry       *metrics.Registry
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data after migrations. Seeding failures are logged
	// but do not block startup.
	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// setupCache builds the configured cache backend.
func setupCache(cfg *config.Config, lgr zerolog.Logger) (cache.Cache, time.Duration, error) {
	cacheTTL := helpers.ParseDuration(cfg.Cache.TTL, 30*time.Second)

	switch cfg.Cache.Backend {
	case "redis":
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lgr.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Redis cache configured")
		return redisCache, cacheTTL, nil
	default:
		lgr.Info().Msg("In-memory cache configured")
		return cache.NewMemory(cacheTTL, 2*cacheTTL), cacheTTL, nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)
	deps.Registry = metrics.NewRegistry()

	appCache, cacheTTL, err := setupCache(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize cache")
		return nil, err
	}
	deps.Cache = appCache

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(
		deps.Repos,
		deps.JWTService,
		deps.Cache,
		cacheTTL,
		deps.Registry,
		lgr,
	)

	deps.Controllers = appControllers.NewControllers(deps.Services)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.RateLimiter = appMiddleware.NewRateLimiter(20, 40)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.Controllers,
		deps.AuthMiddleware,
		deps.RateLimiter,
		deps.Registry,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
