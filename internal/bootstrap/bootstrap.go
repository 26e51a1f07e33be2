package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/selimc/akademi/internal/app/controllers"
	appMigrations "github.com/selimc/akademi/internal/app/migrations"
	appRepos "github.com/selimc/akademi/internal/app/repositories"
	appRoutes "github.com/selimc/akademi/internal/app/routes"
	appServices "github.com/selimc/akademi/internal/app/services"
	"github.com/selimc/akademi/internal/config"
	"github.com/selimc/akademi/internal/db"
	appMiddleware "github.com/selimc/akademi/internal/middleware"
	pkgAuth "github.com/selimc/akademi/internal/pkg/auth"
	"github.com/selimc/akademi/internal/pkg/helpers"
	"github.com/selimc/akademi/internal/pkg/logger"
	"github.com/selimc/akademi/internal/pkg/querycache"
	"github.com/selimc/akademi/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CourseService        appServices.CourseService
	ModuleService        appServices.ModuleService
	VideoService         appServices.VideoService
	StudentService       appServices.StudentService
	EnrollmentService    appServices.EnrollmentService
	DashboardService     appServices.DashboardService
	ImportService        appServices.ImportService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	ModuleController     *appControllers.ModuleController
	VideoController      *appControllers.VideoController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	DashboardController  *appControllers.DashboardController
	PagesController      *appControllers.PagesController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	RoleGate             *appMiddleware.RoleGate
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Cache                *querycache.Cache
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A local .env file, when present, is loaded before the config is read.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupCache builds the query cache over the configured backing store
func SetupCache(cfg *config.Config, lgr zerolog.Logger) (*querycache.Cache, error) {
	ttl := helpers.ParseDuration(cfg.Cache.TTL, 5*time.Minute)

	var store querycache.Store
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		var err error
		store, err = querycache.NewRedisStore(cfg.Cache.RedisAddr)
		if err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Failed to connect to Redis")
			return nil, fmt.Errorf("failed to set up redis cache: %w", err)
		}
		lgr.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Query cache backed by Redis")
	default:
		store = querycache.NewMemoryStore()
		lgr.Info().Msg("Query cache backed by process memory")
	}

	return querycache.New(store, ttl, lgr), nil
}

// BuildDependencies initializes application repositories, services and
// controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, cache *querycache.Cache, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Cache: cache}

	deps.Repos = appRepos.NewRepositories(dbPool)

	accessTokenExp := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		cache,
	)
	deps.ModuleService = appServices.NewModuleService(
		deps.Repos.ModuleRepository,
		deps.Repos.CourseRepository,
		cache,
	)
	deps.VideoService = appServices.NewVideoService(
		deps.Repos.VideoRepository,
		deps.Repos.ModuleRepository,
		cache,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.UserRepository,
		deps.Repos.EnrollmentRepository,
		cache,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		cache,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.CourseRepository,
		deps.Repos.ModuleRepository,
		deps.Repos.VideoRepository,
		deps.Repos.EnrollmentRepository,
		cache,
	)
	deps.ImportService = appServices.NewImportService(
		deps.StudentService,
		helpers.ParseDuration(cfg.Import.RowDelay, 150*time.Millisecond),
		cfg.Import.DefaultPassword,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.RoleGate = appMiddleware.NewRoleGate(deps.JWTService, deps.Repos.UserRepository, cfg.JWT.SessionCookieName)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cfg.JWT.SessionCookieName, int(accessTokenExp.Seconds()))
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.ModuleService)
	deps.ModuleController = appControllers.NewModuleController(deps.ModuleService, deps.VideoService)
	deps.VideoController = appControllers.NewVideoController(deps.VideoService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ImportService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.PagesController = appControllers.NewPagesController(cfg.Server.StaticDir)

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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.ModuleController,
		deps.VideoController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.DashboardController,
		deps.PagesController,
		deps.AuthMiddleware,
		deps.RoleGate,
	)

	return router
}
