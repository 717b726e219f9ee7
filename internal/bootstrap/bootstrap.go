package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unidesk/internal/app/controllers"
	appMigrations "github.com/yigit/unidesk/internal/app/migrations"
	appRoutes "github.com/yigit/unidesk/internal/app/routes"
	appServices "github.com/yigit/unidesk/internal/app/services"
	"github.com/yigit/unidesk/internal/config"
	"github.com/yigit/unidesk/internal/db"
	"github.com/yigit/unidesk/internal/lookup"
	appMiddleware "github.com/yigit/unidesk/internal/middleware"
	"github.com/yigit/unidesk/internal/pkg/blobstore"
	"github.com/yigit/unidesk/internal/pkg/logger"
	"github.com/yigit/unidesk/internal/pkg/validation"
	"github.com/yigit/unidesk/internal/pkg/websocket"
	"github.com/yigit/unidesk/internal/seed"
	"github.com/yigit/unidesk/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store     *store.Store
	Resolver  *lookup.Resolver
	Validator *validator.Validate
	Hub       *websocket.Hub

	Catalogs       *appServices.Catalogs
	ResultService  appServices.ResultService
	PayrollService appServices.PayrollService
	FeeService     appServices.FeeService
	HostelService  appServices.HostelService
	ClubService    appServices.ClubService
	LibraryService appServices.LibraryService
	LeaveService   appServices.LeaveService
	ReportService  appServices.ReportService

	Handlers *appRoutes.Handlers
	Logger   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// OpenBlobStore connects the configured storage backend. The postgres backend runs
// its migrations first.
func OpenBlobStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (blobstore.BlobStore, error) {
	backend := strings.ToLower(cfg.Storage.Backend)
	lgr.Info().Str("backend", backend).Msg("Opening storage backend...")

	switch backend {
	case config.StorageMemory:
		lgr.Warn().Msg("Memory storage selected, data is lost on restart")
		return blobstore.NewMemoryStore(), nil

	case config.StorageRedis:
		return blobstore.NewRedisStore(ctx, blobstore.RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})

	case config.StoragePostgres:
		pool, err := db.NewPostgresPool(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}

		migrationsDir := cfg.Database.MigrationsDir
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			pool.Close()
			lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
			return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
			pool.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		return blobstore.NewPostgresStore(pool), nil

	default:
		return blobstore.NewLocalStore(cfg.Storage.FilePath)
	}
}

// LoadStore reads the state from blobs, seeding an empty store when enabled
func LoadStore(ctx context.Context, cfg *config.Config, blobs blobstore.BlobStore, lgr zerolog.Logger) (*store.Store, error) {
	s := store.New(blobs, logger.Component("store"))
	if err := s.Load(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to load application state")
		return nil, fmt.Errorf("failed to load application state: %w", err)
	}

	if s.Empty() && cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, s, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	lgr.Info().Interface("counts", s.Counts()).Msg("Application state loaded")
	return s, nil
}

// BuildDependencies initializes services, the change feed hub and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, s *store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Store:     s,
		Resolver:  lookup.NewResolver(s),
		Validator: validation.New(),
		Hub:       websocket.NewHub(lgr.With().Str("component", "changefeed").Logger()),
		Logger:    lgr,
	}
	s.Subscribe(deps.Hub.ChangeListener())

	svcLogger := lgr.With().Str("component", "services").Logger()
	deps.Catalogs = appServices.NewCatalogs(s, deps.Validator, svcLogger)
	deps.ResultService = appServices.NewResultService(s, deps.Resolver, deps.Validator, svcLogger)
	deps.PayrollService = appServices.NewPayrollService(s, deps.Resolver, deps.Validator, svcLogger)
	deps.FeeService = appServices.NewFeeService(s, deps.Resolver, deps.Validator, svcLogger)
	deps.HostelService = appServices.NewHostelService(s, deps.Resolver, deps.Validator, svcLogger)
	deps.ClubService = appServices.NewClubService(s, deps.Resolver, deps.Validator, svcLogger)
	deps.LibraryService = appServices.NewLibraryService(s, deps.Resolver, deps.Validator, appServices.LibraryPolicy{
		FinePerDay: cfg.Library.FinePerDay,
		LoanDays:   cfg.Library.LoanDays,
	}, svcLogger)
	deps.LeaveService = appServices.NewLeaveService(s, deps.Resolver, deps.Validator, svcLogger)
	deps.ReportService = appServices.NewReportService(s, svcLogger)

	if err := deps.HostelService.SyncOccupancy(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to sync room occupancy")
		return nil, fmt.Errorf("failed to sync room occupancy: %w", err)
	}

	deps.Handlers = buildHandlers(cfg, deps)
	return deps, nil
}

func buildHandlers(cfg *config.Config, deps *Dependencies) *appRoutes.Handlers {
	c := deps.Catalogs
	return &appRoutes.Handlers{
		Collections: map[string]appControllers.CRUDHandlers{
			"students":         appControllers.NewCollectionController(c.Students, appServices.StudentSchema),
			"faculty":          appControllers.NewCollectionController(c.Faculty, appServices.FacultySchema),
			"courses":          appControllers.NewCollectionController(c.Courses, appServices.CourseSchema),
			"exams":            appControllers.NewCollectionController(c.Exams, appServices.ExamSchema),
			"fee-structures":   appControllers.NewCollectionController(c.FeeStructures, appServices.FeeStructureSchema),
			"attendance":       appControllers.NewCollectionController(c.Attendance, appServices.AttendanceSchema),
			"hostels":          appControllers.NewCollectionController(c.Hostels, appServices.HostelSchema),
			"clubs":            appControllers.NewCollectionController(c.Clubs, appServices.ClubSchema),
			"notices":          appControllers.NewCollectionController(c.Notices, appServices.NoticeSchema),
			"transport-routes": appControllers.NewCollectionController(c.TransportRoutes, appServices.TransportRouteSchema),
			"books":            appControllers.NewCollectionController(c.Books, appServices.BookSchema),
			"timetable":        appControllers.NewCollectionController(c.Timetable, appServices.TimetableSchema),
		},
		Results: appControllers.NewResultController(deps.ResultService),
		Payroll: appControllers.NewPayrollController(deps.PayrollService),
		Fees:    appControllers.NewFeeController(deps.FeeService),
		Hostel:  appControllers.NewHostelController(deps.HostelService),
		Clubs:   appControllers.NewClubController(deps.ClubService),
		Library: appControllers.NewLibraryController(deps.LibraryService),
		Leave:   appControllers.NewLeaveController(deps.LeaveService),
		Reports: appControllers.NewReportController(deps.ReportService),
		Health: appControllers.NewHealthController(
			strings.ToLower(cfg.Storage.Backend),
			deps.Store.Counts,
			deps.Hub.ClientsCount,
		),
		ChangeFeed: websocket.NewHandler(deps.Hub, deps.Logger).HandleConnection,
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()),
		gin.Recovery(),
	)

	appRoutes.SetupRouter(router, deps.Handlers)
	return router
}
