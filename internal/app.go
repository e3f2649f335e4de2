// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "gigpay/internal/api"
	"gigpay/internal/api/handler"
	"gigpay/internal/api/middleware"
	"gigpay/internal/config"
	"gigpay/internal/repository"
	"gigpay/internal/repository/postgres"
	"gigpay/internal/service"
	"gigpay/internal/util"
	"gigpay/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	ProfileRepository  repository.ProfileRepository
	ContractRepository repository.ContractRepository
	JobRepository      repository.JobRepository
	ReportRepository   repository.ReportRepository

	// Services
	PaymentService  service.PaymentService
	ContractService service.ContractService
	ReportService   service.ReportService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance. The logger is usable
// immediately so initialization failures can be reported.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply schema
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.Migrate(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	app.Logger.Info("Database connection established and schema applied.")

	// 4. Initialize Repositories
	app.ProfileRepository = postgres.NewProfileRepository(app.DB)
	app.ContractRepository = postgres.NewContractRepository(app.DB)
	app.JobRepository = postgres.NewJobRepository(app.DB)
	app.ReportRepository = postgres.NewReportRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.PaymentService = service.NewPaymentService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.ProfileRepository,
		app.JobRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.ContractService = service.NewContractService(app.DB, app.ContractRepository, app.JobRepository)
	app.ReportService = service.NewReportService(app.DB, app.ReportRepository)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	paymentHandler := handler.NewPaymentHandler(app.PaymentService, app.Logger)
	contractHandler := handler.NewContractHandler(app.ContractService, app.Logger)
	adminHandler := handler.NewAdminHandler(app.ReportService, app.Logger)
	profileResolver := middleware.NewProfileResolver(app.DB, app.ProfileRepository, app.Logger)
	app.HTTPHandler = router.NewRouter(paymentHandler, contractHandler, adminHandler, profileResolver, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
