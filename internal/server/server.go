package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"clinic-pos/internal/config"
	custommiddleware "clinic-pos/internal/middleware"
	"clinic-pos/internal/repository"
	"clinic-pos/internal/service"
	"clinic-pos/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware([]string{"*"}, cfg.Server.Env == "development"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	medicineRepo := repository.NewMedicineRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	inventoryService := service.NewInventoryService(medicineRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo, medicineRepo, customerRepo)
	alertService := service.NewAlertService(medicineRepo, notificationRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(saleRepo, medicineRepo, customerRepo, notificationRepo)

	// Initialize handlers
	medicineHandler := transport.NewMedicineHandler(inventoryService, logger)
	customerHandler := transport.NewCustomerHandler(customerService, logger)
	saleHandler := transport.NewSaleHandler(saleService, settingsService, logger)
	notificationHandler := transport.NewNotificationHandler(alertService, notificationRepo, logger)
	reportHandler := transport.NewReportHandler(reportService, logger)
	settingsHandler := transport.NewSettingsHandler(settingsService, logger)

	// Register routes
	medicineHandler.RegisterRoutes(router)
	customerHandler.RegisterRoutes(router)
	saleHandler.RegisterRoutes(router)
	notificationHandler.RegisterRoutes(router)
	reportHandler.RegisterRoutes(router)
	settingsHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Close redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
