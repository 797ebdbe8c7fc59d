package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/handlers"
	authmiddleware "github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/config"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting vacantes backend...")

	cfg := config.Load()

	db, err := storage.NewDatabase(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		logger.Fatal("Failed to apply database schema", zap.Error(err))
	}
	cancelMigrate()

	redisClient, err := storage.NewRedisClient(
		cfg.RedisAddress,
		cfg.RedisPassword,
		cfg.RedisDB,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	files, err := storage.NewFileStore(cfg.StorageDir, logger)
	if err != nil {
		logger.Fatal("Failed to prepare file storage", zap.Error(err))
	}

	// Servicios
	intakeService := services.NewIntakeService(db, files, logger)
	pipelineService := services.NewPipelineService(db, logger)
	rhInterviewService := services.NewRHInterviewService(db, logger)
	managerInterviewService := services.NewManagerInterviewService(db, logger)
	evaluationService := services.NewEvaluationService(db, pipelineService, logger)
	documentService := services.NewDocumentService(db, redisClient, files, cfg.UploadTTL, logger)
	questionBankService := services.NewQuestionBankService(db, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret, logger)
	intakeHandler := handlers.NewIntakeHandler(intakeService, db, logger)
	pipelineHandler := handlers.NewPipelineHandler(pipelineService, db, logger)
	rhInterviewHandler := handlers.NewRHInterviewHandler(rhInterviewService, logger)
	managerInterviewHandler := handlers.NewManagerInterviewHandler(managerInterviewService, logger)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService, logger)
	documentHandler := handlers.NewDocumentHandler(documentService, logger)
	questionBankHandler := handlers.NewQuestionBankHandler(questionBankService, logger)

	// Barrido de sesiones de subida huérfanas
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		documentService.SweepExpired(ctx)
	}); err != nil {
		logger.Fatal("Failed to schedule pending sweep", zap.Error(err))
	}
	sweeper.Start()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(authmiddleware.Logging(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(authmiddleware.CORS)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		servicesStatus := make(map[string]string)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if dbErr := db.HealthCheck(ctx); dbErr == nil {
			servicesStatus["database"] = "healthy"
		} else {
			servicesStatus["database"] = "unhealthy"
			logger.Error("Database health check failed", zap.Error(dbErr))
		}

		if redisErr := redisClient.HealthCheck(ctx); redisErr == nil {
			servicesStatus["redis"] = "healthy"
		} else {
			servicesStatus["redis"] = "unhealthy"
			logger.Error("Redis health check failed", zap.Error(redisErr))
		}

		servicesStatus["server"] = "running"

		utils.WriteHealthCheck(w, "healthy", servicesStatus)
	})

	r.Route("/api", func(r chi.Router) {
		// Rutas públicas del candidato
		r.Post("/auth/login", authHandler.Login)
		r.Mount("/vacancies", intakeHandler.Routes())
		r.Get("/status/{folio}", intakeHandler.Status)
		r.Mount("/after-docs", documentHandler.PublicRoutes())

		// Rutas del personal
		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.Auth(cfg.JWTSecret))

			r.Get("/auth/me", authHandler.Me)

			r.Mount("/applications", pipelineHandler.Routes())
			r.Mount("/rh-interviews", rhInterviewHandler.Routes())
			r.Mount("/manager-interviews", managerInterviewHandler.Routes())
			r.Mount("/evaluations", evaluationHandler.Routes())
			r.Mount("/documents", documentHandler.Routes())

			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.RequireRole(models.RoleRH))
				r.Mount("/question-banks", questionBankHandler.Routes())
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "Route not found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("address", cfg.ServerAddress),
			zap.String("env", cfg.Environment))

		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("Server failed to start", zap.Error(err))

	case sig := <-shutdown:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Fatal("Force shutdown failed", zap.Error(err))
			}
		}

		sweeperCtx := sweeper.Stop()
		<-sweeperCtx.Done()

		logger.Info("Server stopped gracefully")
	}
}
