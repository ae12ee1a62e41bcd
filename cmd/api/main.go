package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/apnaswastha/registry-api/internal/asset"
	"github.com/apnaswastha/registry-api/internal/config"
	"github.com/apnaswastha/registry-api/internal/handler"
	appointmentHandler "github.com/apnaswastha/registry-api/internal/handler/appointment"
	feedbackHandler "github.com/apnaswastha/registry-api/internal/handler/feedback"
	qrcodeHandler "github.com/apnaswastha/registry-api/internal/handler/qrcode"
	workerHandler "github.com/apnaswastha/registry-api/internal/handler/worker"
	"github.com/apnaswastha/registry-api/internal/middleware"
	"github.com/apnaswastha/registry-api/internal/qr"
	"github.com/apnaswastha/registry-api/internal/repository"
	"github.com/apnaswastha/registry-api/internal/repository/csvfile"
	"github.com/apnaswastha/registry-api/internal/repository/postgres"
	"github.com/apnaswastha/registry-api/internal/router"
	appointmentService "github.com/apnaswastha/registry-api/internal/service/appointment"
	feedbackService "github.com/apnaswastha/registry-api/internal/service/feedback"
	registrationService "github.com/apnaswastha/registry-api/internal/service/registration"
	"github.com/apnaswastha/registry-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = logger.Setup(&logger.Config{
		Level:  level,
		Pretty: cfg.Log.Pretty,
	})

	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create storage directory")
	}

	faceStore, err := asset.NewStore(cfg.Storage.FaceImageDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize face store")
	}
	qrStore, err := asset.NewQRStore(cfg.Storage.QRImageDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize QR store")
	}

	composer := qr.NewComposer(log.Logger)

	var (
		workerRepo repository.WorkerRepository
		handlers   []router.Handler
	)

	registrationHandlerFor := func(repo repository.WorkerRepository, listEnabled bool) *workerHandler.Handler {
		svc := registrationService.NewService(repo, faceStore, qrStore, composer, log.Logger)
		return workerHandler.NewHandler(svc, log.Logger, listEnabled)
	}

	switch cfg.Storage.Backend {
	case "postgres":
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		ctx := context.Background()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}

		doctorRepo := postgres.NewDoctorRepository(db)
		if count, err := doctorRepo.Count(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to check doctor seed")
		} else if count == 0 {
			if err := doctorRepo.Seed(ctx, postgres.ReferenceDoctors()); err != nil {
				log.Fatal().Err(err).Msg("failed to seed doctors")
			}
			log.Info().Msg("seeded reference doctors")
		}

		workerRepo = postgres.NewWorkerRepository(db)
		appointmentRepo := postgres.NewAppointmentRepository(db)
		feedbackRepo := postgres.NewFeedbackRepository(db)

		handlers = append(handlers,
			registrationHandlerFor(workerRepo, true),
			appointmentHandler.NewHandler(appointmentService.NewService(appointmentRepo, workerRepo)),
			feedbackHandler.NewHandler(feedbackService.NewService(feedbackRepo, workerRepo)),
		)
	default:
		workerRepo, err = csvfile.NewWorkerRepository(cfg.Storage.CSVFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize worker file store")
		}
		handlers = append(handlers, registrationHandlerFor(workerRepo, false))
	}

	handlers = append(handlers, qrcodeHandler.NewHandler(composer))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOriginList()

	r := router.NewRouter(handler.NewHandler(), router.Config{
		CORSConfig:    corsConfig,
		RateLimit:     middleware.DefaultRateLimiterConfig(),
		MetricsPrefix: "registry_api",
	}, handlers...)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.Storage.Backend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
