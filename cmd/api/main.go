package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/resume-insight/internal/application"
	appanalysis "github.com/bryanwahyu/resume-insight/internal/application/analysis"
	"github.com/bryanwahyu/resume-insight/internal/config"
	"github.com/bryanwahyu/resume-insight/internal/domain/analysis"
	"github.com/bryanwahyu/resume-insight/internal/infra/ai/groq"
	"github.com/bryanwahyu/resume-insight/internal/infra/db/mysql"
	"github.com/bryanwahyu/resume-insight/internal/infra/db/postgres"
	"github.com/bryanwahyu/resume-insight/internal/infra/extract"
	"github.com/bryanwahyu/resume-insight/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/resume-insight/internal/infra/storage"
	"github.com/bryanwahyu/resume-insight/internal/middleware"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	if !cfg.HasGroqKey() {
		log.Warn().Msg("GROQ_API_KEY not set (env/.env/config). AI routes will return an error until configured.")
	} else {
		log.Info().Str("masked", cfg.MaskedGroqKey()).Str("model", cfg.Groq.Model).Msg("groq key loaded")
	}

	ctx := context.Background()
	checkers := map[string]middleware.HealthChecker{}

	// Persistence is optional; without it analyses are only returned to
	// the caller, never stored.
	var repo analysis.Repository
	var db *sql.DB
	if cfg.DatabaseEnabled() {
		switch cfg.Database.Driver {
		case "mysql":
			db, err = mysql.Connect(ctx, cfg.MySQLDSN())
			if err != nil {
				log.Fatal().Err(err).Msg("mysql connect error")
			}
			repo = mysql.NewAnalysisRepository(db)
		case "postgres":
			db, err = postgres.Connect(ctx, cfg.PostgresDSN())
			if err != nil {
				log.Fatal().Err(err).Msg("postgres connect error")
			}
			repo = postgres.NewAnalysisRepository(db)
		default:
			log.Fatal().Str("driver", cfg.Database.Driver).Msg("unsupported database driver")
		}
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	var artifacts analysis.ArtifactStore
	if cfg.MinioEnabled() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("minio init error")
		}
		artifacts = store
	}

	completer := groq.NewClient(
		cfg.Groq.APIKey,
		cfg.Groq.Model,
		cfg.Groq.FallbackModels,
		cfg.Groq.Temperature,
		cfg.Groq.TopP,
		cfg.Groq.MaxRetries,
	)

	svc := &appanalysis.Service{
		Extractor: extract.New(),
		Completer: completer,
		Repo:      repo,
		Artifacts: artifacts,
		Clock:     application.SystemClock{},
		Model:     cfg.Groq.Model,
		Log:       log,
	}

	handler := httpserver.NewRouter(svc, cfg, checkers, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// Completion calls can retry across several models; keep the
		// write window generous.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
