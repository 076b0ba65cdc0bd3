package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/config"
	httpapi "github.com/tbourn/go-advent-calendar/internal/http"
	"github.com/tbourn/go-advent-calendar/internal/observability"
	"github.com/tbourn/go-advent-calendar/internal/repo"
	"github.com/tbourn/go-advent-calendar/internal/sysutil"
)

const shutdownTimeout = 10 * time.Second

// bootstrap loads configuration, installs the global logger, and opens the
// fact store.
func bootstrap() (config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}
	logger := sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)

	logger.Info().
		Str("port", cfg.Port).
		Str("db_driver", cfg.DB.Driver).
		Str("window", cfg.Calendar.Window().String()).
		Str("time_zone", cfg.Calendar.TimeZone).
		Str("log_level", cfg.LogLevel).
		Bool("dev_header_auth", cfg.Auth.DevHeader).
		Msg("configuration loaded")
	if cfg.Auth.DevHeader {
		logger.Warn().Msg("X-User-ID header authentication is enabled; do not use in production")
	}

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, logger, db, nil
}

func closeDB(db *gorm.DB, logger zerolog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn().Err(err).Msg("close database")
	}
}

func migrate(_ context.Context, _ *cli.Command) error {
	_, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info().Msg("schema up to date")
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	if !cmd.Bool("skip-migrate") {
		if err := repo.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, observability.ServiceInfo{
		Version:  sysutil.Version(version),
		Window:   cfg.Calendar.Window().String(),
		TimeZone: cfg.Calendar.TimeZone,
		DBDriver: cfg.DB.Driver,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	if err := httpapi.RegisterRoutes(r, db, cfg); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http server shutdown")
		}
		if err := shutdownOTel(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
