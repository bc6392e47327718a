package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Mustafa551/Rehab-care-backend/internal/config"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/assignment"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/condition"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/medication"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/nursereport"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/patient"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/staff"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/user"
	"github.com/Mustafa551/Rehab-care-backend/internal/domain/vitals"
	"github.com/Mustafa551/Rehab-care-backend/internal/platform/auth"
	"github.com/Mustafa551/Rehab-care-backend/internal/platform/clock"
	"github.com/Mustafa551/Rehab-care-backend/internal/platform/db"
	"github.com/Mustafa551/Rehab-care-backend/internal/platform/middleware"
)

func main() {
	root := &cobra.Command{
		Use:   "rehabcare-server",
		Short: "Rehab care facility management API",
	}

	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()
			logger.Info().Msg("database pool ready")

			tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

			// Repositories
			staffRepo := staff.NewRepoPG(pool)
			patientRepo := patient.NewRepoPG(pool)
			assignmentRepo := assignment.NewRepoPG(pool)
			medicationRepo := medication.NewRepoPG(pool)
			vitalsRepo := vitals.NewRepoPG(pool)
			reportRepo := nursereport.NewRepoPG(pool)
			conditionRepo := condition.NewRepoPG(pool)
			userRepo := user.NewRepoPG(pool)

			// Services
			staffSvc := staff.NewService(staffRepo)
			patientSvc := patient.NewService(patientRepo, logger)
			assignmentSvc := assignment.NewService(assignmentRepo, staffRepo, patientRepo, clock.System{}, logger)
			medicationSvc := medication.NewService(medicationRepo, logger)
			vitalsSvc := vitals.NewService(vitalsRepo, logger)
			reportSvc := nursereport.NewService(reportRepo, logger)
			conditionSvc := condition.NewService(conditionRepo, logger)
			userSvc := user.NewService(userRepo, tokens, logger)

			// New admissions get same-day coverage from the rotation engine.
			patientSvc.SetAdmissionHook(assignmentSvc)

			e := echo.New()
			e.HideBanner = true
			e.Use(middleware.Recovery(logger))
			e.Use(middleware.RequestID())
			e.Use(middleware.Logger(logger))
			e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
				AllowOrigins: cfg.CORSOrigins,
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			}))

			e.GET("/health", func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			})
			e.GET("/health/db", db.HealthHandler(pool))

			public := e.Group("/api")
			user.NewHandler(userSvc).RegisterPublicRoutes(public)

			api := e.Group("/api")
			if cfg.IsDev() && cfg.JWTSecret == "" {
				logger.Warn().Msg("running without authentication; set JWT_SECRET to enable it")
				api.Use(auth.DevAuthMiddleware())
			} else {
				api.Use(auth.Middleware(tokens))
			}

			staff.NewHandler(staffSvc).RegisterRoutes(api)
			patient.NewHandler(patientSvc).RegisterRoutes(api)
			assignment.NewHandler(assignmentSvc).RegisterRoutes(api)
			medication.NewHandler(medicationSvc).RegisterRoutes(api)
			vitals.NewHandler(vitalsSvc).RegisterRoutes(api)
			nursereport.NewHandler(reportSvc).RegisterRoutes(api)
			condition.NewHandler(conditionSvc).RegisterRoutes(api)
			user.NewHandler(userSvc).RegisterRoutes(api)

			// Graceful shutdown on SIGINT/SIGTERM.
			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
				<-sig
				logger.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("shutdown")
				}
			}()

			logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
			if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "migrations directory")

	withPool := func(run func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
			defer cancel()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			return run(ctx, db.NewMigrator(pool, dir), logger)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: withPool(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			n, err := m.Up(ctx)
			if err != nil {
				return err
			}
			logger.Info().Int("applied", n).Msg("migrations complete")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: withPool(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied " + s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%03d %-40s %s\n", s.Version, s.Name, state)
			}
			return nil
		}),
	})

	return cmd
}
