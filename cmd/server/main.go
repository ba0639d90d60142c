package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-bootstrap/internal/app"
	"github.com/MKhiriev/go-bootstrap/internal/config"
	"github.com/MKhiriev/go-bootstrap/internal/controller"
	"github.com/MKhiriev/go-bootstrap/internal/database"
	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/router"
	"github.com/MKhiriev/go-bootstrap/internal/store"
	"github.com/MKhiriev/go-bootstrap/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-bootstrap").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(cfg.App.Name)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	running, err := newBuilder(cfg, build, log).Start(ctx, cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
	log.Info().Int("port", running.Port()).Msg("server is listening")

	select {
	case <-running.Ready():
		if err = running.Err(); err != nil {
			log.Error().Err(err).Msg("startup failed, no routes are published")
		} else {
			log.Info().Int("routes", len(running.Routes())).Msg("server is ready")
		}
	case <-ctx.Done():
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err = running.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// newBuilder turns the configuration into an application builder: the
// configured databases, the system controller and the middleware settings.
func newBuilder(cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) *app.Builder {
	databases, info := newDatabases(cfg.Storage, log)

	var guard middleware.Middleware
	if cfg.App.TokenSignKey != "" {
		guard = middleware.RequireBearerToken(cfg.App.TokenSignKey, cfg.App.TokenIssuer)
	}

	module := app.Module{
		Databases: databases,
		Routes: []router.Group{{
			MountPath:   "/",
			Controllers: []*router.Controller{controller.SystemController(build, info, guard)},
			OnError:     controller.MapErrors,
		}},
	}

	parserOpts := middleware.ParserOptions{
		Limit:          cfg.Middleware.BodyLimit,
		ParameterLimit: cfg.Middleware.ParameterLimit,
	}

	b := app.New(module, log).
		SetProductionMode(cfg.App.ProductionMode).
		SetBodyParser(middleware.BodyParsers{
			JSON:       middleware.JSONParser(parserOpts),
			URLEncoded: middleware.URLEncodedParser(parserOpts),
		}).
		SetCors(middleware.DefaultCORS(cfg.Middleware.CORSAllowedOrigins)).
		SetHealthAddress(cfg.Server.GRPCAddress)

	if cfg.Middleware.GZip {
		b.InstallPlugins(middleware.GZip)
	}

	return b
}

// newDatabases builds the database modules whose DSN is configured. The
// app_info store of the first migrated module is returned for the system
// controller.
func newDatabases(cfg config.Storage, log *logger.Logger) ([]database.Module, controller.InfoStore) {
	var (
		modules []database.Module
		info    controller.InfoStore
	)

	if cfg.Postgres.DSN != "" {
		pg := store.NewPostgres("postgres", cfg.Postgres, nil, log)
		modules = append(modules, pg)
		if cfg.Postgres.RunMigrations {
			info = pg.AppInfo()
		}
	}

	if cfg.SQLite.DSN != "" {
		lite := store.NewSQLite("sqlite", cfg.SQLite, nil, log)
		modules = append(modules, lite)
		if info == nil && cfg.SQLite.RunMigrations {
			info = lite.AppInfo()
		}
	}

	return modules, info
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
