// Package app provides application-level wiring and dependency injection
// for the dashboard.
package app

import (
	"log/slog"
	"net/http"

	"lakewatch/internal/api"
	"lakewatch/internal/catalog"
	"lakewatch/internal/config"
	"lakewatch/internal/engine"
	"lakewatch/internal/service/lake"
	"lakewatch/internal/service/query"
)

// Deps holds the external dependencies that main() must provide: config,
// the AWS service clients, and the logger.
type Deps struct {
	Cfg          *config.Config
	Athena       engine.AthenaAPI
	Glue         lake.GlueAPI
	SecurityLake lake.SecurityLakeAPI
	Logger       *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Query *query.QueryService
	Lake  *lake.LakeService
}

// App holds the fully-wired application.
type App struct {
	Services Services
	Catalog  *catalog.Catalog
	Handler  *api.Handler
	Router   http.Handler
}

// New wires catalog, engine, services, handler, and router from the
// provided deps.
func New(deps Deps) *App {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cat := catalog.New(catalog.Params{
		Database: cfg.Database,
		Region:   cfg.Region,
	})

	eng := engine.New(deps.Athena, engine.Options{
		Database:       cfg.Database,
		OutputLocation: cfg.OutputLocation(),
		Workgroup:      cfg.Workgroup,
		PollInterval:   cfg.PollInterval,
		MaxWait:        cfg.MaxWait,
		Logger:         logger,
	})

	queries := query.NewQueryService(cat, eng, logger)
	lakeSvc := lake.NewLakeService(deps.SecurityLake, deps.Glue, cfg.Region, cfg.Database, logger)

	handler := api.NewHandler(queries, lakeSvc, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		Logger:             logger,
	})

	return &App{
		Services: Services{Query: queries, Lake: lakeSvc},
		Catalog:  cat,
		Handler:  handler,
		Router:   router,
	}
}
