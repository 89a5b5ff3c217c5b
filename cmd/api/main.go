package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "staymarket/internal/adapters/http_server"
	"staymarket/internal/adapters/observability"
	"staymarket/internal/adapters/provider"
	redisad "staymarket/internal/adapters/redis"
	"staymarket/internal/app"
	"staymarket/internal/reconcile"
	"staymarket/internal/shared"
	mysqlrepo "staymarket/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	maps, err := reconcile.LoadMaps()
	if err != nil {
		log.Fatal().Err(err).Msg("mapping tables failed to load")
	}

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client, err := provider.New(cfg.ProviderBase, cfg.ProviderToken, cfg.ProviderVersion, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider client")
	}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	syncSvc := app.NewSyncService(client, repo, cache, maps, cfg.SyncWorkers)
	customers := app.NewCustomerService(client, maps)
	bookings := app.NewBookingService(client, maps)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Sync: syncSvc, Customers: customers, Bookings: bookings})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
