package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staymarket/internal/adapters/observability"
	"staymarket/internal/adapters/provider"
	redisad "staymarket/internal/adapters/redis"
	"staymarket/internal/app"
	"staymarket/internal/reconcile"
	"staymarket/internal/shared"
	mysqlrepo "staymarket/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.Serve()

	log.Info().
		Str("base", cfg.ProviderBase).
		Int("workers", cfg.SyncWorkers).
		Int("customers", len(cfg.CustomerIDs)).
		Msg("syncer starting")

	if len(cfg.CustomerIDs) == 0 {
		log.Fatal().Msg("CUSTOMER_IDS is empty, nothing to sync")
	}

	maps, err := reconcile.LoadMaps()
	if err != nil {
		log.Fatal().Err(err).Msg("mapping tables failed to load")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client, err := provider.New(cfg.ProviderBase, cfg.ProviderToken, cfg.ProviderVersion, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider client")
	}

	syncSvc := app.NewSyncService(client, repo, cache, maps, cfg.SyncWorkers)

	// One customer at a time per slot; the service fans out per listing
	// on its own, so keep this pool small.
	sem := semaphore.NewWeighted(2)
	var wg sync.WaitGroup

	for _, id := range cfg.CustomerIDs {
		id := id

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(customerID string) {
			defer wg.Done()
			defer sem.Release(1)

			objs, err := syncSvc.SyncCustomer(ctx, customerID)
			if err != nil {
				log.Warn().Str("customer_id", customerID).Err(err).Msg("sync failed")
				return
			}
			log.Info().Str("customer_id", customerID).Int("listings", len(objs)).Msg("sync ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("sync completed")
}
