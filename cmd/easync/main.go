package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/config"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/service"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("easync")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	applyLogLevel(cfg.App.LogLevel, log)

	db, err := store.NewDB(cfg.Storage.DB.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening sync-state database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating sync-state database")
	}

	repos := store.NewRepositories(db, log)
	registry := adapter.NewRegistry(log)
	defer registry.Close()

	// The scheduler and service layer reference each other: the scheduler
	// dispatches into the services, the services request future dispatches.
	var services *service.Services
	scheduler := workers.NewScheduler(
		func(accountID int64) {
			status := services.RunPing(context.Background(), accountID)
			log.Debug().Int64("account_id", accountID).Int("status", int(status)).Msg("ping session ended")
		},
		func(accountID int64, collectionServerID string) {
			services.SyncCollection(context.Background(), accountID, collectionServerID)
		},
		log,
	)
	defer scheduler.Close()

	services = service.NewServices(repos, registry, scheduler, cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, services, repos, log); err != nil {
		log.Fatal().Err(err).Msg("daemon error")
	}
	log.Info().Msg("shutting down")
}

// run seeds one sync pass for every stored account; ping loops take over
// from there through the scheduler.
func run(ctx context.Context, services *service.Services, repos *store.Repositories, log *logger.Logger) error {
	accounts, err := repos.Accounts.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, account := range accounts {
		account := account
		g.Go(func() error {
			if account.SecurityHold {
				log.Warn().Int64("account_id", account.ID).Msg("account on security hold, skipping")
				return nil
			}

			conn := services.Connect(account)
			if err := services.FolderSync.FolderSync(ctx, conn, account); err != nil {
				log.Err(err).Int64("account_id", account.ID).Msg("initial hierarchy sync failed")
				return nil
			}

			collections, err := repos.Collections.ListCollections(ctx, account.ID)
			if err != nil {
				log.Err(err).Int64("account_id", account.ID).Msg("listing collections")
				return nil
			}
			for _, c := range collections {
				if c.SyncEnabled {
					services.SyncCollection(ctx, account.ID, c.ServerID)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func applyLogLevel(level string, log *logger.Logger) {
	if level == "" {
		return
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, keeping default")
		return
	}
	zerolog.SetGlobalLevel(parsed)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
