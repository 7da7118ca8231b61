package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/naval-battle/api"
	"github.com/saeidalz13/naval-battle/db"
	"github.com/saeidalz13/naval-battle/db/sqlc"
	"github.com/saeidalz13/naval-battle/internal/config"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
	mc "github.com/saeidalz13/naval-battle/models/connection"
	"github.com/saeidalz13/naval-battle/persistence"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = time.Second * 10

func main() {
	// .env has to be in the environment before the flags read their
	// EnvVars sources
	if err := config.LoadEnvFile(os.Getenv("STAGE"), config.DefaultEnvFile); err != nil {
		log.Fatalln(err)
	}

	cmd := &cli.Command{
		Name:  "naval-battle",
		Usage: "serve a single human vs machine naval battle over websocket",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "stage", Value: config.StageDev, Usage: "dev or prod", Sources: cli.EnvVars("STAGE")},
			&cli.StringFlag{Name: "port", Value: config.DefaultPort, Usage: "http port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "database-url", Usage: "postgres url; snapshots and results go to files when empty", Sources: cli.EnvVars("DATABASE_URL")},
			&cli.StringFlag{Name: "migration-dir", Value: db.DefaultMigrationDir, Usage: "migration source url", Sources: cli.EnvVars("MIGRATION_DIR")},
			&cli.StringFlag{Name: "snapshot-slot", Value: persistence.DefaultSnapshotSlot, Usage: "snapshot row key", Sources: cli.EnvVars("SNAPSHOT_SLOT")},
			&cli.StringFlag{Name: "snapshot-path", Value: persistence.DefaultSnapshotPath, Usage: "snapshot file", Sources: cli.EnvVars("SNAPSHOT_PATH")},
			&cli.StringFlag{Name: "results-path", Value: persistence.DefaultResultsPath, Usage: "result log file", Sources: cli.EnvVars("RESULTS_PATH")},
			&cli.BoolFlag{Name: "no-touching", Usage: "forbid ships touching each other, diagonals included", Sources: cli.EnvVars("NO_TOUCHING")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Config{
				Stage:        cmd.String("stage"),
				Port:         cmd.String("port"),
				DatabaseUrl:  cmd.String("database-url"),
				MigrationDir: cmd.String("migration-dir"),
				SnapshotSlot: cmd.String("snapshot-slot"),
				SnapshotPath: cmd.String("snapshot-path"),
				ResultsPath:  cmd.String("results-path"),
				NoTouching:   cmd.Bool("no-touching"),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(ctx, cfg)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store     mb.SnapshotStore
		notifier  mb.ResultNotifier
		dbManager *sqlc.DbManager
	)

	if cfg.UsesDatabase() {
		psqlDb := db.MustConnectToDb(cfg.DatabaseUrl, cfg.MigrationDir)
		defer psqlDb.Close()

		queries := sqlc.New(psqlDb)
		dbManager = sqlc.NewDbManager(queries)
		store = persistence.NewPgSnapshotStore(queries, cfg.SnapshotSlot)
		notifier = persistence.NewPgResultLog(queries, api.ServerIpNet())
		log.Println("persisting to postgres, slot:", cfg.SnapshotSlot)
	} else {
		store = persistence.NewFileSnapshotStore(cfg.SnapshotPath)
		notifier = persistence.NewFileResultLog(cfg.ResultsPath)
		log.Println("persisting to files:", cfg.SnapshotPath, cfg.ResultsPath)
	}

	gameManager := mb.NewBattleshipGameManager(
		store,
		mb.WithResultNotifier(notifier),
		mb.WithPlacementRules(mb.PlacementRules{NoTouching: cfg.NoTouching}),
	)

	sessionManager := mc.NewBattleshipSessionManager()
	go sessionManager.CleanupPeriodically(ctx)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", api.NewRequestProcessor(sessionManager, gameManager, dbManager))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Println("shutdown:", err)
		}
	}()

	log.Printf("[%s] listening to %s\n", cfg.Stage, cfg.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
