// Command ledgerctl inspects and maintains the stored ledger without running the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
	"github.com/SscSPs/finance_dashboard/internal/repositories"
	"github.com/SscSPs/finance_dashboard/internal/repositories/kv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openStore is swapped by tests to share one in-memory store across commands.
var openStore = repositories.OpenStore

// app carries what every subcommand needs once the root pre-run has loaded the config.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect and maintain the finance dashboard ledger",
		Long: `ledgerctl works directly against the configured store (see STORAGE_DRIVER).
It reads the same .env and environment variables as the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	cmd.PersistentFlags().String("storage", "", "storage driver (memory, sqlite, postgres)")
	cmd.PersistentFlags().String("sqlite-path", "", "SQLite database file")
	cmd.PersistentFlags().String("database-url", "", "PostgreSQL connection URL")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("STORAGE_DRIVER", cmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("SQLITE_PATH", cmd.PersistentFlags().Lookup("sqlite-path"))
	_ = viper.BindPFlag("PGSQL_URL", cmd.PersistentFlags().Lookup("database-url"))
	_ = viper.BindPFlag("LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(seedCmd(a))
	cmd.AddCommand(showCmd(a))
	cmd.AddCommand(exportCmd(a))
	cmd.AddCommand(resetCmd(a))
	cmd.AddCommand(migrateCmd(a))
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(a.logger)
	return nil
}

// ledgerSession is an opened store with the repositories and finance service built on it.
type ledgerSession struct {
	repos   portsrepo.RepositoryProvider
	finance *services.FinanceService
	close   func()
}

func (a *app) open(ctx context.Context, seed bool) (*ledgerSession, error) {
	if a.cfg.StorageDriver == config.StorageNone {
		return nil, fmt.Errorf("STORAGE_DRIVER is none: there is no ledger to work on")
	}
	if a.cfg.StorageDriver == config.StorageMemory {
		a.logger.Warn("Memory storage does not outlive this command")
	}

	store, closeStore, err := openStore(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", a.cfg.StorageDriver, err)
	}
	repos := kv.NewRepositoryProvider(store, a.logger)
	finance := services.NewFinanceService(repos.LedgerStateRepo, services.WithSampleData(seed))
	return &ledgerSession{
		repos:   repos,
		finance: finance,
		close: func() {
			finance.Close()
			closeStore()
		},
	}, nil
}

func (a *app) context(cmd *cobra.Command) context.Context {
	return middleware.WithLogger(cmd.Context(), a.logger)
}
