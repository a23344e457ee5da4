package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/SscSPs/finance_dashboard/pkg/database"
	"github.com/spf13/cobra"
)

func seedCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty ledger with sample data",
		Long: `Seed writes the sample accounts, transactions and goals when nothing is stored yet.
Use --force to discard an existing ledger first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.context(cmd)
			ls, err := a.open(ctx, true)
			if err != nil {
				return err
			}
			defer ls.close()

			if _, exists := ls.repos.LedgerStateRepo.Load(ctx); exists && !force {
				fmt.Fprintln(cmd.OutOrStdout(), "A ledger is already stored. Nothing to seed (use --force to replace it).")
				return nil
			}

			ls.repos.LedgerStateRepo.Clear(ctx)
			if err := ls.finance.Initialize(ctx); err != nil {
				return fmt.Errorf("failed to seed ledger: %w", err)
			}
			state := ls.finance.State(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d accounts, %d transactions and %d goals. Total balance %s.\n",
				len(state.Accounts), len(state.Transactions), len(state.Goals), utils.FormatMoney(state.TotalBalance))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing ledger")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the dashboard summary of the stored ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.context(cmd)
			ls, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer ls.close()

			if _, exists := ls.repos.LedgerStateRepo.Load(ctx); !exists {
				fmt.Fprintln(cmd.OutOrStdout(), "No ledger stored.")
				return nil
			}
			if err := ls.finance.Initialize(ctx); err != nil {
				return err
			}

			reporting := services.NewReportingService(ls.finance)
			summary := reporting.Summary(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total balance:   %s\n", utils.FormatMoney(summary.TotalBalance))
			fmt.Fprintf(out, "Total income:    %s (%d transactions)\n", utils.FormatMoney(summary.TotalIncome), summary.IncomingCount)
			fmt.Fprintf(out, "Total expenses:  %s (%d transactions)\n", utils.FormatMoney(summary.TotalExpenses), summary.OutgoingCount)
			fmt.Fprintf(out, "Net change:      %s (%s%%)\n", utils.FormatMoney(summary.NetChange), summary.NetChangePercentage.String())
			fmt.Fprintf(out, "Accounts:        %d (%d savings or investment)\n", summary.AccountsCount, summary.SavingsAccountsCount)
			fmt.Fprintf(out, "Goals:           %d\n", summary.GoalsCount)

			for _, c := range reporting.CategoryBreakdown(ctx, 5) {
				fmt.Fprintf(out, "  %-16s %12s  %s%%\n", c.Category, utils.FormatMoney(c.Amount), c.Percentage.String())
			}
			return nil
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the stored ledger as JSON to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.context(cmd)
			ls, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer ls.close()

			state, exists := ls.repos.LedgerStateRepo.Load(ctx)
			if !exists {
				return fmt.Errorf("no ledger stored")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(state)
		},
	}
}

func resetCmd(a *app) *cobra.Command {
	var reseed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove the stored ledger",
		Long:  `Reset deletes the stored ledger. Users and the session are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.context(cmd)
			ls, err := a.open(ctx, reseed)
			if err != nil {
				return err
			}
			defer ls.close()

			if !reseed {
				ls.repos.LedgerStateRepo.Clear(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Ledger removed.")
				return nil
			}
			if _, err := ls.finance.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset ledger: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ledger reset to sample data.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reseed, "reseed", false, "write the sample data after removing the ledger")
	return cmd
}

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations for the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				applied bool
				err     error
			)
			switch a.cfg.StorageDriver {
			case config.StorageSQLite:
				db, openErr := database.NewSQLiteDB(a.cfg.SQLitePath)
				if openErr != nil {
					return openErr
				}
				defer db.Close()
				applied, err = database.RunMigrations(db, database.DialectSQLite, a.logger)
			case config.StoragePostgres:
				db, openErr := database.OpenMigrationDB(a.cfg.DatabaseURL)
				if openErr != nil {
					return openErr
				}
				defer db.Close()
				applied, err = database.RunMigrations(db, database.DialectPostgres, a.logger)
			default:
				a.logger.Info("Storage driver has no schema", slog.String("driver", string(a.cfg.StorageDriver)))
				return nil
			}
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			}
			return nil
		},
	}
}
