package main

import (
	"context"
	"fmt"
	"os"

	"github.com/htw-hub/questboard-api/internal/config"
	"github.com/htw-hub/questboard-api/internal/database"
	"github.com/htw-hub/questboard-api/internal/repository"
	"github.com/htw-hub/questboard-api/internal/seed"
	"github.com/htw-hub/questboard-api/internal/services"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "questctl",
		Short:   "questctl - maintenance commands for the quest board database",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			return connect()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect() error {
	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		return err
	}
	return database.Migrate()
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// connect already migrated
			fmt.Println("Schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the Honolulu Tech Week demo board",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := seed.Run(context.Background(), database.GetDB())
			if err != nil {
				return err
			}
			if summary.Skipped {
				fmt.Println("Database already seeded")
				return nil
			}
			fmt.Printf("Seeded %d users, %d organizations, %d tasks (%d completed)\n",
				summary.Users, summary.Organizations, summary.Tasks, summary.Completions)
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Rewrite cached user XP from the completion ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.GetDB()
			ledger := services.NewLedgerService(repository.NewUserRepository(db), repository.NewHistoryRepository(db))

			corrections, err := ledger.ReconcileXP(context.Background())
			if err != nil {
				return err
			}
			if len(corrections) == 0 {
				fmt.Println("Cached XP matches the ledger")
				return nil
			}
			for _, c := range corrections {
				fmt.Printf("%s: %d -> %d\n", c.UserID, c.Cached, c.Recorded)
			}
			return nil
		},
	}

	return cmd
}
