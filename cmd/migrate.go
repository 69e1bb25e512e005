package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/models"
	"github.com/authorityshow/editor-api/internal/services/credits"
	"github.com/authorityshow/editor-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the Podcast Editor API.

Available subcommands:
  up      - Apply the schema for all models
  status  - Show which tables exist
  grant   - Grant credits to a user account`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema for all models",
	Long: `Create or update the tables backing credit accounts, edit records,
and pipeline runs. Safe to run repeatedly.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows which tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

// migrateGrantCmd seeds a user's credit balance
var migrateGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant credits to a user account",
	Long: `Add credits to a user's balance, creating the account if it does
not exist yet. The amount defaults to the configured initial grant.

Example:
  editor-api migrate grant --user alice
  editor-api migrate grant --user alice --amount 500`,
	RunE: runMigrateGrant,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateGrantCmd)

	migrateGrantCmd.Flags().String("user", "", "user ID to credit")
	migrateGrantCmd.Flags().Int64("amount", 0, "credits to grant (0 = configured initial grant)")
	_ = migrateGrantCmd.MarkFlagRequired("user")
}

// migratedModels lists every model the schema covers
func migratedModels() []any {
	return []any{
		&models.CreditAccount{},
		&models.EditRecord{},
		&models.PipelineRun{},
	}
}

func openDatabase() (*database.DB, *config.Config, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, cfg, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(migratedModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fmt.Printf("Schema applied to %s\n", cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Database Migration Status")
	fmt.Println(repeatString("=", 50))
	fmt.Printf("Database: %s\n\n", cfg.Database.Path)

	for _, model := range migratedModels() {
		name := fmt.Sprintf("%T", model)
		if db.Migrator().HasTable(model) {
			fmt.Printf("  [ok]      %s\n", name)
		} else {
			fmt.Printf("  [missing] %s\n", name)
		}
	}

	return nil
}

func runMigrateGrant(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	amount, _ := cmd.Flags().GetInt64("amount")

	db, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.CreditAccount{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if amount <= 0 {
		amount = cfg.Credits.InitialGrant
	}

	ledger := credits.NewService(credits.NewRepository(db))
	if err := ledger.Grant(context.Background(), userID, amount); err != nil {
		return fmt.Errorf("failed to grant credits: %w", err)
	}

	balance, err := ledger.Balance(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}

	fmt.Printf("Granted %d credits to %s (balance: %d)\n", amount, userID, balance)
	return nil
}

// repeatString repeats a string n times
func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
