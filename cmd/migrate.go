package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waveforge/generator-api/internal/database"
	"github.com/waveforge/generator-api/internal/models"
	"github.com/waveforge/generator-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the Waveforge Generator API.

Migrations use GORM auto-migration: the schema is derived from the
registered models and applied additively.

Available subcommands:
  up      - Apply the schema for all registered models
  status  - Show which model tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema for all registered models",
	Long: `Apply the database schema for every registered model.

Missing tables, columns, and indexes are created. Existing data is
never dropped.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	Long: `Display which model tables currently exist in the database.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registered := models.AllModels()

	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		fmt.Printf("Would migrate %d model(s) against %s\n", len(registered), cfg.Database.Path)
		return nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(registered...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fmt.Printf("Schema applied for %d model(s)\n", len(registered))
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Println("Database Schema Status")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Database: %s\n\n", cfg.Database.Path)

	migrator := db.Migrator()
	for _, model := range models.AllModels() {
		state := "missing"
		if migrator.HasTable(model) {
			state = "present"
		}
		fmt.Printf("  %-30T %s\n", model, state)
	}

	return nil
}
