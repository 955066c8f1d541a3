package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/msomdec/newsdesk/internal/config"
	"github.com/msomdec/newsdesk/internal/repository/sqlstore"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Article publishing API",
	Long: `newsdesk serves a JSON API for users, articles, tags and statuses.

Running it without a subcommand starts the HTTP server.

Settings come from defaults, an optional config.yaml, a .env file and the
environment, in increasing order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("newsdesk failed", "error", err)
		os.Exit(1)
	}
}

// initConfig loads settings and installs the process logger.
func initConfig() error {
	// A missing .env file is normal outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)
	return nil
}

func openDB() (*sqlstore.DB, error) {
	db, err := sqlstore.Open(cfg.Database.URL, sqlstore.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	slog.Info("database opened", "dialect", db.Dialect())
	return db, nil
}

func migrateUp(ctx context.Context, db *sqlstore.DB) error {
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")
	return nil
}
