package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vitals/internal/adapter/memory"
	"vitals/internal/adapter/postgres"
	"vitals/internal/app"
	"vitals/internal/config"
	"vitals/internal/domain"
	"vitals/internal/insight"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "vitals",
	Short:         "Health metrics aggregation and insights",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = cfg.NewLogger(os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, dashboardCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore connects to PostgreSQL when DATABASE_URL is set and falls back to
// an empty in-memory store otherwise. The returned close func is never nil.
func openStore() (domain.RecordStore, func() error, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		return memory.New(), func() error { return nil }, nil
	}
	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	return db, db.Close, nil
}

type services struct {
	dashboard *app.DashboardService
	charts    *app.ChartsService
	records   *app.RecordService
}

func newServices(store domain.RecordStore) (*services, error) {
	policy, err := cfg.WindowPolicy()
	if err != nil {
		return nil, err
	}
	engine := insight.Default(cfg.File.Insights)
	ds := app.NewDashboardService(store, engine, app.DashboardConfig{
		Windows:          policy,
		FetchConcurrency: cfg.File.FetchConcurrency,
		Logger:           logger,
	})
	return &services{
		dashboard: ds,
		charts:    app.NewChartsService(ds),
		records:   app.NewRecordService(store, policy.Location),
	}, nil
}
