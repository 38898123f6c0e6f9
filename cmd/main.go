package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"shop_service/config"
	"shop_service/pkg/db"
	"shop_service/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shop_service",
		Short:        "Customers, products and orders over HTTP",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), migrateCmd())
	return cmd
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap(ctx context.Context) (*config.Config, *logrus.Logger, *sql.DB, error) {
	bootLog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig(bootLog)
	if err != nil {
		bootLog.Errorf("Configuration error: %v", err)
		return nil, nil, nil, err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Infof("Log level set to: %s", log.GetLevel().String())

	database, err := db.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		return nil, nil, nil, err
	}
	log.Infof("Database connection established (driver %s).", cfg.DatabaseDriver)

	return cfg, log, database, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, database, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			return db.Migrate(cmd.Context(), database, log)
		},
	}
}
