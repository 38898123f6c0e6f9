package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"shop_service/internal/delivery"
	"shop_service/internal/repository"
	"shop_service/internal/usecase"
	"shop_service/pkg/db"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var skipMigrations bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, database, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if !skipMigrations {
				if err := db.Migrate(ctx, database, log); err != nil {
					return err
				}
			}

			customerRepo := repository.NewCustomerRepository(database, log)
			productRepo := repository.NewProductRepository(database, log)
			orderRepo := repository.NewOrderRepository(database, log)
			log.Info("Repositories initialized.")

			customerUseCase := usecase.NewCustomerUseCase(customerRepo, log)
			productUseCase := usecase.NewProductUseCase(productRepo, log)
			orderUseCase := usecase.NewOrderUseCase(orderRepo, customerRepo, productRepo, log)
			log.Info("Use cases initialized.")

			if log.GetLevel() < logrus.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}
			router := delivery.NewRouter(log,
				delivery.NewCustomerHandler(customerUseCase, log),
				delivery.NewProductHandler(productUseCase, log),
				delivery.NewOrderHandler(orderUseCase, log),
			)
			log.Info("Routes registered.")

			srv := &http.Server{
				Addr:              cfg.HTTPPort,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Infof("Starting server on port %s", cfg.HTTPPort)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("Failed to start server on port %s: %v", cfg.HTTPPort, err)
					return err
				}
				return nil
			case <-ctx.Done():
				log.Info("Shutdown signal received, draining connections...")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Errorf("Graceful shutdown failed: %v", err)
				return err
			}
			log.Info("Server stopped.")
			return nil
		},
	}

	c.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying pending schema migrations")
	return c
}
