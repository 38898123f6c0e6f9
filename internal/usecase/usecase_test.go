package usecase_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"shop_service/internal/domain"
	"shop_service/internal/repository"
	"shop_service/internal/usecase"
	"shop_service/pkg/db"
)

type fixture struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	logger    *logrus.Logger
	hook      *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Connect(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	logger, hook := test.NewNullLogger()
	require.NoError(t, db.Migrate(ctx, conn, logger))
	hook.Reset()

	return &fixture{
		customers: repository.NewCustomerRepository(conn, logger),
		products:  repository.NewProductRepository(conn, logger),
		orders:    repository.NewOrderRepository(conn, logger),
		logger:    logger,
		hook:      hook,
	}
}

func (f *fixture) customerUseCase() usecase.CustomerUseCase {
	return usecase.NewCustomerUseCase(f.customers, f.logger)
}

func (f *fixture) productUseCase() usecase.ProductUseCase {
	return usecase.NewProductUseCase(f.products, f.logger)
}

func (f *fixture) orderUseCase() usecase.OrderUseCase {
	return usecase.NewOrderUseCase(f.orders, f.customers, f.products, f.logger)
}

// eventEntries returns the logged domain events in order.
func (f *fixture) eventEntries() []string {
	var names []string
	for _, e := range f.hook.AllEntries() {
		if name, ok := e.Data["event"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}
