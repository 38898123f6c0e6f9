package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_service/internal/domain"
	"shop_service/internal/repository"
)

func newCustomer(t *testing.T, id, name string) *domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(id, name, domain.WithEventHandler(domain.NopEventHandler{}))
	require.NoError(t, err)
	return c
}

func TestCustomerRepositoryCreate(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)
	ctx := context.Background()

	customer := newCustomer(t, "123", "Customer 1")
	customer.ChangeAddress(domain.NewAddress("Street 1", 1, "Zipcode 1", "City 1"))
	require.NoError(t, repo.Create(ctx, customer))

	found, err := repo.Find(ctx, "123")
	require.NoError(t, err)

	assert.Equal(t, "123", found.ID())
	assert.Equal(t, "Customer 1", found.Name())
	assert.False(t, found.IsActive())
	assert.Zero(t, found.RewardPoints())
	address, ok := found.Address()
	require.True(t, ok)
	assert.Equal(t, domain.NewAddress("Street 1", 1, "Zipcode 1", "City 1"), address)
}

func TestCustomerRepositoryCreateWithoutAddress(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newCustomer(t, "1", "Customer 1")))

	found, err := repo.Find(ctx, "1")
	require.NoError(t, err)
	_, ok := found.Address()
	assert.False(t, ok)
}

func TestCustomerRepositoryCreateDuplicate(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newCustomer(t, "1", "Customer 1")))
	err := repo.Create(ctx, newCustomer(t, "1", "Customer 2"))
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
}

func TestCustomerRepositoryUpdate(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)
	ctx := context.Background()

	customer := newCustomer(t, "123", "Customer 1")
	customer.ChangeAddress(domain.NewAddress("Street 1", 1, "Zipcode 1", "City 1"))
	require.NoError(t, repo.Create(ctx, customer))

	require.NoError(t, customer.ChangeName("Customer 2"))
	require.NoError(t, customer.Activate())
	require.NoError(t, customer.AddRewardPoints(10))
	require.NoError(t, repo.Update(ctx, customer))

	found, err := repo.Find(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "Customer 2", found.Name())
	assert.True(t, found.IsActive())
	assert.Zero(t, found.RewardPoints(), "points are only credited by placing an order")
}

func TestCustomerRepositoryUpdateUnknown(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)

	err := repo.Update(context.Background(), newCustomer(t, "404", "Ghost"))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "404", nf.ID)
	assert.EqualError(t, err, "Customer not found")
}

func TestCustomerRepositoryFindUnknown(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)

	_, err := repo.Find(context.Background(), "456ABC")

	assert.EqualError(t, err, "Customer not found")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCustomerRepositoryFindAll(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)
	ctx := context.Background()

	customers, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	customer2 := newCustomer(t, "456", "Customer 2")
	customer2.ChangeAddress(domain.NewAddress("Street 2", 2, "Zipcode 2", "City 2"))
	require.NoError(t, customer2.AddRewardPoints(20))
	require.NoError(t, repo.Create(ctx, customer2))

	customer1 := newCustomer(t, "123", "Customer 1")
	customer1.ChangeAddress(domain.NewAddress("Street 1", 1, "Zipcode 1", "City 1"))
	require.NoError(t, customer1.Activate())
	require.NoError(t, customer1.AddRewardPoints(10))
	require.NoError(t, repo.Create(ctx, customer1))

	customers, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, "123", customers[0].ID())
	assert.True(t, customers[0].IsActive())
	assert.Equal(t, 10, customers[0].RewardPoints())
	assert.Equal(t, "456", customers[1].ID())
	assert.False(t, customers[1].IsActive())
	assert.Equal(t, 20, customers[1].RewardPoints())
}

func TestCustomerRepositoryFindAllOrdersIDsAsText(t *testing.T) {
	conn, logger := setupTestDB(t)
	repo := repository.NewCustomerRepository(conn, logger)
	ctx := context.Background()

	for _, id := range []string{"2", "10", "b", "A"} {
		require.NoError(t, repo.Create(ctx, newCustomer(t, id, "Customer "+id)))
	}

	customers, err := repo.FindAll(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"10", "2", "A", "b"}, ids)
}
