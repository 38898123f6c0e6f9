package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_service/internal/domain"
)

type recordingHandler struct {
	events []domain.Event
}

func (r *recordingHandler) Handle(e domain.Event) {
	r.events = append(r.events, e)
}

func newTestCustomer(t *testing.T, id, name string) (*domain.Customer, *recordingHandler) {
	t.Helper()
	rec := &recordingHandler{}
	c, err := domain.NewCustomer(id, name, domain.WithEventHandler(rec))
	require.NoError(t, err)
	return c, rec
}

func TestNewCustomerValidation(t *testing.T) {
	cases := []struct {
		name     string
		id       string
		custName string
		wantMsg  string
	}{
		{"empty id", "", "John", "Id is required"},
		{"empty name", "123", "", "Name is required"},
		{"both empty reports name first", "", "", "Name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingHandler{}
			c, err := domain.NewCustomer(tc.id, tc.custName, domain.WithEventHandler(rec))

			require.Error(t, err)
			assert.Nil(t, c)
			assert.EqualError(t, err, tc.wantMsg)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Empty(t, rec.events, "no event for a rejected customer")
		})
	}
}

func TestNewCustomerKeepsFieldsAndEmitsCreated(t *testing.T) {
	c, rec := newTestCustomer(t, "123", "John")

	assert.Equal(t, "123", c.ID())
	assert.Equal(t, "John", c.Name())
	assert.False(t, c.IsActive())
	assert.Zero(t, c.RewardPoints())
	_, ok := c.Address()
	assert.False(t, ok)

	require.Len(t, rec.events, 1)
	created, ok := rec.events[0].(domain.CustomerCreated)
	require.True(t, ok)
	assert.Equal(t, domain.EventCustomerCreated, created.EventName())
	assert.Same(t, c, created.Customer)
	assert.False(t, created.OccurredAt().IsZero())
}

func TestChangeName(t *testing.T) {
	c, _ := newTestCustomer(t, "123", "John")

	require.NoError(t, c.ChangeName("Jane"))
	assert.Equal(t, "Jane", c.Name())

	err := c.ChangeName("")
	assert.EqualError(t, err, "Name is required")
	assert.Equal(t, "Jane", c.Name())
}

func TestChangeAddressEmitsEvent(t *testing.T) {
	c, rec := newTestCustomer(t, "1", "Customer 1")
	address := domain.NewAddress("Street 1", 123, "12345-123", "City")

	c.ChangeAddress(address)

	got, ok := c.Address()
	require.True(t, ok)
	assert.Equal(t, address, got)

	require.Len(t, rec.events, 2)
	updated, ok := rec.events[1].(domain.CustomerAddressUpdated)
	require.True(t, ok)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "Customer 1", updated.Name)
	assert.Equal(t, address, updated.Address)

	second := domain.NewAddress("Street 2", 2, "54321-000", "Town")
	c.ChangeAddress(second)
	got, _ = c.Address()
	assert.Equal(t, second, got)
	assert.Len(t, rec.events, 3)
}

func TestActivate(t *testing.T) {
	t.Run("without address", func(t *testing.T) {
		c, _ := newTestCustomer(t, "1", "Customer 1")

		err := c.Activate()

		assert.EqualError(t, err, "Address is mandatory to activate a customer")
		assert.True(t, errors.Is(err, domain.ErrPrecondition))
		var pe *domain.PreconditionError
		assert.True(t, errors.As(err, &pe))
		assert.False(t, c.IsActive())
	})

	t.Run("with address", func(t *testing.T) {
		c, _ := newTestCustomer(t, "1", "Customer 1")
		c.ChangeAddress(domain.NewAddress("Street 1", 123, "12345-123", "City"))

		require.NoError(t, c.Activate())
		assert.True(t, c.IsActive())

		require.NoError(t, c.Activate(), "activating twice is a no-op")
		assert.True(t, c.IsActive())
	})
}

func TestDeactivate(t *testing.T) {
	c, _ := newTestCustomer(t, "1", "Customer 1")

	c.Deactivate()
	assert.False(t, c.IsActive())
	c.Deactivate()
	assert.False(t, c.IsActive())

	c.ChangeAddress(domain.NewAddress("Street 1", 123, "12345-123", "City"))
	require.NoError(t, c.Activate())
	c.Deactivate()
	assert.False(t, c.IsActive())
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}

func TestAddRewardPoints(t *testing.T) {
	c, _ := newTestCustomer(t, "1", "Customer 1")
	assert.Equal(t, 0, c.RewardPoints())

	require.NoError(t, c.AddRewardPoints(10))
	assert.Equal(t, 10, c.RewardPoints())

	require.NoError(t, c.AddRewardPoints(10))
	assert.Equal(t, 20, c.RewardPoints())

	require.NoError(t, c.AddRewardPoints(0))
	assert.Equal(t, 20, c.RewardPoints())

	err := c.AddRewardPoints(-5)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 20, c.RewardPoints())
}

func TestRestoreCustomer(t *testing.T) {
	address := domain.NewAddress("Street 1", 1, "12345-123", "City")

	t.Run("rebuilds state without events", func(t *testing.T) {
		rec := &recordingHandler{}
		c, err := domain.RestoreCustomer("123", "Customer 1", &address, true, 10, domain.WithEventHandler(rec))
		require.NoError(t, err)

		assert.Equal(t, "123", c.ID())
		assert.True(t, c.IsActive())
		assert.Equal(t, 10, c.RewardPoints())
		got, ok := c.Address()
		require.True(t, ok)
		assert.Equal(t, address, got)
		assert.Empty(t, rec.events)
	})

	t.Run("active without address", func(t *testing.T) {
		_, err := domain.RestoreCustomer("123", "Customer 1", nil, true, 0)
		assert.True(t, errors.Is(err, domain.ErrPrecondition))
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := domain.RestoreCustomer("123", "", &address, false, 0)
		assert.EqualError(t, err, "Name is required")
	})
}
