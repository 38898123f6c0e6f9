package domain

import (
	"math"
	"time"
)

type Customer struct {
	id           string
	name         string
	address      *Address
	active       bool
	rewardPoints int

	events EventHandler
}

type CustomerOption func(*Customer)

// WithEventHandler replaces the default logging handler.
func WithEventHandler(h EventHandler) CustomerOption {
	return func(c *Customer) {
		if h != nil {
			c.events = h
		}
	}
}

// NewCustomer validates the customer and emits CustomerCreated before returning.
func NewCustomer(id, name string, opts ...CustomerOption) (*Customer, error) {
	c := newCustomer(id, name, opts)
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.events.Handle(CustomerCreated{Customer: c, At: time.Now()})
	return c, nil
}

// RestoreCustomer rebuilds a stored customer from its flat fields. No event is emitted.
func RestoreCustomer(id, name string, address *Address, active bool, rewardPoints int, opts ...CustomerOption) (*Customer, error) {
	c := newCustomer(id, name, opts)
	if err := c.validate(); err != nil {
		return nil, err
	}
	if address != nil {
		a := *address
		c.address = &a
	}
	if active && c.address == nil {
		return nil, NewPreconditionError("Address is mandatory to activate a customer")
	}
	if rewardPoints < 0 {
		return nil, NewValidationError("Reward points must not be negative")
	}
	c.active = active
	c.rewardPoints = rewardPoints
	return c, nil
}

func newCustomer(id, name string, opts []CustomerOption) *Customer {
	c := &Customer{
		id:     id,
		name:   name,
		events: NewLogEventHandler(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Customer) ID() string        { return c.id }
func (c *Customer) Name() string      { return c.name }
func (c *Customer) IsActive() bool    { return c.active }
func (c *Customer) RewardPoints() int { return c.rewardPoints }

// Address reports the current address and whether one was ever assigned.
func (c *Customer) Address() (Address, bool) {
	if c.address == nil {
		return Address{}, false
	}
	return *c.address, true
}

// ChangeName keeps the old name if the new one is invalid.
func (c *Customer) ChangeName(name string) error {
	prev := c.name
	c.name = name
	if err := c.validate(); err != nil {
		c.name = prev
		return err
	}
	return nil
}

func (c *Customer) ChangeAddress(address Address) {
	c.address = &address
	c.events.Handle(CustomerAddressUpdated{
		ID:      c.id,
		Name:    c.name,
		Address: address,
		At:      time.Now(),
	})
}

func (c *Customer) Activate() error {
	if c.address == nil {
		return NewPreconditionError("Address is mandatory to activate a customer")
	}
	c.active = true
	return nil
}

func (c *Customer) Deactivate() {
	c.active = false
}

func (c *Customer) AddRewardPoints(points int) error {
	if points < 0 {
		return NewValidationError("Reward points must not be negative")
	}
	if points > math.MaxInt-c.rewardPoints {
		c.rewardPoints = math.MaxInt
		return nil
	}
	c.rewardPoints += points
	return nil
}

// name is checked first.
func (c *Customer) validate() error {
	if len(c.name) == 0 {
		return NewValidationError("Name is required")
	}
	if len(c.id) == 0 {
		return NewValidationError("Id is required")
	}
	return nil
}
