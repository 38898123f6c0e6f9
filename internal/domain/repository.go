package domain

import "context"

// CustomerRepository stores customers. Find returns a *NotFoundError for unknown ids and FindAll
// is ordered lexicographically by id.
//
// Update stores name, address and active state. Reward points are written by Create and
// credited afterwards only through OrderRepository.Place, so concurrent writers cannot lose credits.
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Find(ctx context.Context, id string) (*Customer, error)
	FindAll(ctx context.Context) ([]*Customer, error)
}

// ProductRepository stores products. Find and FindAll behave as on CustomerRepository.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}

// OrderRepository stores orders with their items in insertion order.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// Update replaces the stored items and total with the order's current state.
	Update(ctx context.Context, order *Order) error
	Find(ctx context.Context, id string) (*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)

	// Place stores a new order and adds rewardPoints to its customer in one transaction.
	Place(ctx context.Context, order *Order, rewardPoints int) error
	// AddItem appends one item to a stored order in place, without rewriting the others.
	AddItem(ctx context.Context, orderID string, item OrderItem) error
}
