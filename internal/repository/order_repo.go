package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"shop_service/internal/domain"
	"shop_service/pkg/db"
)

type sqlOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewOrderRepository(database *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &sqlOrderRepository{
		db:  database,
		log: logger,
	}
}

func (r *sqlOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return withTx(ctx, r.db, r.log, func(tx *sql.Tx) error {
		return r.insertOrder(ctx, tx, order)
	})
}

// Place credits the customer first. On Postgres the UPDATE holds the customer row lock until
// commit, so concurrent placements for one customer are applied one after the other.
func (r *sqlOrderRepository) Place(ctx context.Context, order *domain.Order, rewardPoints int) error {
	return withTx(ctx, r.db, r.log, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE customers SET reward_points = reward_points + $2 WHERE id = $1`,
			order.CustomerID(), rewardPoints,
		)
		if err != nil {
			r.log.Errorf("Failed to credit %d points to customer %s: %v", rewardPoints, order.CustomerID(), err)
			return fmt.Errorf("could not credit reward points: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not confirm reward points credit: %w", err)
		}
		if rowsAffected == 0 {
			r.log.Warnf("Attempted to place order %s for non-existent customer %s", order.ID(), order.CustomerID())
			return domain.NewNotFoundError("Customer", order.CustomerID())
		}

		if err := r.insertOrder(ctx, tx, order); err != nil {
			return err
		}
		r.log.Infof("Order %s placed, %d points credited to customer %s", order.ID(), rewardPoints, order.CustomerID())
		return nil
	})
}

func (r *sqlOrderRepository) insertOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, total) VALUES ($1, $2, $3)`,
		order.ID(), order.CustomerID(), order.Total(),
	)
	if err != nil {
		r.log.Errorf("Failed to insert order %s for customer %s: %v", order.ID(), order.CustomerID(), err)
		return r.classify(order.ID(), err, "could not create order entry")
	}
	r.log.Infof("Order entry created with ID: %s for customer: %s", order.ID(), order.CustomerID())

	if err := r.insertItems(ctx, tx, order.ID(), 0, order.Items()); err != nil {
		return err
	}

	r.log.Infof("Order %s created successfully with %d items.", order.ID(), len(order.Items()))
	return nil
}

// AddItem bumps the stored total first. On Postgres that UPDATE locks the order row, so the
// position read that follows cannot interleave with another append to the same order.
func (r *sqlOrderRepository) AddItem(ctx context.Context, orderID string, item domain.OrderItem) error {
	return withTx(ctx, r.db, r.log, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE orders SET total = total + $2 WHERE id = $1`,
			orderID, item.Subtotal(),
		)
		if err != nil {
			r.log.Errorf("Failed to update total of order %s: %v", orderID, err)
			return fmt.Errorf("could not update order total: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not confirm order total update: %w", err)
		}
		if rowsAffected == 0 {
			r.log.Warnf("Attempted to add item to non-existent order with ID %s", orderID)
			return domain.NewNotFoundError("Order", orderID)
		}

		var next int
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM order_items WHERE order_id = $1`, orderID,
		).Scan(&next)
		if err != nil {
			r.log.Errorf("Failed to read next item position of order %s: %v", orderID, err)
			return fmt.Errorf("could not read item position: %w", err)
		}

		if err := r.insertItems(ctx, tx, orderID, next, []domain.OrderItem{item}); err != nil {
			return err
		}
		r.log.Infof("Item %s appended to order %s at position %d", item.ID(), orderID, next)
		return nil
	})
}

// Update rewrites the order header and replaces its whole item list.
func (r *sqlOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return withTx(ctx, r.db, r.log, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE orders SET customer_id = $2, total = $3 WHERE id = $1`,
			order.ID(), order.CustomerID(), order.Total(),
		)
		if err != nil {
			r.log.Errorf("Failed to update order %s: %v", order.ID(), err)
			return r.classify(order.ID(), err, "could not update order")
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not confirm order update: %w", err)
		}
		if rowsAffected == 0 {
			r.log.Warnf("Attempted to update non-existent order with ID %s", order.ID())
			return domain.NewNotFoundError("Order", order.ID())
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID()); err != nil {
			r.log.Errorf("Failed to delete items of order %s: %v", order.ID(), err)
			return fmt.Errorf("could not replace order items: %w", err)
		}

		if err := r.insertItems(ctx, tx, order.ID(), 0, order.Items()); err != nil {
			return err
		}

		r.log.Infof("Order %s updated successfully with %d items.", order.ID(), len(order.Items()))
		return nil
	})
}

// insertItems stores items at consecutive positions starting at first.
func (r *sqlOrderRepository) insertItems(ctx context.Context, tx *sql.Tx, orderID string, first int, items []domain.OrderItem) error {
	itemQuery := `
        INSERT INTO order_items (id, order_id, product_id, name, price, quantity, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	stmt, err := tx.PrepareContext(ctx, itemQuery)
	if err != nil {
		r.log.Errorf("Failed to prepare order item statement: %v", err)
		return fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.ID(), orderID, item.ProductID(), item.Name(), item.Price(), item.Quantity(), first+i,
		)
		if err != nil {
			r.log.Errorf("Failed to insert order item %s (product_id: %s) for order %s: %v", item.ID(), item.ProductID(), orderID, err)
			return r.classify(item.ID(), err, fmt.Sprintf("could not create order item %s", item.ID()))
		}
		r.log.Debugf("Order item %s inserted for order %s, product %s", item.ID(), orderID, item.ProductID())
	}
	return nil
}

// classify maps constraint failures to domain errors. id names the order or item being written.
func (r *sqlOrderRepository) classify(id string, err error, msg string) error {
	switch {
	case db.IsUniqueViolation(err):
		return fmt.Errorf("order %s: %w", id, domain.ErrAlreadyExists)
	case db.IsForeignKeyViolation(err):
		return domain.NewValidationError("Order references an unknown customer or product")
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func (r *sqlOrderRepository) Find(ctx context.Context, id string) (*domain.Order, error) {
	var customerID string
	err := r.db.QueryRowContext(ctx, `SELECT customer_id FROM orders WHERE id = $1`, id).Scan(&customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %s not found", id)
			return nil, domain.NewNotFoundError("Order", id)
		}
		r.log.Errorf("Failed to get order by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	items, err := r.queryItems(ctx, `
        SELECT order_id, id, product_id, name, price, quantity
        FROM order_items
        WHERE order_id = $1
        ORDER BY position
    `, id)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(id, customerID, items[id])
	if err != nil {
		r.log.Errorf("Stored order %s is invalid: %v", id, err)
		return nil, fmt.Errorf("stored order %s is invalid: %w", id, err)
	}

	r.log.Debugf("Order %s retrieved with %d items.", id, len(items[id]))
	return order, nil
}

func (r *sqlOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	type header struct {
		id, customerID string
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id FROM orders ORDER BY id`)
	if err != nil {
		r.log.Errorf("Failed to list orders: %v", err)
		return nil, fmt.Errorf("could not list orders: %w", err)
	}
	var headers []header
	for rows.Next() {
		var h header
		if err := rows.Scan(&h.id, &h.customerID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		headers = append(headers, h)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	items, err := r.queryItems(ctx, `
        SELECT order_id, id, product_id, name, price, quantity
        FROM order_items
        ORDER BY order_id, position
    `)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(headers))
	for _, h := range headers {
		order, err := domain.NewOrder(h.id, h.customerID, items[h.id])
		if err != nil {
			r.log.Errorf("Stored order %s is invalid: %v", h.id, err)
			return nil, fmt.Errorf("stored order %s is invalid: %w", h.id, err)
		}
		orders = append(orders, order)
	}

	r.log.Debugf("Retrieved %d orders", len(orders))
	return orders, nil
}

// queryItems groups item rows by order id, keeping the row order within each group.
func (r *sqlOrderRepository) queryItems(ctx context.Context, query string, args ...any) (map[string][]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Failed to query order items: %v", err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var (
			orderID, id, productID, name string
			price                        float64
			quantity                     int
		)
		if err := rows.Scan(&orderID, &id, &productID, &name, &price, &quantity); err != nil {
			r.log.Errorf("Failed to scan order item row: %v", err)
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items[orderID] = append(items[orderID], domain.NewOrderItem(id, name, price, productID, quantity))
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during order items iteration: %v", err)
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}
