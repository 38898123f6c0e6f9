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

type sqlCustomerRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewCustomerRepository(database *sql.DB, logger *logrus.Logger) domain.CustomerRepository {
	return &sqlCustomerRepository{
		db:  database,
		log: logger,
	}
}

// addressColumns flattens an optional address into nullable column values.
func addressColumns(c *domain.Customer) (street, number, zip, city any) {
	a, ok := c.Address()
	if !ok {
		return nil, nil, nil, nil
	}
	return a.Street, a.Number, a.Zip, a.City
}

func (r *sqlCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	street, number, zip, city := addressColumns(customer)
	query := `
        INSERT INTO customers (id, name, street, number, zipcode, city, active, reward_points)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.ExecContext(ctx, query,
		customer.ID(), customer.Name(), street, number, zip, city,
		customer.IsActive(), customer.RewardPoints(),
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			r.log.Warnf("Customer with ID %s already exists", customer.ID())
			return fmt.Errorf("customer %s: %w", customer.ID(), domain.ErrAlreadyExists)
		}
		r.log.Errorf("Failed to insert customer %s: %v", customer.ID(), err)
		return fmt.Errorf("could not create customer: %w", err)
	}

	r.log.Infof("Customer created with ID: %s", customer.ID())
	return nil
}

// Update leaves reward_points alone; see domain.CustomerRepository.
func (r *sqlCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	street, number, zip, city := addressColumns(customer)
	query := `
        UPDATE customers
        SET name = $2, street = $3, number = $4, zipcode = $5, city = $6, active = $7
        WHERE id = $1
    `
	result, err := r.db.ExecContext(ctx, query,
		customer.ID(), customer.Name(), street, number, zip, city, customer.IsActive(),
	)
	if err != nil {
		r.log.Errorf("Failed to update customer %s: %v", customer.ID(), err)
		return fmt.Errorf("could not update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after updating customer %s: %v", customer.ID(), err)
		return fmt.Errorf("could not confirm customer update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to update non-existent customer with ID %s", customer.ID())
		return domain.NewNotFoundError("Customer", customer.ID())
	}

	r.log.Infof("Customer %s updated successfully", customer.ID())
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *sqlCustomerRepository) scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		id, name          string
		street, zip, city sql.NullString
		number            sql.NullInt64
		active            bool
		rewardPoints      int
	)
	if err := row.Scan(&id, &name, &street, &number, &zip, &city, &active, &rewardPoints); err != nil {
		return nil, err
	}

	var address *domain.Address
	if street.Valid {
		a := domain.NewAddress(street.String, int(number.Int64), zip.String, city.String)
		address = &a
	}

	c, err := domain.RestoreCustomer(id, name, address, active, rewardPoints,
		domain.WithEventHandler(domain.NewLogEventHandler(r.log)))
	if err != nil {
		return nil, fmt.Errorf("stored customer %s is invalid: %w", id, err)
	}
	return c, nil
}

func (r *sqlCustomerRepository) Find(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
        SELECT id, name, street, number, zipcode, city, active, reward_points
        FROM customers
        WHERE id = $1
    `
	customer, err := r.scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Customer with ID %s not found", id)
			return nil, domain.NewNotFoundError("Customer", id)
		}
		r.log.Errorf("Failed to get customer by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve customer: %w", err)
	}

	r.log.Debugf("Customer %s retrieved", id)
	return customer, nil
}

func (r *sqlCustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	query := `
        SELECT id, name, street, number, zipcode, city, active, reward_points
        FROM customers
        ORDER BY id
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list customers: %v", err)
		return nil, fmt.Errorf("could not list customers: %w", err)
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			r.log.Errorf("Failed to scan customer row: %v", err)
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during customer rows iteration: %v", err)
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	r.log.Debugf("Retrieved %d customers", len(customers))
	return customers, nil
}
