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

type sqlProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewProductRepository(database *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &sqlProductRepository{
		db:  database,
		log: logger,
	}
}

func (r *sqlProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, price) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, product.ID(), product.Name(), product.Price()); err != nil {
		if db.IsUniqueViolation(err) {
			r.log.Warnf("Product with ID %s already exists", product.ID())
			return fmt.Errorf("product %s: %w", product.ID(), domain.ErrAlreadyExists)
		}
		r.log.Errorf("Failed to insert product %s: %v", product.ID(), err)
		return fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Product created with ID: %s", product.ID())
	return nil
}

func (r *sqlProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $2, price = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, product.ID(), product.Name(), product.Price())
	if err != nil {
		r.log.Errorf("Failed to update product %s: %v", product.ID(), err)
		return fmt.Errorf("could not update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after updating product %s: %v", product.ID(), err)
		return fmt.Errorf("could not confirm product update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to update non-existent product with ID %s", product.ID())
		return domain.NewNotFoundError("Product", product.ID())
	}

	r.log.Infof("Product %s updated successfully", product.ID())
	return nil
}

func (r *sqlProductRepository) Find(ctx context.Context, id string) (*domain.Product, error) {
	var (
		name  string
		price float64
	)
	err := r.db.QueryRowContext(ctx, `SELECT name, price FROM products WHERE id = $1`, id).Scan(&name, &price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %s not found", id)
			return nil, domain.NewNotFoundError("Product", id)
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve product: %w", err)
	}

	return domain.NewProduct(id, name, price), nil
}

func (r *sqlProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM products ORDER BY id`)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		var (
			id, name string
			price    float64
		)
		if err := rows.Scan(&id, &name, &price); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, domain.NewProduct(id, name, price))
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during product rows iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}
