package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dashboard/internal/adapters/storage"
	domain "dashboard/internal/domain/customer"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new customer Store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// GetByID retrieves a Customer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, image_url FROM customers WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List returns all customers ordered by name.
func (s *SQLStore) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, image_url FROM customers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Save inserts or updates a Customer.
// PRE: value has been validated
// POST: Entity is persisted
func (s *SQLStore) Save(ctx context.Context, value domain.Customer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, image_url = excluded.image_url`,
		value.ID, value.Name, value.Email, value.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}
