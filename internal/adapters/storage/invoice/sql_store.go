package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dashboard/internal/adapters/storage"
	domain "dashboard/internal/domain/invoice"
)

const listColumns = `invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date,
	customers.name, customers.email, customers.image_url`

const searchClause = `LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ?
	OR CAST(invoices.amount AS TEXT) LIKE ? OR invoices.date LIKE ? OR invoices.status LIKE ?`

// SQLStore implements Store over database/sql (SQLite or Postgres).
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new invoice Store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Insert adds a new invoice row.
// PRE: value has been validated
// POST: Row exists, or an error is returned and nothing was written
func (s *SQLStore) Insert(ctx context.Context, value domain.Invoice) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)",
		value.ID, value.CustomerID, value.AmountCents, value.Status, value.Date,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update overwrites customer, amount and status; the date is left unchanged.
// PRE: id is non-empty, amountCents > 0
// POST: Returns the number of rows affected (0 when id does not exist)
func (s *SQLStore) Update(ctx context.Context, id, customerID string, amountCents int64, status string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?",
		customerID, amountCents, status, id,
	)
	if err != nil {
		return 0, fmt.Errorf("update invoice: %w", err)
	}
	return rowsAffected(res), nil
}

// Delete removes an invoice row.
// PRE: id is non-empty
// POST: Returns the number of rows affected (0 when id does not exist)
func (s *SQLStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete invoice: %w", err)
	}
	return rowsAffected(res), nil
}

// GetByID retrieves an Invoice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	var inv domain.Invoice
	err := s.db.QueryRowContext(ctx,
		"SELECT id, customer_id, amount, status, date FROM invoices WHERE id = ?", id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &inv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Invoice{}, fmt.Errorf("invoice %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List returns invoices matching filter, newest first.
// PRE: filter.Limit > 0
// POST: Returns at most filter.Limit items
func (s *SQLStore) List(ctx context.Context, filter ListFilter) ([]domain.ListItem, error) {
	query := "SELECT " + listColumns + " FROM invoices JOIN customers ON invoices.customer_id = customers.id"
	args := searchArgs(filter.Query)
	if len(args) > 0 {
		query += " WHERE " + searchClause
	}
	query += " ORDER BY invoices.date DESC, invoices.id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Count returns how many invoices match the search query.
func (s *SQLStore) Count(ctx context.Context, query string) (int, error) {
	q := "SELECT COUNT(*) FROM invoices JOIN customers ON invoices.customer_id = customers.id"
	args := searchArgs(query)
	if len(args) > 0 {
		q += " WHERE " + searchClause
	}
	var n int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// Latest returns the most recent invoices for the dashboard.
func (s *SQLStore) Latest(ctx context.Context, limit int) ([]domain.ListItem, error) {
	return s.List(ctx, ListFilter{Limit: limit})
}

// Summary totals invoices by status.
func (s *SQLStore) Summary(ctx context.Context) (domain.Summary, error) {
	var sum domain.Summary
	err := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		CAST(COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS BIGINT),
		CAST(COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS BIGINT)
		FROM invoices`,
	).Scan(&sum.InvoiceCount, &sum.PaidCents, &sum.PendingCents)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summarise invoices: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&sum.CustomerCount); err != nil {
		return domain.Summary{}, fmt.Errorf("count customers: %w", err)
	}
	return sum, nil
}

func searchArgs(query string) []any {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	like := "%" + query + "%"
	return []any{like, like, like, like, like}
}

func scanItems(rows *sql.Rows) ([]domain.ListItem, error) {
	var items []domain.ListItem
	for rows.Next() {
		var it domain.ListItem
		if err := rows.Scan(
			&it.ID,
			&it.CustomerID,
			&it.AmountCents,
			&it.Status,
			&it.Date,
			&it.CustomerName,
			&it.CustomerEmail,
			&it.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// rowsAffected treats drivers that cannot report a count as zero rows.
func rowsAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
