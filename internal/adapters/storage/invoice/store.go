package invoice

import (
	"context"

	domain "dashboard/internal/domain/invoice"
)

// Store persists Invoice state.
// Each write is a single statement, so a failed call leaves no partial write.
type Store interface {
	Insert(ctx context.Context, value domain.Invoice) error
	Update(ctx context.Context, id, customerID string, amountCents int64, status string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	GetByID(ctx context.Context, id string) (domain.Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]domain.ListItem, error)
	Count(ctx context.Context, query string) (int, error)
	Latest(ctx context.Context, limit int) ([]domain.ListItem, error)
	Summary(ctx context.Context) (domain.Summary, error)
}

// ListFilter carries search and paging parameters for List.
type ListFilter struct {
	Query  string // matches customer name/email, amount, date or status
	Limit  int
	Offset int
}
