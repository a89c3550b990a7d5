package customer

import (
	"context"

	domain "dashboard/internal/domain/customer"
)

// Store persists Customer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Save(ctx context.Context, value domain.Customer) error
}
