package projections

import (
	"context"

	"dashboard/internal/adapters/storage/invoice"
	domainCustomer "dashboard/internal/domain/customer"
	domainInvoice "dashboard/internal/domain/invoice"
)

// InvoiceStore interface for invoice queries.
type InvoiceStore interface {
	GetByID(ctx context.Context, id string) (domainInvoice.Invoice, error)
	List(ctx context.Context, filter invoice.ListFilter) ([]domainInvoice.ListItem, error)
	Count(ctx context.Context, query string) (int, error)
	Latest(ctx context.Context, limit int) ([]domainInvoice.ListItem, error)
	Summary(ctx context.Context) (domainInvoice.Summary, error)
}

// CustomerStore interface for customer queries.
type CustomerStore interface {
	List(ctx context.Context) ([]domainCustomer.Customer, error)
}

// ViewCache holds rendered views keyed by collection.
// Put must drop the value when collection was invalidated after gen was returned by Get.
type ViewCache interface {
	Get(ctx context.Context, collection, key string) (value []byte, gen int64, ok bool, err error)
	Put(ctx context.Context, collection, key string, gen int64, value []byte) error
}
