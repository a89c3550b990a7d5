package projections

import (
	"context"
	"fmt"

	domainCustomer "dashboard/internal/domain/customer"
)

// CustomerLookup resolves a single customer.
type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (domainCustomer.Customer, error)
}

// InvoiceDocument is a printable invoice.
type InvoiceDocument struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	AmountCents   int64
	Amount        string
	Status        string
	Date          string
	DisplayDate   string
}

// InvoiceDocumentDeps holds dependencies for QueryInvoiceDocument.
type InvoiceDocumentDeps struct {
	InvoiceStore InvoiceStore
	Customers    CustomerLookup
}

// QueryInvoiceDocument loads an invoice with its billed customer.
// PRE: id is non-empty
// POST: Returns an error wrapping storage.ErrNotFound when the invoice does not exist
func QueryInvoiceDocument(ctx context.Context, id string, deps InvoiceDocumentDeps) (InvoiceDocument, error) {
	inv, err := deps.InvoiceStore.GetByID(ctx, id)
	if err != nil {
		return InvoiceDocument{}, err
	}
	c, err := deps.Customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("customer for invoice %s: %w", id, err)
	}
	return InvoiceDocument{
		ID:            inv.ID,
		CustomerName:  c.Name,
		CustomerEmail: c.Email,
		AmountCents:   inv.AmountCents,
		Amount:        FormatCurrency(inv.AmountCents),
		Status:        inv.Status,
		Date:          inv.Date,
		DisplayDate:   FormatDate(inv.Date),
	}, nil
}
