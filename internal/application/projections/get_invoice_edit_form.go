package projections

import (
	"context"
	"fmt"

	domainCustomer "dashboard/internal/domain/customer"
)

// InvoiceFormValues are the editable fields of an invoice.
type InvoiceFormValues struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`
}

// InvoiceEditFormResult carries the query result.
type InvoiceEditFormResult struct {
	Invoice   InvoiceFormValues `json:"invoice"`
	Customers []CustomerOption  `json:"customers"`
}

// CustomerOption is a customer offered in the invoice form.
type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InvoiceEditFormDeps holds dependencies for QueryInvoiceEditForm.
type InvoiceEditFormDeps struct {
	InvoiceStore  InvoiceStore
	CustomerStore CustomerStore
}

// QueryInvoiceEditForm loads an invoice and the customers it may be reassigned to.
// PRE: id is non-empty
// POST: Returns an error wrapping storage.ErrNotFound when the invoice does not exist
func QueryInvoiceEditForm(ctx context.Context, id string, deps InvoiceEditFormDeps) (InvoiceEditFormResult, error) {
	inv, err := deps.InvoiceStore.GetByID(ctx, id)
	if err != nil {
		return InvoiceEditFormResult{}, err
	}
	customers, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return InvoiceEditFormResult{}, fmt.Errorf("list customers: %w", err)
	}
	return InvoiceEditFormResult{
		Invoice: InvoiceFormValues{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Amount:     float64(inv.AmountCents) / 100,
			Status:     inv.Status,
			Date:       inv.Date,
		},
		Customers: customerOptions(customers),
	}, nil
}

// InvoiceCreateFormResult carries the customers offered on a blank invoice form.
type InvoiceCreateFormResult struct {
	Customers []CustomerOption `json:"customers"`
}

// QueryInvoiceCreateForm lists the customers a new invoice may be billed to.
func QueryInvoiceCreateForm(ctx context.Context, deps InvoiceEditFormDeps) (InvoiceCreateFormResult, error) {
	customers, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return InvoiceCreateFormResult{}, fmt.Errorf("list customers: %w", err)
	}
	return InvoiceCreateFormResult{Customers: customerOptions(customers)}, nil
}

func customerOptions(customers []domainCustomer.Customer) []CustomerOption {
	opts := make([]CustomerOption, 0, len(customers))
	for _, c := range customers {
		opts = append(opts, CustomerOption{ID: c.ID, Name: c.Name})
	}
	return opts
}
