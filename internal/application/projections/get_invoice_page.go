package projections

import (
	"context"
	"fmt"

	"dashboard/internal/adapters/storage/invoice"
	"dashboard/internal/application/listutil"
	domainInvoice "dashboard/internal/domain/invoice"
)

// InvoiceRow is one invoice as shown in a list.
type InvoiceRow struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customerId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ImageURL    string `json:"imageUrl"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	DisplayDate string `json:"displayDate"`
}

// NewInvoiceRow formats a joined invoice for display.
func NewInvoiceRow(item domainInvoice.ListItem) InvoiceRow {
	return InvoiceRow{
		ID:          item.ID,
		CustomerID:  item.CustomerID,
		Name:        item.CustomerName,
		Email:       item.CustomerEmail,
		ImageURL:    item.ImageURL,
		AmountCents: item.AmountCents,
		Amount:      FormatCurrency(item.AmountCents),
		Status:      item.Status,
		Date:        item.Date,
		DisplayDate: FormatDate(item.Date),
	}
}

// InvoicePageQuery carries query parameters.
type InvoicePageQuery struct {
	listutil.ListParams
}

// InvoicePageResult carries the query result.
type InvoicePageResult struct {
	Query    string            `json:"query"`
	Invoices []InvoiceRow      `json:"invoices"`
	PageInfo listutil.PageInfo `json:"pagination"`
	Pages    []int             `json:"pages"`
}

// InvoicePageDeps holds dependencies for QueryInvoicePage.
type InvoicePageDeps struct {
	InvoiceStore InvoiceStore
	Cache        ViewCache
}

// QueryInvoicePage returns one page of invoices matching the search term.
// PRE: query.Page >= 1
// POST: Result reflects every mutation committed before the last invalidation of the invoices collection
// INVARIANT: At most listutil.ItemsPerPage rows are returned
func QueryInvoicePage(ctx context.Context, query InvoicePageQuery, deps InvoicePageDeps) (InvoicePageResult, error) {
	return readThrough(ctx, deps.Cache, domainInvoice.Collection, query.CacheKey(),
		func(ctx context.Context) (InvoicePageResult, error) {
			return loadInvoicePage(ctx, query.ListParams, deps.InvoiceStore)
		})
}

func loadInvoicePage(ctx context.Context, params listutil.ListParams, store InvoiceStore) (InvoicePageResult, error) {
	total, err := store.Count(ctx, params.Query)
	if err != nil {
		return InvoicePageResult{}, fmt.Errorf("count invoices: %w", err)
	}
	info := listutil.NewPageInfo(params.Page, listutil.ItemsPerPage, total)

	items, err := store.List(ctx, invoice.ListFilter{
		Query:  params.Query,
		Limit:  info.PerPage,
		Offset: info.Offset(),
	})
	if err != nil {
		return InvoicePageResult{}, fmt.Errorf("list invoices: %w", err)
	}

	rows := make([]InvoiceRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, NewInvoiceRow(item))
	}
	return InvoicePageResult{
		Query:    params.Query,
		Invoices: rows,
		PageInfo: info,
		Pages:    info.PageNumbers(),
	}, nil
}
