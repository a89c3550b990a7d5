package projections

import (
	"context"
	"fmt"

	"dashboard/internal/domain/access"
	domainInvoice "dashboard/internal/domain/invoice"
)

// LatestInvoiceCount is the number of recent invoices on the overview.
const LatestInvoiceCount = 5

const overviewKey = "overview"

// Cards are the headline figures on the overview.
type Cards struct {
	Collected     string `json:"collected"`
	Pending       string `json:"pending"`
	InvoiceCount  int    `json:"invoiceCount"`
	CustomerCount int    `json:"customerCount"`
}

// DashboardOverviewResult carries the query result.
type DashboardOverviewResult struct {
	Cards      Cards             `json:"cards"`
	Latest     []InvoiceRow      `json:"latestInvoices"`
	Navigation access.Navigation `json:"navigation"`
}

// DashboardOverviewDeps holds dependencies for QueryDashboardOverview.
type DashboardOverviewDeps struct {
	InvoiceStore InvoiceStore
	Cache        ViewCache
	Navigation   access.Navigation
}

// QueryDashboardOverview returns the summary cards and most recent invoices.
// PRE: none
// POST: Totals are derived from the invoices collection and share its invalidation
func QueryDashboardOverview(ctx context.Context, deps DashboardOverviewDeps) (DashboardOverviewResult, error) {
	res, err := readThrough(ctx, deps.Cache, domainInvoice.Collection, overviewKey,
		func(ctx context.Context) (DashboardOverviewResult, error) {
			sum, err := deps.InvoiceStore.Summary(ctx)
			if err != nil {
				return DashboardOverviewResult{}, fmt.Errorf("invoice summary: %w", err)
			}
			latest, err := deps.InvoiceStore.Latest(ctx, LatestInvoiceCount)
			if err != nil {
				return DashboardOverviewResult{}, fmt.Errorf("latest invoices: %w", err)
			}
			rows := make([]InvoiceRow, 0, len(latest))
			for _, item := range latest {
				rows = append(rows, NewInvoiceRow(item))
			}
			return DashboardOverviewResult{
				Cards: Cards{
					Collected:     FormatCurrency(sum.PaidCents),
					Pending:       FormatCurrency(sum.PendingCents),
					InvoiceCount:  sum.InvoiceCount,
					CustomerCount: sum.CustomerCount,
				},
				Latest: rows,
			}, nil
		})
	if err != nil {
		return DashboardOverviewResult{}, err
	}
	res.Navigation = deps.Navigation
	return res, nil
}
