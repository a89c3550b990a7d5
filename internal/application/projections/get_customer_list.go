package projections

import (
	"context"
	"fmt"
	"strings"
)

// CustomerRow is one customer as shown in the customer list.
type CustomerRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
}

// CustomerListResult carries the query result.
type CustomerListResult struct {
	Query     string        `json:"query"`
	Customers []CustomerRow `json:"customers"`
}

// CustomerListDeps holds dependencies for QueryCustomerList.
type CustomerListDeps struct {
	CustomerStore CustomerStore
}

// QueryCustomerList returns customers whose name or email contains query, ignoring case.
// PRE: none
// POST: Customers are ordered by name
func QueryCustomerList(ctx context.Context, query string, deps CustomerListDeps) (CustomerListResult, error) {
	customers, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return CustomerListResult{}, fmt.Errorf("list customers: %w", err)
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	rows := make([]CustomerRow, 0, len(customers))
	for _, c := range customers {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			continue
		}
		rows = append(rows, CustomerRow{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL})
	}
	return CustomerListResult{Query: strings.TrimSpace(query), Customers: rows}, nil
}
