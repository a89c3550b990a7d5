package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dashboard/internal/adapters/storage"
	"dashboard/internal/domain/account"
	"dashboard/internal/domain/customer"
	"dashboard/internal/domain/invoice"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminInput carries the bootstrap credentials.
type SeedAdminInput struct {
	Name     string
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	GenerateID   func() string
}

// ExecuteSeedAdmin creates the bootstrap account if no account uses its email.
// It is idempotent: an existing account is left untouched, including its password.
// PRE: Database is migrated
// POST: An account with input.Email exists
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	_, err := deps.AccountStore.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	acct := account.Account{ID: deps.GenerateID(), Name: input.Name, Email: email}
	if err := acct.Validate(); err != nil {
		return fmt.Errorf("admin account: %w", err)
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return fmt.Errorf("admin password: %w", err)
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email)
	return nil
}

// CustomerStoreForSeed defines the store interface needed by SeedDemo.
type CustomerStoreForSeed interface {
	List(ctx context.Context) ([]customer.Customer, error)
	Save(ctx context.Context, c customer.Customer) error
}

// InvoiceStoreForSeed defines the invoice writes needed by SeedDemo.
type InvoiceStoreForSeed interface {
	Insert(ctx context.Context, value invoice.Invoice) error
}

// SeedDemoDeps holds dependencies for SeedDemo.
type SeedDemoDeps struct {
	CustomerStore CustomerStoreForSeed
	InvoiceStore  InvoiceStoreForSeed
	GenerateID    func() string
	Now           func() time.Time
}

type demoInvoice struct {
	customer    int
	amountCents int64
	status      string
	daysAgo     int
}

func demoCustomers() []customer.Customer {
	return []customer.Customer{
		{Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
		{Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
		{Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		{Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
	}
}

func demoInvoices() []demoInvoice {
	return []demoInvoice{
		{customer: 0, amountCents: 15795, status: invoice.StatusPending, daysAgo: 1},
		{customer: 1, amountCents: 20348, status: invoice.StatusPending, daysAgo: 3},
		{customer: 4, amountCents: 3040, status: invoice.StatusPaid, daysAgo: 5},
		{customer: 3, amountCents: 44800, status: invoice.StatusPaid, daysAgo: 8},
		{customer: 5, amountCents: 34577, status: invoice.StatusPending, daysAgo: 13},
		{customer: 2, amountCents: 54246, status: invoice.StatusPending, daysAgo: 21},
		{customer: 0, amountCents: 666, status: invoice.StatusPending, daysAgo: 34},
		{customer: 3, amountCents: 32545, status: invoice.StatusPaid, daysAgo: 55},
		{customer: 4, amountCents: 1250, status: invoice.StatusPaid, daysAgo: 89},
		{customer: 5, amountCents: 8546, status: invoice.StatusPaid, daysAgo: 144},
		{customer: 1, amountCents: 500, status: invoice.StatusPaid, daysAgo: 233},
		{customer: 2, amountCents: 8945, status: invoice.StatusPaid, daysAgo: 377},
	}
}

// ExecuteSeedDemo loads demo customers and invoices into an empty database.
// It is idempotent: nothing is written when any customer already exists.
// PRE: Database is migrated
// POST: Demo customers exist; invoices reference them
func ExecuteSeedDemo(ctx context.Context, deps SeedDemoDeps) error {
	existing, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	customers := demoCustomers()
	for i := range customers {
		customers[i].ID = deps.GenerateID()
		if err := deps.CustomerStore.Save(ctx, customers[i]); err != nil {
			return fmt.Errorf("seed customer %s: %w", customers[i].Name, err)
		}
	}

	now := deps.Now()
	invoices := demoInvoices()
	for _, d := range invoices {
		inv := invoice.Invoice{
			ID:          deps.GenerateID(),
			CustomerID:  customers[d.customer].ID,
			AmountCents: d.amountCents,
			Status:      d.status,
			Date:        invoice.IssueDate(now.AddDate(0, 0, -d.daysAgo)),
		}
		if err := deps.InvoiceStore.Insert(ctx, inv); err != nil {
			return fmt.Errorf("seed invoice: %w", err)
		}
	}

	slog.Info("seed_event", "event", "demo_seeded", "customers", len(customers), "invoices", len(invoices))
	return nil
}
