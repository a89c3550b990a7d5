package invoice

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Status values. No other values are permitted.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Collection is the cache key for every rendering of the invoice list.
const Collection = "invoices"

// ListPath is the canonical listing location redirected to after a mutation.
const ListPath = "/dashboard/invoices"

// DateLayout is the calendar-date format used for the issue date.
const DateLayout = "2006-01-02"

// MaxAmount caps submitted amounts so the cents value always fits in an int64.
const MaxAmount = 1_000_000_000

// Intent is the requested mutation kind.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// Verb returns the capitalised action name used in user-facing messages.
func (i Intent) Verb() string {
	switch i {
	case IntentCreate:
		return "Create"
	case IntentUpdate:
		return "Update"
	case IntentDelete:
		return "Delete"
	}
	return "Save"
}

// Domain errors
var (
	ErrEmptyID          = errors.New("invoice id cannot be empty")
	ErrEmptyCustomer    = errors.New("invoice customer cannot be empty")
	ErrNonPositive      = errors.New("invoice amount must be greater than zero")
	ErrInvalidStatus    = errors.New("status must be 'pending' or 'paid'")
	ErrInvalidIssueDate = errors.New("invoice date must be YYYY-MM-DD")
)

// Invoice holds state for the concept.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      string
	Date        string
}

// Validate checks the stored-form invariants.
// PRE: Invoice struct is populated
// POST: Returns nil if valid, error otherwise
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(inv.CustomerID) == "" {
		return ErrEmptyCustomer
	}
	if inv.AmountCents <= 0 {
		return ErrNonPositive
	}
	if !IsValidStatus(inv.Status) {
		return ErrInvalidStatus
	}
	if _, err := time.Parse(DateLayout, inv.Date); err != nil {
		return ErrInvalidIssueDate
	}
	return nil
}

// IsPaid reports whether the invoice has been settled.
func (inv *Invoice) IsPaid() bool {
	return inv.Status == StatusPaid
}

// ListItem is an invoice joined with its customer for the list view.
type ListItem struct {
	Invoice
	CustomerName  string
	CustomerEmail string
	ImageURL      string
}

// Summary aggregates invoice totals for the dashboard cards.
type Summary struct {
	InvoiceCount  int
	CustomerCount int
	PaidCents     int64
	PendingCents  int64
}

// IsValidStatus reports whether s is one of the allowed status literals.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusPaid
}

// ToCents converts a decimal amount to minor units, rounding half to even.
// PRE: amount is finite and within [0, MaxAmount]
func ToCents(amount float64) int64 {
	return int64(math.RoundToEven(amount * 100))
}

// IssueDate formats the calendar date an invoice is issued on.
func IssueDate(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
