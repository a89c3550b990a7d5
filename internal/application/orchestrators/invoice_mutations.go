package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dashboard/internal/adapters/storage"
	"dashboard/internal/domain/invoice"
)

// OutcomeKind tags the result of a mutation.
type OutcomeKind int

const (
	// OutcomeRedirect means the write committed and the caller should navigate to RedirectTo.
	OutcomeRedirect OutcomeKind = iota
	// OutcomeInvalid means validation failed and no storage call was made.
	OutcomeInvalid
	// OutcomePersistenceFailure means storage rejected or failed the write.
	OutcomePersistenceFailure
)

// String returns a log-friendly name for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRedirect:
		return "redirect"
	case OutcomeInvalid:
		return "invalid"
	case OutcomePersistenceFailure:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

// Outcome is what a mutation hands back to its caller.
// A redirect is a value, never an error.
type Outcome struct {
	Kind       OutcomeKind
	RedirectTo string
	State      invoice.FormState
}

func redirect() Outcome {
	return Outcome{Kind: OutcomeRedirect, RedirectTo: invoice.ListPath}
}

func invalid(state invoice.FormState) Outcome {
	return Outcome{Kind: OutcomeInvalid, State: state}
}

func persistenceFailure(intent invoice.Intent) Outcome {
	return Outcome{
		Kind:  OutcomePersistenceFailure,
		State: invoice.FormState{Message: fmt.Sprintf("Database Error: Failed to %s Invoice.", intent.Verb())},
	}
}

// InvoiceStoreForMutation defines the store interface needed by the invoice mutations.
type InvoiceStoreForMutation interface {
	Insert(ctx context.Context, value invoice.Invoice) error
	Update(ctx context.Context, id, customerID string, amountCents int64, status string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// ViewInvalidator marks every cached rendering of a collection stale.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, collection string) error
}

// InvoiceMutationDeps holds dependencies for the invoice mutations.
type InvoiceMutationDeps struct {
	InvoiceStore InvoiceStoreForMutation
	Views        ViewInvalidator
	GenerateID   func() string
	Now          func() time.Time
}

// CreateInvoiceInput carries the raw submitted fields for a create.
type CreateInvoiceInput struct {
	Form map[string]string
}

// UpdateInvoiceInput carries the target id and raw submitted fields for an update.
type UpdateInvoiceInput struct {
	ID   string
	Form map[string]string
}

// DeleteInvoiceInput carries the target id for a delete.
type DeleteInvoiceInput struct {
	ID string
}

// ExecuteCreateInvoice validates the form and inserts one invoice.
// PRE: deps.GenerateID and deps.Now are set
// POST: on OutcomeRedirect exactly one row was inserted and the invoices collection invalidated
// INVARIANT: OutcomeInvalid never touches storage
func ExecuteCreateInvoice(ctx context.Context, input CreateInvoiceInput, deps InvoiceMutationDeps) Outcome {
	fields, state, ok := invoice.ValidateForm(input.Form, invoice.IntentCreate)
	if !ok {
		slog.Info("invoice_event", "event", "invoice_rejected", "intent", "create", "fields", len(state.Errors))
		return invalid(state)
	}

	inv := invoice.Invoice{
		ID:          deps.GenerateID(),
		CustomerID:  fields.CustomerID,
		AmountCents: fields.AmountCents(),
		Status:      fields.Status,
		Date:        invoice.IssueDate(deps.Now()),
	}
	if err := deps.InvoiceStore.Insert(ctx, inv); err != nil {
		slog.Error("invoice_event", "event", "invoice_create_failed", "reason", storage.Reason(err), "error", err)
		return persistenceFailure(invoice.IntentCreate)
	}

	slog.Info("invoice_event", "event", "invoice_created", "invoice_id", inv.ID, "amount_cents", inv.AmountCents)
	return committed(ctx, deps.Views)
}

// ExecuteUpdateInvoice validates the form and updates customer, amount and status of one invoice.
// PRE: input.ID names the invoice being edited
// POST: on OutcomeRedirect at most one row changed; the issue date is untouched
// INVARIANT: a missing id is a vacuous success
func ExecuteUpdateInvoice(ctx context.Context, input UpdateInvoiceInput, deps InvoiceMutationDeps) Outcome {
	fields, state, ok := invoice.ValidateForm(input.Form, invoice.IntentUpdate)
	if !ok {
		slog.Info("invoice_event", "event", "invoice_rejected", "intent", "update", "invoice_id", input.ID, "fields", len(state.Errors))
		return invalid(state)
	}

	n, err := deps.InvoiceStore.Update(ctx, input.ID, fields.CustomerID, fields.AmountCents(), fields.Status)
	if err != nil {
		slog.Error("invoice_event", "event", "invoice_update_failed", "invoice_id", input.ID, "reason", storage.Reason(err), "error", err)
		return persistenceFailure(invoice.IntentUpdate)
	}
	if n == 0 {
		slog.Info("invoice_event", "event", "invoice_update_noop", "invoice_id", input.ID)
	} else {
		slog.Info("invoice_event", "event", "invoice_updated", "invoice_id", input.ID)
	}
	return committed(ctx, deps.Views)
}

// ExecuteDeleteInvoice removes one invoice by id.
// POST: on OutcomeRedirect no row with input.ID exists
// INVARIANT: deleting a missing id still invalidates and redirects
func ExecuteDeleteInvoice(ctx context.Context, input DeleteInvoiceInput, deps InvoiceMutationDeps) Outcome {
	n, err := deps.InvoiceStore.Delete(ctx, input.ID)
	if err != nil {
		slog.Error("invoice_event", "event", "invoice_delete_failed", "invoice_id", input.ID, "reason", storage.Reason(err), "error", err)
		return persistenceFailure(invoice.IntentDelete)
	}
	if n == 0 {
		slog.Info("invoice_event", "event", "invoice_delete_noop", "invoice_id", input.ID)
	} else {
		slog.Info("invoice_event", "event", "invoice_deleted", "invoice_id", input.ID)
	}
	return committed(ctx, deps.Views)
}

// committed invalidates the invoices collection and redirects to the listing.
// The write is already durable, so an invalidation failure is logged but does not change the outcome.
// Views cached before the write may then be served until their entry TTL (CACHE_TTL) expires,
// or until the next successful invalidation when the TTL is zero;
// the in-memory cache cannot fail to invalidate.
func committed(ctx context.Context, views ViewInvalidator) Outcome {
	if views != nil {
		if err := views.Invalidate(ctx, invoice.Collection); err != nil {
			slog.Error("invoice_event", "event", "invalidate_failed", "collection", invoice.Collection, "error", err)
		}
	}
	return redirect()
}
