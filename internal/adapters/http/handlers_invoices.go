package web

import (
	"errors"
	"net/http"
	"strconv"

	"dashboard/internal/adapters/pdf"
	"dashboard/internal/adapters/storage"
	"dashboard/internal/application/listutil"
	"dashboard/internal/application/orchestrators"
	"dashboard/internal/application/projections"
)

func (s *Server) mutationDeps() orchestrators.InvoiceMutationDeps {
	return orchestrators.InvoiceMutationDeps{
		InvoiceStore: s.stores.InvoiceStore,
		Views:        s.opts.Views,
		GenerateID:   s.generateID,
		Now:          s.now,
	}
}

// writeOutcome maps a mutation outcome onto the response.
func writeOutcome(w http.ResponseWriter, r *http.Request, out orchestrators.Outcome) {
	switch out.Kind {
	case orchestrators.OutcomeRedirect:
		http.Redirect(w, r, out.RedirectTo, http.StatusSeeOther)
	case orchestrators.OutcomeInvalid:
		writeJSON(w, http.StatusUnprocessableEntity, out.State)
	default:
		writeJSON(w, http.StatusInternalServerError, out.State)
	}
}

// handleInvoiceList handles GET /dashboard/invoices
func (s *Server) handleInvoiceList(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryInvoicePage(r.Context(),
		projections.InvoicePageQuery{ListParams: listutil.ParseListParams(r.URL.Query())},
		projections.InvoicePageDeps{InvoiceStore: s.stores.InvoiceStore, Cache: s.opts.Views},
	)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleInvoiceCreateForm handles GET /dashboard/invoices/create
func (s *Server) handleInvoiceCreateForm(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryInvoiceCreateForm(r.Context(), projections.InvoiceEditFormDeps{CustomerStore: s.stores.CustomerStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleInvoiceEditForm handles GET /dashboard/invoices/{id}/edit
func (s *Server) handleInvoiceEditForm(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryInvoiceEditForm(r.Context(), r.PathValue("id"), projections.InvoiceEditFormDeps{
		InvoiceStore:  s.stores.InvoiceStore,
		CustomerStore: s.stores.CustomerStore,
	})
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, message("Invoice not found."))
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleInvoicePDF handles GET /dashboard/invoices/{id}/pdf
func (s *Server) handleInvoicePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := projections.QueryInvoiceDocument(r.Context(), r.PathValue("id"), projections.InvoiceDocumentDeps{
		InvoiceStore: s.stores.InvoiceStore,
		Customers:    s.stores.CustomerStore,
	})
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, message("Invoice not found."))
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	body, err := pdf.RenderInvoice(doc, s.now())
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", pdf.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(doc.ID)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "private, no-store")
	_, _ = w.Write(body)
}

// handleCreateInvoice handles POST /dashboard/invoices
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, message("Invalid form submission."))
		return
	}
	out := orchestrators.ExecuteCreateInvoice(r.Context(), orchestrators.CreateInvoiceInput{Form: form}, s.mutationDeps())
	writeOutcome(w, r, out)
}

// handleUpdateInvoice handles POST /dashboard/invoices/{id}
func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, message("Invalid form submission."))
		return
	}
	out := orchestrators.ExecuteUpdateInvoice(r.Context(), orchestrators.UpdateInvoiceInput{
		ID:   r.PathValue("id"),
		Form: form,
	}, s.mutationDeps())
	writeOutcome(w, r, out)
}

// handleDeleteInvoice handles POST /dashboard/invoices/{id}/delete
func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	out := orchestrators.ExecuteDeleteInvoice(r.Context(), orchestrators.DeleteInvoiceInput{ID: r.PathValue("id")}, s.mutationDeps())
	writeOutcome(w, r, out)
}
