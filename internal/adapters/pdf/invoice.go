// Package pdf renders printable invoice documents.
package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"dashboard/internal/application/projections"
)

// ContentType is the media type of rendered documents.
const ContentType = "application/pdf"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename names the download for an invoice.
func Filename(id string) string {
	part := unsafeFilename.ReplaceAllString(id, "")
	if len(part) > 36 {
		part = part[:36]
	}
	if part == "" {
		part = "invoice"
	}
	return "INVOICE_" + part + ".pdf"
}

// RenderInvoice lays out a single-page A4 invoice.
// PRE: doc was loaded by projections.QueryInvoiceDocument
// POST: Returns a complete PDF stamped with generatedAt
func RenderInvoice(doc projections.InvoiceDocument, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+doc.ID, true)
	pdf.SetCreator("dashboard", false)
	pdf.SetCreationDate(generatedAt)
	pdf.SetCatalogSort(true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice  : "+tr(doc.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued   : "+doc.DisplayDate)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status   : "+strings.ToUpper(doc.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr(doc.CustomerName))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr(doc.CustomerEmail))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(130, 8, "Invoice "+tr(doc.ID), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, doc.Amount, "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, doc.Amount, "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", doc.ID, err)
	}
	return buf.Bytes(), nil
}
