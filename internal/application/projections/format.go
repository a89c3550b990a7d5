package projections

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dashboard/internal/domain/invoice"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders minor units as US dollars, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	return usd.Sprintf("$%.2f", float64(cents)/100)
}

// FormatDate renders an issue date as "Oct 15, 2026". Unparseable input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(invoice.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
