// Package format renders numbers and dates the way the Brazilian UI shows them.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencyFallback = "R$ 0,00"
	areaFallback     = "0 m²"
	dateLayout       = "02/01/2006"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats v as Brazilian reais, e.g. "R$ 1.234,50"
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return currencyFallback
	}
	return "R$ " + printer.Sprintf("%.2f", v)
}

// Area formats a land area in square metres, e.g. "1.500 m²"
func Area(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return areaFallback
	}
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v)) + " m²"
	}
	return printer.Sprintf("%.2f", v) + " m²"
}

// Date renders the calendar date in dd/mm/yyyy
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// StatusClass maps a project status to the CSS class used for its label
func StatusClass(status string) string {
	switch status {
	case "pending":
		return "status-pending"
	case "approved":
		return "status-approved"
	case "rejected":
		return "status-rejected"
	default:
		return "status-unknown"
	}
}
