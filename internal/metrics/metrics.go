// internal/metrics/metrics.go

// Package metrics provides the small derived-metric helpers shared by the
// dashboard and reports views. All divisions are zero-guarded; nothing here
// ever returns NaN.
package metrics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.MustParse("es-CL"))

// Percentage returns round(part/total*100), or 0 when total is 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Average returns round(sum/count), or 0 when count is 0.
func Average(sum float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}

// FormatCurrency renders a non-negative amount as a grouped integer with a
// currency sign, es-CL style ("$1.234").
func FormatCurrency(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		rounded = 0
	}
	return currencyPrinter.Sprintf("$%v", number.Decimal(rounded))
}
