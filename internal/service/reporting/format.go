package reporting

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Turkish)

// FormatAmount renders a lira amount with Turkish digit grouping, e.g. 1.234,50 ₺.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f ₺", v)
}

// FormatLiters renders a milk volume, e.g. 1.250,5 L.
func FormatLiters(v float64) string {
	return printer.Sprintf("%.1f L", v)
}
