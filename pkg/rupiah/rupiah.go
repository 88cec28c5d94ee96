package rupiah

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Format renders an IDR amount in minor units as a display label with
// Indonesian digit grouping, e.g. Format(16000) == "Rp 16.000".
func Format(amount int64) string {
	return printer.Sprintf("Rp %d", amount)
}
