package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money is a monetary amount in currency minor units. Chilean pesos carry no
// fractional digits, so one unit of Money is one peso.
type Money = int64

// Formatter renders amounts as locale-formatted currency strings. It is a
// presentation helper only; all arithmetic stays on raw Money values.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter builds a formatter for the given BCP 47 locale and currency
// code. Unknown locales fall back to es-CL.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse("es-CL")
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = "CLP"
	}
	return &Formatter{printer: message.NewPrinter(tag), currency: cur}
}

// Format renders the amount with locale digit grouping and no fractional
// digits, e.g. 154990 -> "$154.990" under es-CL.
func (f *Formatter) Format(amount Money) string {
	if f == nil || f.printer == nil {
		return NewFormatter("", "").Format(amount)
	}
	return f.printer.Sprintf("$%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// Currency returns the ISO 4217 code the formatter was built with.
func (f *Formatter) Currency() string {
	if f == nil {
		return "CLP"
	}
	return f.currency
}
