package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted price.
const CurrencySymbol = "R$"

// NotAvailable is shown in place of absent attributes.
const NotAvailable = "N/A"

var currencyLocale = language.BrazilianPortuguese

// FormatCurrency renders v with period thousands separators and a comma
// before two decimals, e.g. "R$ 1.234,56". Values that are not finite fall
// back to their plain rendering.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return CurrencySymbol + " " + strconv.FormatFloat(v, 'f', -1, 64)
	}
	p := message.NewPrinter(currencyLocale)
	return CurrencySymbol + " " + p.Sprintf("%.2f", v)
}

// FormatOptionalCurrency renders an optional value, using NotAvailable for nil.
func FormatOptionalCurrency(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatCurrency(*v)
}

// ParseCurrency reverses FormatCurrency, ignoring the symbol and the
// thousands separators.
func ParseCurrency(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), CurrencySymbol))
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse currency %q: %w", s, err)
	}
	return v, nil
}
