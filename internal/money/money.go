// Package money provides fixed-rate currency conversion and locale-aware
// amount formatting for the supported display currencies.
//
// Rates are static market-snapshot constants pivoted on the euro; they are
// never fetched live. Conversion applies no rounding: amounts are rounded
// only at the formatting boundary.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Code identifies a supported display currency. The set is closed: an
// unknown code is a programming error, not a runtime condition.
type Code string

const (
	EUR Code = "EUR"
	USD Code = "USD"
	XOF Code = "XOF"
)

// rates holds units of each currency per one euro (the pivot).
var rates = map[Code]float64{
	EUR: 1,
	USD: 1.0876,
	XOF: 655.957, // fixed CFA franc peg
}

type currencyInfo struct {
	symbol   string
	decimals int
}

var currencies = map[Code]currencyInfo{
	EUR: {symbol: "€", decimals: 2},
	USD: {symbol: "$", decimals: 2},
	XOF: {symbol: "F CFA", decimals: 0}, // CFA amounts are quoted without decimals
}

// Amounts are rendered in the French locale, matching the product language.
var printer = message.NewPrinter(language.French)

// Supported reports whether code names a supported currency and returns it typed.
func Supported(code string) (Code, bool) {
	c := Code(code)
	_, ok := currencies[c]
	return c, ok
}

// Codes returns the supported currency codes in display order.
func Codes() []Code {
	return []Code{EUR, USD, XOF}
}

// Convert converts amount between two supported currencies through the euro
// pivot. Same-currency conversion returns amount unchanged, exactly.
func Convert(amount float64, from, to Code) float64 {
	if from == to {
		return amount
	}
	pivot := amount / rates[from]
	return pivot * rates[to]
}

// Format renders amount with the currency's fraction digits and symbol,
// e.g. "12,50 €" or "8 200 F CFA".
func Format(amount float64, code Code) string {
	info := currencies[code]
	n := number.Decimal(amount,
		number.MinFractionDigits(info.decimals),
		number.MaxFractionDigits(info.decimals),
	)
	return printer.Sprintf("%v", n) + " " + info.symbol
}

// FormatCompact renders amounts of a million or more with a single fraction
// digit and an "M" suffix ("1,2M €"); smaller amounts defer to Format.
func FormatCompact(amount float64, code Code) string {
	if math.Abs(amount) < 1_000_000 {
		return Format(amount, code)
	}
	info := currencies[code]
	n := number.Decimal(amount/1_000_000, number.MaxFractionDigits(1))
	return printer.Sprintf("%v", n) + "M " + info.symbol
}
