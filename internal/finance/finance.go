// Package finance computes and formats the figures printed on loan documents.
package finance

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places used for currency amounts.
const Places = 2

// monthsPerYear converts a nominal annual rate into a monthly rate.
const monthsPerYear = 12

// MonthlyPayment returns the amortized installment for principal repaid over
// months at the nominal annual rate (percent). The result is rounded to two
// places half-up. months must be at least 1.
func MonthlyPayment(principal decimal.Decimal, months int, annualRatePercent decimal.Decimal) decimal.Decimal {
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))).Round(Places)
	}

	p := principal.InexactFloat64()
	r := annualRatePercent.InexactFloat64() / 100 / monthsPerYear
	growth := math.Pow(1+r, float64(months))
	payment := p * r * growth / (growth - 1)

	return decimal.NewFromFloat(payment).Round(Places)
}

// FormatAmount renders d with two decimals and a space as thousands separator,
// e.g. 15000 -> "15 000.00". The currency sign is left to the template.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Round(Places).StringFixed(Places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + groupThousands(intPart) + "." + fracPart
}

// FormatRate renders a percentage with two decimals, e.g. "7.86".
func FormatRate(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// groupThousands inserts a space every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
