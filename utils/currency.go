package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders an amount in cents as US dollars: 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return fmt.Sprintf("%s$%s.%02d", sign, p.Sprintf("%d", cents/100), cents%100)
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// DollarsToCents converts a decimal dollar string to cents, rounding to the
// nearest cent. Amounts that do not fit in int64 cents are rejected.
func DollarsToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(maxCents.Neg()) {
		return 0, fmt.Errorf("amount %q is out of range", amount)
	}
	return cents.IntPart(), nil
}

func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
