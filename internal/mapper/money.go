package mapper

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nairaSign = "₦"

var printer = message.NewPrinter(language.English)

// FormatNaira renders an amount as ₦1,234.50
func FormatNaira(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + nairaSign + printer.Sprintf("%v", number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
}

// FormatNairaFloat is FormatNaira for float amounts. NaN and infinities
// render as ₦0.00.
func FormatNairaFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return FormatNaira(decimal.Zero)
	}
	return FormatNaira(decimal.NewFromFloat(amount))
}

// FormatAmount renders amount in currency, falling back to a plain code prefix
// for anything but naira.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" || strings.EqualFold(currency, "NGN") {
		return FormatNaira(amount)
	}
	return strings.ToUpper(currency) + " " + printer.Sprintf("%v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}
