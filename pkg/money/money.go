// Package money formatea importes en pesos argentinos para las vistas y el PDF.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Format devuelve el importe con separadores es-AR y dos decimales, p. ej. "$10.800,00".
// Los centavos salen de la representación decimal exacta; el printer solo agrupa la parte entera.
func Format(d decimal.Decimal) string {
	r := d.Round(2)
	whole, cents, _ := strings.Cut(r.Abs().StringFixed(2), ".")
	sign := ""
	if r.IsNegative() {
		sign = "-"
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// fuera de int64: sin separadores de miles
		return sign + "$" + whole + "," + cents
	}
	return sign + "$" + printer.Sprint(number.Decimal(n)) + "," + cents
}
