// Package currency formatea valores del estoque para mostrar al operador (dos decimales, BRL).
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code moneda de exhibición.
const Code = money.BRL

// Format redondea value a los decimales de la moneda y lo formatea (ej. "R$1.234,56").
func Format(value decimal.Decimal) string {
	cur := money.New(0, Code).Currency()
	minor := value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// Quantity formatea una cantidad con dos decimales.
func Quantity(q decimal.Decimal) string {
	return q.StringFixed(2)
}
