package entity

import "github.com/shopspring/decimal"

// Item representa un artículo del estoque con su cantidad y precio unitario vigentes.
// Quantity solo cambia vía movimientos; UnitPrice puede actualizarse en una entrada.
type Item struct {
	ID        int64
	Name      string
	Category  string
	Unit      string // unidad de medida: kg, un, cx...
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Value devuelve quantity × unit price del artículo.
func (i *Item) Value() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
