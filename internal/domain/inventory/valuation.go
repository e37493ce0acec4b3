package inventory

import (
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TotalStockValue implementa la valoración del estoque (servicio de dominio).
// ValorTotal = Σ (Quantity * UnitPrice) sobre todos los artículos actuales.
// Sin caché: quien llama siempre pasa el estado leído en ese instante.
func TotalStockValue(items []*entity.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Value())
	}
	return total
}

// ValueByCategory agrupa Quantity * UnitPrice por categoría.
func ValueByCategory(items []*entity.Item) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, it := range items {
		out[it.Category] = out[it.Category].Add(it.Value())
	}
	return out
}

// ApplyMovement calcula la cantidad resultante de una entrada o salida.
// Devuelve ok=false si una salida supera la cantidad disponible.
func ApplyMovement(current decimal.Decimal, movementType string, qty decimal.Decimal) (decimal.Decimal, bool) {
	if movementType == entity.MovementTypeOut {
		if qty.GreaterThan(current) {
			return current, false
		}
		return current.Sub(qty), true
	}
	return current.Add(qty), true
}
