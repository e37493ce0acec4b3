package inventory

import (
	"time"

	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SafetyStockFactor multiplicador fijo del estoque de seguridad sugerido.
var SafetyStockFactor = decimal.NewFromFloat(0.1)

var secondsPerDay = decimal.NewFromInt(86400)

// TotalOutbound suma Quantity de los movimientos de salida (giro del estoque).
func TotalOutbound(movements []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.Type == entity.MovementTypeOut {
			total = total.Add(m.Quantity)
		}
	}
	return total
}

// SafetyStock = giro * SafetyStockFactor.
func SafetyStock(turnover decimal.Decimal) decimal.Decimal {
	return turnover.Mul(SafetyStockFactor)
}

// LedgerSpan devuelve la distancia entre el primer y el último movimiento.
// Con menos de 2 movimientos el intervalo es 0.
func LedgerSpan(movements []*entity.Movement) time.Duration {
	if len(movements) < 2 {
		return 0
	}
	earliest, latest := movements[0].Timestamp, movements[0].Timestamp
	for _, m := range movements[1:] {
		if m.Timestamp.Before(earliest) {
			earliest = m.Timestamp
		}
		if m.Timestamp.After(latest) {
			latest = m.Timestamp
		}
	}
	return latest.Sub(earliest)
}

// AverageReplenishmentDays = (días entre primer y último movimiento) / giro.
// El intervalo incluye los registros iniciales y el divisor solo las salidas.
// Devuelve 0 si el giro es 0.
func AverageReplenishmentDays(movements []*entity.Movement) decimal.Decimal {
	turnover := TotalOutbound(movements)
	if turnover.IsZero() {
		return decimal.Zero
	}
	span := LedgerSpan(movements)
	days := decimal.NewFromInt(int64(span / time.Second)).Div(secondsPerDay)
	return days.Div(turnover)
}
