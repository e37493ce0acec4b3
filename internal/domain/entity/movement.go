package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementTypeInit = "init"    // registro inicial del artículo
	MovementTypeIn   = "entrada" // entrada
	MovementTypeOut  = "saida"   // salida
)

// TimestampLayout formato de Movement.Timestamp (precisión de segundos).
const TimestampLayout = "2006-01-02 15:04:05"

// Movement registro del ledger (solo inserción). Guarda la cantidad del artículo y el
// valor total del estoque inmediatamente después del movimiento.
type Movement struct {
	ID                  int64
	ItemID              int64
	Type                string          // init, entrada, saida
	Quantity            decimal.Decimal // magnitud movida, nunca con signo
	UnitPrice           decimal.Decimal
	Timestamp           time.Time
	ResultingQuantity   decimal.Decimal
	ResultingTotalValue decimal.Decimal
}

// IsValidMovementType indica si t es un tipo que el operador puede registrar (entrada/saida).
func IsValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// FormatTimestamp presenta un instante en hora local con el layout del ledger.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

// EncodeTimestamp serializa el instante para persistirlo, siempre en UTC: el orden del
// texto coincide con el cronológico también en el cambio de horario de verano.
func EncodeTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DecodeTimestamp interpreta un timestamp persistido con EncodeTimestamp y lo devuelve en hora local.
func DecodeTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}
