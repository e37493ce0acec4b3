package dto

import (
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
type RecordMovementRequest struct {
	ItemID    int64            `json:"item_id"`
	Type      string           `json:"type"` // entrada | saida
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // solo entradas
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID                  int64           `json:"id"`
	ItemID              int64           `json:"item_id"`
	Type                string          `json:"type"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Timestamp           string          `json:"timestamp"` // YYYY-MM-DD HH:MM:SS
	ResultingQuantity   decimal.Decimal `json:"resulting_quantity"`
	ResultingTotalValue decimal.Decimal `json:"resulting_total_value"`
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Total     int                `json:"total"`
	Movements []MovementResponse `json:"movements"`
}

// ToMovementResponse convierte la entidad en DTO de salida.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                  m.ID,
		ItemID:              m.ItemID,
		Type:                m.Type,
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		Timestamp:           entity.FormatTimestamp(m.Timestamp),
		ResultingQuantity:   m.ResultingQuantity,
		ResultingTotalValue: m.ResultingTotalValue,
	}
}

// ToMovementListResponse convierte una lista de entidades.
func ToMovementListResponse(list []*entity.Movement) MovementListResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return MovementListResponse{Total: len(out), Movements: out}
}
