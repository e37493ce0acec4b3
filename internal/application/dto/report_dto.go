package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuePointDTO punto de la serie de valor del estoque (un movimiento del ledger).
type ValuePointDTO struct {
	Timestamp time.Time       `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}

// CategoryValueDTO valor del estoque de una categoría.
type CategoryValueDTO struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// TurnoverDTO giro del estoque y métricas derivadas.
type TurnoverDTO struct {
	TotalOutbound            decimal.Decimal `json:"total_outbound"`
	SuggestedSafetyStock     decimal.Decimal `json:"suggested_safety_stock"`      // TotalOutbound * 0.1
	AverageReplenishmentDays decimal.Decimal `json:"average_replenishment_days"` // span del ledger / TotalOutbound
}

// StockSummaryDTO resumen del estoque para el reporte del operador.
type StockSummaryDTO struct {
	GeneratedAt       time.Time          `json:"generated_at"`
	ItemCount         int                `json:"item_count"`
	MovementCount     int                `json:"movement_count"`
	TotalStockValue   decimal.Decimal    `json:"total_stock_value"`
	Turnover          TurnoverDTO        `json:"turnover"`
	LowStockThreshold decimal.Decimal    `json:"low_stock_threshold"`
	LowStock          []ItemResponse     `json:"low_stock"`
	ValueByCategory   []CategoryValueDTO `json:"value_by_category"`
	ValueSeries       []ValuePointDTO    `json:"value_series"`
}
