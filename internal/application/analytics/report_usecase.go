// Package analytics contiene los casos de uso de reportes del estoque.
// Son read-only: leen artículos y ledger, nunca los modifican.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/inventory"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de estoque bajo cuando el caller no indica otro.
var DefaultLowStockThreshold = decimal.NewFromInt(5)

// ReportUseCase genera los reportes de estoque bajo y giro.
type ReportUseCase struct {
	itemRepo  repository.ItemRepository
	movRepo   repository.MovementRepository
	threshold decimal.Decimal
	now       func() time.Time
}

// Option configura un ReportUseCase.
type Option func(*ReportUseCase)

// WithClock reemplaza time.Now (fecha de generación de los resúmenes).
func WithClock(now func() time.Time) Option {
	return func(uc *ReportUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewReportUseCase construye el caso de uso. threshold es el umbral por defecto de LowStockItems.
func NewReportUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, threshold decimal.Decimal, opts ...Option) *ReportUseCase {
	if threshold.IsNegative() {
		threshold = DefaultLowStockThreshold
	}
	uc := &ReportUseCase{itemRepo: itemRepo, movRepo: movRepo, threshold: threshold, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Threshold devuelve el umbral configurado.
func (uc *ReportUseCase) Threshold() decimal.Decimal { return uc.threshold }

// LowStockItems devuelve los artículos con quantity < threshold (nil = umbral configurado).
func (uc *ReportUseCase) LowStockItems(ctx context.Context, threshold *decimal.Decimal) ([]*entity.Item, error) {
	t := uc.threshold
	if threshold != nil {
		if threshold.IsNegative() {
			return nil, fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrInvalidInput)
		}
		t = *threshold
	}
	list, err := uc.itemRepo.ListBelowQuantity(ctx, t)
	if err != nil {
		return nil, wrap("estoque bajo", err)
	}
	if list == nil {
		list = []*entity.Item{}
	}
	return list, nil
}

// TotalOutboundQuantity suma las cantidades de las salidas (giro).
func (uc *ReportUseCase) TotalOutboundQuantity(ctx context.Context) (decimal.Decimal, error) {
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return decimal.Zero, wrap("giro", err)
	}
	return inventory.TotalOutbound(movs), nil
}

// SuggestedSafetyStock = TotalOutboundQuantity * 0.1.
func (uc *ReportUseCase) SuggestedSafetyStock(ctx context.Context) (decimal.Decimal, error) {
	turnover, err := uc.TotalOutboundQuantity(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.SafetyStock(turnover), nil
}

// AverageReplenishmentDays = días entre el primer y último movimiento / giro; 0 sin giro.
func (uc *ReportUseCase) AverageReplenishmentDays(ctx context.Context) (decimal.Decimal, error) {
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return decimal.Zero, wrap("reposición", err)
	}
	return inventory.AverageReplenishmentDays(movs), nil
}

// Turnover calcula giro, estoque de seguridad y reposición media con una sola lectura del ledger.
func (uc *ReportUseCase) Turnover(ctx context.Context) (*dto.TurnoverDTO, error) {
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, wrap("giro", err)
	}
	t := turnoverOf(movs)
	return &t, nil
}

// StockValueTimeSeries devuelve (timestamp, valor total resultante) de cada movimiento, ascendente.
func (uc *ReportUseCase) StockValueTimeSeries(ctx context.Context) ([]dto.ValuePointDTO, error) {
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, wrap("serie de valor", err)
	}
	return valueSeriesOf(movs), nil
}

// ValueByCategory devuelve categoría -> Σ quantity × unit price.
func (uc *ReportUseCase) ValueByCategory(ctx context.Context) (map[string]decimal.Decimal, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, wrap("valor por categoría", err)
	}
	return inventory.ValueByCategory(items), nil
}

// CategoryValues igual que ValueByCategory pero como lista ordenada por categoría (para gráficos).
func (uc *ReportUseCase) CategoryValues(ctx context.Context) ([]dto.CategoryValueDTO, error) {
	m, err := uc.ValueByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return categoryValuesOf(m), nil
}

func turnoverOf(movs []*entity.Movement) dto.TurnoverDTO {
	total := inventory.TotalOutbound(movs)
	return dto.TurnoverDTO{
		TotalOutbound:            total,
		SuggestedSafetyStock:     inventory.SafetyStock(total),
		AverageReplenishmentDays: inventory.AverageReplenishmentDays(movs),
	}
}

func valueSeriesOf(movs []*entity.Movement) []dto.ValuePointDTO {
	out := make([]dto.ValuePointDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.ValuePointDTO{Timestamp: m.Timestamp, Value: m.ResultingTotalValue})
	}
	return out
}

func categoryValuesOf(m map[string]decimal.Decimal) []dto.CategoryValueDTO {
	out := make([]dto.CategoryValueDTO, 0, len(m))
	for cat, v := range m {
		out = append(out, dto.CategoryValueDTO{Category: cat, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func wrap(op string, err error) error {
	if domain.IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
