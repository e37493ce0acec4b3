package analytics

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain/inventory"
)

// Summary construye el StockSummaryDTO: una lectura de artículos y una del ledger.
//
//  1. items     → TotalStockValue, ValueByCategory, LowStock
//  2. movements → Turnover, ValueSeries
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.StockSummaryDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, wrap("resumen", err)
	}
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, wrap("resumen", err)
	}

	// Mismo orden que ListBelowQuantity: menor cantidad primero, luego id.
	low := make([]dto.ItemResponse, 0)
	for _, it := range items {
		if it.Quantity.LessThan(uc.threshold) {
			low = append(low, dto.ToItemResponse(it))
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if !low[i].Quantity.Equal(low[j].Quantity) {
			return low[i].Quantity.LessThan(low[j].Quantity)
		}
		return low[i].ID < low[j].ID
	})

	return &dto.StockSummaryDTO{
		GeneratedAt:       uc.now(),
		ItemCount:         len(items),
		MovementCount:     len(movs),
		TotalStockValue:   inventory.TotalStockValue(items),
		Turnover:          turnoverOf(movs),
		LowStockThreshold: uc.threshold,
		LowStock:          low,
		ValueByCategory:   categoryValuesOf(inventory.ValueByCategory(items)),
		ValueSeries:       valueSeriesOf(movs),
	}, nil
}
