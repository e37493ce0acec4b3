package inventory

import (
	"context"

	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ValuationUseCase expone el valor total del estoque. Se recalcula en cada llamada.
type ValuationUseCase struct {
	itemRepo repository.ItemRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(itemRepo repository.ItemRepository) *ValuationUseCase {
	return &ValuationUseCase{itemRepo: itemRepo}
}

// TotalStockValue = Σ quantity × unit price sobre los artículos actuales.
func (uc *ValuationUseCase) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	total, err := totalStockValue(ctx, uc.itemRepo)
	if err != nil {
		return decimal.Zero, storageErr("valorar estoque", err)
	}
	return total, nil
}
