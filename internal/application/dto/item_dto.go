package dto

import (
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"` // quantity * unit_price
}

// ItemListResponse lista de artículos.
type ItemListResponse struct {
	Total int            `json:"total"`
	Items []ItemResponse `json:"items"`
}

// ToItemResponse convierte la entidad en DTO de salida.
func ToItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Unit:      it.Unit,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Value:     it.Value(),
	}
}

// ToItemListResponse convierte una lista de entidades.
func ToItemListResponse(list []*entity.Item) ItemListResponse {
	items := make([]ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, ToItemResponse(it))
	}
	return ItemListResponse{Total: len(items), Items: items}
}

// UpdatePriceRequest body para PATCH /api/items/:id.
type UpdatePriceRequest struct {
	UnitPrice *decimal.Decimal `json:"unit_price"`
}
