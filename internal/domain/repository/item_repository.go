package repository

import (
	"context"

	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el artículo no existe.
type ItemRepository interface {
	// Create persiste el artículo y asigna item.ID.
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetForUpdate lee el artículo bloqueando la fila cuando el motor lo permite (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	// List devuelve todos los artículos ordenados por id ascendente.
	List(ctx context.Context) ([]*entity.Item, error)
	// ListBelowQuantity devuelve los artículos con quantity < threshold, menor cantidad primero.
	ListBelowQuantity(ctx context.Context, threshold decimal.Decimal) ([]*entity.Item, error)
	// UpdateQuantityAndPrice devuelve domain.ErrNotFound si el artículo no existe.
	UpdateQuantityAndPrice(ctx context.Context, id int64, quantity, unitPrice decimal.Decimal) error
	// Delete devuelve domain.ErrNotFound si el artículo no existe.
	Delete(ctx context.Context, id int64) error
}
