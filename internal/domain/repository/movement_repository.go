package repository

import (
	"context"

	"github.com/jhoicas/estoque/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del ledger de movimientos.
// No hay Update: el ledger es solo inserción y se borra únicamente en cascada con su artículo.
type MovementRepository interface {
	// Create agrega el movimiento y asigna movement.ID.
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve todo el ledger ordenado por (timestamp, id) ascendente.
	List(ctx context.Context) ([]*entity.Movement, error)
	// ListByItem devuelve los movimientos de un artículo, mismo orden que List.
	ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error)
	// DeleteByItem borra todos los movimientos del artículo y devuelve cuántos eran.
	DeleteByItem(ctx context.Context, itemID int64) (int64, error)
}
