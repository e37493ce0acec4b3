package inventory

import (
	"context"

	"github.com/jhoicas/estoque/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el ledger: si fn devuelve error se hace Rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
