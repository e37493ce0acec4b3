package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/inventory"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/jhoicas/estoque/pkg/logger"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos del ledger de forma transaccional
// (entrada, saida e init) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	now      func() time.Time
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	opts ...Option,
) *RegisterMovementUseCase {
	o := buildOptions(opts)
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		now:      o.now,
		log:      o.log.Named("ledger"),
	}
}

// MovementInputDTO entrada para registrar una entrada o salida.
// UnitPrice es opcional: en una entrada permite actualizar el precio del artículo.
type MovementInputDTO struct {
	ItemID    int64
	Type      string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

func (in MovementInputDTO) validate() error {
	if !entity.IsValidMovementType(in.Type) {
		return invalid(fmt.Sprintf("tipo de movimiento %q", in.Type))
	}
	if !in.Quantity.IsPositive() {
		return invalid("la cantidad del movimiento debe ser mayor que cero")
	}
	if in.UnitPrice != nil {
		if in.Type != entity.MovementTypeIn {
			return invalid("solo una entrada puede cambiar el precio")
		}
		if in.UnitPrice.IsNegative() {
			return invalid("el precio unitario no puede ser negativo")
		}
	}
	return nil
}

// RecordMovement valida la entrada, inicia una transacción, bloquea el artículo,
// aplica la entrada/salida, recalcula el valor total y agrega el movimiento al ledger.
// Una salida mayor al disponible devuelve domain.ErrInsufficientStock sin mutar nada.
func (uc *RegisterMovementUseCase) RecordMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := uc.timestamp()
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		// Bloquea la fila del artículo (SELECT FOR UPDATE)
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return notFound(input.ItemID)
		}

		newQty, ok := inventory.ApplyMovement(item.Quantity, input.Type, input.Quantity)
		if !ok {
			return fmt.Errorf("%w: disponible %s, solicitado %s",
				domain.ErrInsufficientStock, item.Quantity.String(), input.Quantity.String())
		}
		unitPrice := item.UnitPrice
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}
		if err := itemRepo.UpdateQuantityAndPrice(ctx, item.ID, newQty, unitPrice); err != nil {
			return err
		}

		total, err := totalStockValue(ctx, itemRepo)
		if err != nil {
			return err
		}
		mov = &entity.Movement{
			ItemID:              item.ID,
			Type:                input.Type,
			Quantity:            input.Quantity,
			UnitPrice:           unitPrice,
			Timestamp:           now,
			ResultingQuantity:   newQty,
			ResultingTotalValue: total,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, storageErr("registrar movimiento", err)
	}

	uc.log.Debug().
		Int64("item_id", mov.ItemID).
		Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).
		Str("resulting_quantity", mov.ResultingQuantity.String()).
		Str("resulting_total_value", mov.ResultingTotalValue.String()).
		Msg("movimiento registrado")
	return mov, nil
}

// RecordInitialMovementInTx agrega el movimiento init de un artículo recién creado usando los
// repositorios de la transacción del caller. La cantidad inicial es a la vez delta y cantidad
// resultante; el valor resultante es la valoración dentro de la misma tx.
func (uc *RegisterMovementUseCase) RecordInitialMovementInTx(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	item *entity.Item,
	now time.Time,
) (*entity.Movement, error) {
	total, err := totalStockValue(ctx, itemRepo)
	if err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ItemID:              item.ID,
		Type:                entity.MovementTypeInit,
		Quantity:            item.Quantity,
		UnitPrice:           item.UnitPrice,
		Timestamp:           now,
		ResultingQuantity:   item.Quantity,
		ResultingTotalValue: total,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements devuelve el ledger completo por timestamp ascendente.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context) ([]*entity.Movement, error) {
	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, storageErr("listar movimientos", err)
	}
	return list, nil
}

// ListItemMovements devuelve el historial de un artículo.
func (uc *RegisterMovementUseCase) ListItemMovements(ctx context.Context, itemID int64) ([]*entity.Movement, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, storageErr("obtener artículo", err)
	}
	if item == nil {
		return nil, notFound(itemID)
	}
	list, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, storageErr("listar movimientos", err)
	}
	return list, nil
}

func (uc *RegisterMovementUseCase) timestamp() time.Time {
	return uc.now().Truncate(time.Second).In(time.Local)
}

// totalStockValue recalcula la valoración leyendo todos los artículos a través de repo.
func totalStockValue(ctx context.Context, repo repository.ItemRepository) (decimal.Decimal, error) {
	items, err := repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.TotalStockValue(items), nil
}
