package inventory

import (
	"context"

	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP/CLI al caso de uso RecordMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RecordMovementFromRequest(ctx context.Context, in dto.RecordMovementRequest) (*entity.Movement, error) {
	input := MovementInputDTO{
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
	}
	return uc.RecordMovement(ctx, input)
}
