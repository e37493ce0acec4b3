package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/jhoicas/estoque/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ItemUseCase casos de uso del Item Store. Quantity solo cambia vía movimientos; la creación
// y el borrado son transaccionales junto con el ledger.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	ledger   *RegisterMovementUseCase
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso. ledger registra el movimiento init dentro de la tx de creación.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, ledger *RegisterMovementUseCase, opts ...Option) *ItemUseCase {
	o := buildOptions(opts)
	return &ItemUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		ledger:   ledger,
		log:      o.log.Named("items"),
	}
}

// CreateItemInputDTO entrada para registrar un artículo.
type CreateItemInputDTO struct {
	Name      string
	Category  string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

func (in *CreateItemInputDTO) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return invalid("el nombre es obligatorio")
	}
	if in.Quantity.IsNegative() {
		return invalid("la cantidad no puede ser negativa")
	}
	if in.UnitPrice.IsNegative() {
		return invalid("el precio unitario no puede ser negativo")
	}
	return nil
}

// CreateItem registra el artículo y su movimiento init en una sola transacción.
func (uc *ItemUseCase) CreateItem(ctx context.Context, in CreateItemInputDTO) (*entity.Item, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item := &entity.Item{
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
	}
	now := uc.ledger.timestamp()
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		_, err := uc.ledger.RecordInitialMovementInTx(ctx, itemRepo, movRepo, item, now)
		return err
	})
	if err != nil {
		return nil, storageErr("registrar artículo", err)
	}
	uc.log.Info().Int64("item_id", item.ID).Str("name", item.Name).Msg("artículo registrado")
	return item, nil
}

// CreateItemFromRequest adapta dto.CreateItemRequest a CreateItem.
func (uc *ItemUseCase) CreateItemFromRequest(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	return uc.CreateItem(ctx, CreateItemInputDTO{
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
	})
}

// DeleteItem borra el artículo y, en la misma transacción, todos sus movimientos.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, id int64) error {
	var purged int64
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return notFound(id)
		}
		if purged, err = movRepo.DeleteByItem(ctx, id); err != nil {
			return err
		}
		return itemRepo.Delete(ctx, id)
	})
	if err != nil {
		return storageErr("eliminar artículo", err)
	}
	uc.log.Info().Int64("item_id", id).Int64("movements", purged).Msg("artículo eliminado")
	return nil
}

// GetItem obtiene un artículo por ID.
func (uc *ItemUseCase) GetItem(ctx context.Context, id int64) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("obtener artículo", err)
	}
	if item == nil {
		return nil, notFound(id)
	}
	return item, nil
}

// ListItems lista los artículos por id ascendente.
func (uc *ItemUseCase) ListItems(ctx context.Context) ([]*entity.Item, error) {
	list, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, storageErr("listar artículos", err)
	}
	return list, nil
}

// SearchItems devuelve los artículos cuyo nombre o categoría contiene term sin distinguir
// mayúsculas (case folding Unicode), ordenados por nombre.
func (uc *ItemUseCase) SearchItems(ctx context.Context, term string) ([]*entity.Item, error) {
	list, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, storageErr("buscar artículos", err)
	}
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	out := make([]*entity.Item, 0, len(list))
	for _, it := range list {
		if strings.Contains(fold.String(it.Name), needle) || strings.Contains(fold.String(it.Category), needle) {
			out = append(out, it)
		}
	}

	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if c := col.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateQuantityAndPrice fija cantidad y precio de un artículo. Primitiva del store: no registra
// movimiento, los cambios de cantidad del operador pasan por RecordMovement.
func (uc *ItemUseCase) UpdateQuantityAndPrice(ctx context.Context, id int64, quantity, unitPrice decimal.Decimal) error {
	if quantity.IsNegative() || unitPrice.IsNegative() {
		return invalid("cantidad y precio no pueden ser negativos")
	}
	if err := uc.itemRepo.UpdateQuantityAndPrice(ctx, id, quantity, unitPrice); err != nil {
		return storageErr("actualizar artículo", err)
	}
	return nil
}

// UpdatePrice cambia el precio unitario de un artículo sin tocar su cantidad. No agrega
// movimiento: el ledger solo registra cambios de cantidad, los snapshots siguientes ya
// reflejan el precio nuevo.
func (uc *ItemUseCase) UpdatePrice(ctx context.Context, id int64, unitPrice decimal.Decimal) (*entity.Item, error) {
	if unitPrice.IsNegative() {
		return nil, invalid("el precio unitario no puede ser negativo")
	}
	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return notFound(id)
		}
		if err := itemRepo.UpdateQuantityAndPrice(ctx, id, item.Quantity, unitPrice); err != nil {
			return err
		}
		item.UnitPrice = unitPrice
		updated = item
		return nil
	})
	if err != nil {
		return nil, storageErr("actualizar precio", err)
	}
	uc.log.Info().Int64("item_id", id).Str("unit_price", unitPrice.String()).Msg("precio actualizado")
	return updated, nil
}
