package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

var errHasMovements = errors.New("memory: el artículo aún tiene movimientos (movements.item_id)")

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	store *Store
	tx    *state
}

// Create asigna el siguiente ID y guarda una copia del artículo.
func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return view(r.store, r.tx, func(st *state) error {
		st.nextItemID++
		item.ID = st.nextItemID
		st.items[item.ID] = *item
		return nil
	})
}

// GetByID obtiene una copia del artículo o nil.
func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	var out *entity.Item
	err := view(r.store, r.tx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID: dentro de Run el mutex ya serializa la tx.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// List devuelve copias ordenadas por id.
func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	err := view(r.store, r.tx, func(st *state) error {
		out = make([]*entity.Item, 0, len(st.items))
		for _, it := range st.items {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// ListBelowQuantity devuelve los artículos con quantity < threshold, menor cantidad primero.
func (r *ItemRepo) ListBelowQuantity(ctx context.Context, threshold decimal.Decimal) ([]*entity.Item, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Item, 0)
	for _, it := range all {
		if it.Quantity.LessThan(threshold) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity.LessThan(out[j].Quantity) })
	return out, nil
}

// UpdateQuantityAndPrice actualiza cantidad y precio.
func (r *ItemRepo) UpdateQuantityAndPrice(_ context.Context, id int64, quantity, unitPrice decimal.Decimal) error {
	return view(r.store, r.tx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.Quantity = quantity
		it.UnitPrice = unitPrice
		st.items[id] = it
		return nil
	})
}

// Delete elimina el artículo. Rechaza el borrado si quedan movimientos (equivalente a la FK).
func (r *ItemRepo) Delete(_ context.Context, id int64) error {
	return view(r.store, r.tx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.ErrNotFound
		}
		for _, m := range st.movements {
			if m.ItemID == id {
				return errHasMovements
			}
		}
		delete(st.items, id)
		return nil
	})
}
