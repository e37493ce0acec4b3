package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del ledger.
type MovementRepo struct {
	store *Store
	tx    *state
}

// Create agrega el movimiento; el artículo referenciado debe existir.
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	return view(r.store, r.tx, func(st *state) error {
		if _, ok := st.items[movement.ItemID]; !ok {
			return fmt.Errorf("%w: artículo %d", domain.ErrNotFound, movement.ItemID)
		}
		st.nextMovID++
		movement.ID = st.nextMovID
		st.movements = append(st.movements, *movement)
		return nil
	})
}

// List devuelve el ledger ordenado por (timestamp, id).
func (r *MovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	return r.filter(func(*entity.Movement) bool { return true })
}

// ListByItem devuelve los movimientos de un artículo.
func (r *MovementRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.ItemID == itemID })
}

// DeleteByItem borra los movimientos del artículo.
func (r *MovementRepo) DeleteByItem(_ context.Context, itemID int64) (int64, error) {
	var n int64
	err := view(r.store, r.tx, func(st *state) error {
		kept := st.movements[:0:0]
		for _, m := range st.movements {
			if m.ItemID == itemID {
				n++
				continue
			}
			kept = append(kept, m)
		}
		st.movements = kept
		return nil
	})
	return n, err
}

func (r *MovementRepo) filter(keep func(*entity.Movement) bool) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0)
	err := view(r.store, r.tx, func(st *state) error {
		for _, m := range st.movements {
			m := m
			if keep(&m) {
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
