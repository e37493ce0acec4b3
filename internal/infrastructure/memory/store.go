// Package memory implementa los puertos de persistencia en memoria, con transacciones por
// snapshot: Run trabaja sobre una copia del estado y solo la publica si fn no devuelve error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	items      map[int64]entity.Item
	movements  []entity.Movement
	nextItemID int64
	nextMovID  int64
}

func (s *state) clone() *state {
	c := &state{
		items:      make(map[int64]entity.Item, len(s.items)),
		movements:  make([]entity.Movement, len(s.movements)),
		nextItemID: s.nextItemID,
		nextMovID:  s.nextMovID,
	}
	for id, it := range s.items {
		c.items[id] = it
	}
	copy(c.movements, s.movements)
	return c
}

// Store estado compartido; las operaciones fuera de tx toman el mutex por llamada.
type Store struct {
	mu    sync.Mutex
	state *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{state: &state{items: make(map[int64]entity.Item)}}
}

// Items devuelve el repositorio de artículos fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{store: s} }

// Movements devuelve el repositorio del ledger fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{store: s} }

// Close no libera nada; existe para cumplir el mismo contrato que los stores SQL.
func (s *Store) Close() error { return nil }

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(&ItemRepo{tx: tx}, &MovementRepo{tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// view ejecuta fn con el estado: el de la tx si existe, si no el compartido bajo mutex.
func view(store *Store, tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	return fn(store.state)
}
