package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store pool PostgreSQL con esquema aplicado, repositorios y TxRunner.
type Store struct {
	*TxRunner
	pool *pgxpool.Pool
}

// Open conecta con connString, aplica el esquema y devuelve el store listo.
func Open(ctx context.Context, connString string) (*Store, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{TxRunner: NewTxRunner(pool), pool: pool}, nil
}

// Items devuelve el repositorio de artículos sobre el pool.
func (s *Store) Items() *ItemRepo { return NewItemRepository(s.pool) }

// Movements devuelve el repositorio del ledger sobre el pool.
func (s *Store) Movements() *MovementRepo { return NewMovementRepository(s.pool) }

// Close cierra el pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
