// Package storage elige el adaptador de persistencia según la ubicación configurada del store.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/jhoicas/estoque/internal/infrastructure/memory"
	"github.com/jhoicas/estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque/internal/infrastructure/sqlite"
)

// Driver nombre del adaptador seleccionado.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
)

// Store repositorios fuera de tx, TxRunner y cierre del adaptador elegido.
type Store struct {
	Driver    Driver
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Tx        inventory.TxRunner
	closeFn   func() error
}

// Close libera el adaptador.
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// DriverFor deduce el adaptador a partir de la ubicación.
func DriverFor(location string) Driver {
	loc := strings.TrimSpace(location)
	switch {
	case strings.HasPrefix(loc, "postgres://"), strings.HasPrefix(loc, "postgresql://"):
		return DriverPostgres
	case loc == ":memory:", strings.HasPrefix(loc, "memory://"):
		return DriverMemory
	default:
		return DriverSQLite
	}
}

// Open abre el store indicado por location:
// postgres:// o postgresql:// → PostgreSQL; :memory: o memory:// → memoria; otro valor → archivo SQLite.
func Open(ctx context.Context, location string) (*Store, error) {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return nil, fmt.Errorf("ubicación del store vacía")
	}
	switch DriverFor(loc) {
	case DriverPostgres:
		st, err := postgres.Open(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("abrir postgres: %w", err)
		}
		return &Store{Driver: DriverPostgres, Items: st.Items(), Movements: st.Movements(), Tx: st, closeFn: st.Close}, nil
	case DriverMemory:
		st := memory.New()
		return &Store{Driver: DriverMemory, Items: st.Items(), Movements: st.Movements(), Tx: st, closeFn: st.Close}, nil
	default:
		st, err := sqlite.Open(ctx, loc)
		if err != nil {
			return nil, err
		}
		return &Store{Driver: DriverSQLite, Items: st.Items(), Movements: st.Movements(), Tx: st, closeFn: st.Close}, nil
	}
}
