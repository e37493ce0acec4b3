// Package sqlite implementa los puertos de persistencia sobre un archivo SQLite (mattn/go-sqlite3).
// El esquema se crea al abrir; las transacciones usan BEGIN IMMEDIATE (_txlock=immediate).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios sirvan dentro y fuera de tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store conexión SQLite y TxRunner.
type Store struct {
	db *sql.DB
}

// Los valores decimales se guardan como texto (decimal.Decimal.String) para que
// el snapshot del ledger coincida exactamente con la valoración.
const schema = `
CREATE TABLE IF NOT EXISTS items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	unit       TEXT NOT NULL DEFAULT '',
	quantity   TEXT NOT NULL DEFAULT '0',
	unit_price TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS movements (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id               INTEGER NOT NULL REFERENCES items(id),
	kind                  TEXT NOT NULL CHECK (kind IN ('init', 'entrada', 'saida')),
	quantity              TEXT NOT NULL,
	unit_price            TEXT NOT NULL,
	"timestamp"           TEXT NOT NULL,
	resulting_quantity    TEXT NOT NULL,
	resulting_total_value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_movements_timestamp ON movements("timestamp", id);
CREATE INDEX IF NOT EXISTS idx_movements_item ON movements(item_id);
`

// Open abre (o crea) la base en path y aplica el esquema.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.db.Close()
}

// Items devuelve el repositorio de artículos sobre la conexión.
func (s *Store) Items() *ItemRepo { return NewItemRepository(s.db) }

// Movements devuelve el repositorio del ledger sobre la conexión.
func (s *Store) Movements() *MovementRepo { return NewMovementRepository(s.db) }

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isForeignKeyViolation indica si err es una violación de FK de SQLite.
func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
