package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sin ON DELETE CASCADE: el borrado en cascada de movimientos lo hace el caso de uso.
const schema = `
CREATE TABLE IF NOT EXISTS items (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	unit       TEXT NOT NULL DEFAULT '',
	quantity   NUMERIC NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	unit_price NUMERIC NOT NULL DEFAULT 0 CHECK (unit_price >= 0)
);

CREATE TABLE IF NOT EXISTS movements (
	id                    BIGSERIAL PRIMARY KEY,
	item_id               BIGINT NOT NULL REFERENCES items(id),
	kind                  TEXT NOT NULL CHECK (kind IN ('init', 'entrada', 'saida')),
	quantity              NUMERIC NOT NULL,
	unit_price            NUMERIC NOT NULL,
	"timestamp"           TEXT NOT NULL,
	resulting_quantity    NUMERIC NOT NULL,
	resulting_total_value NUMERIC NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_movements_timestamp ON movements ("timestamp", id);
CREATE INDEX IF NOT EXISTS idx_movements_item ON movements (item_id);
`

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
