package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger sobre SQLite (usable con db o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar db o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, kind, quantity, unit_price, "timestamp", resulting_quantity, resulting_total_value`

// Create agrega un movimiento al ledger.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (item_id, kind, quantity, unit_price, "timestamp", resulting_quantity, resulting_total_value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ItemID, m.Type, m.Quantity, m.UnitPrice,
		entity.EncodeTimestamp(m.Timestamp),
		m.ResultingQuantity, m.ResultingTotalValue,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: artículo %d", domain.ErrNotFound, m.ItemID)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert movement id: %w", err)
	}
	m.ID = id
	return nil
}

// List devuelve el ledger por (timestamp, id).
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY "timestamp", id`)
}

// ListByItem devuelve los movimientos de un artículo.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error) {
	return r.query(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE item_id = ? ORDER BY "timestamp", id`, itemID)
}

// DeleteByItem borra todos los movimientos del artículo.
func (r *MovementRepo) DeleteByItem(ctx context.Context, itemID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM movements WHERE item_id = ?`, itemID)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return res.RowsAffected()
}

func (r *MovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		var ts string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitPrice, &ts,
			&m.ResultingQuantity, &m.ResultingTotalValue); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if m.Timestamp, err = entity.DecodeTimestamp(ts); err != nil {
			return nil, fmt.Errorf("movement %d timestamp: %w", m.ID, err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
