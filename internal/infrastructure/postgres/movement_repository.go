package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, kind, quantity, unit_price, "timestamp", resulting_quantity, resulting_total_value`

// Create persiste un movimiento del ledger.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (item_id, kind, quantity, unit_price, "timestamp", resulting_quantity, resulting_total_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ItemID, m.Type, m.Quantity, m.UnitPrice, entity.EncodeTimestamp(m.Timestamp),
		m.ResultingQuantity, m.ResultingTotalValue,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: artículo %d", domain.ErrNotFound, m.ItemID)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List lista el ledger por (timestamp, id).
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY "timestamp", id`)
}

// ListByItem lista los movimientos de un artículo.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE item_id = $1 ORDER BY "timestamp", id`, itemID)
}

// DeleteByItem borra los movimientos de un artículo (cascada del borrado del artículo).
func (r *MovementRepo) DeleteByItem(ctx context.Context, itemID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
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
