package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre SQLite (usable con db o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar db o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, category, unit, quantity, unit_price`

// Create persiste un artículo y asigna item.ID.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO items (name, category, unit, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.Unit, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert item id: %w", err)
	}
	item.ID = id
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate en SQLite la tx ya tiene el lock de escritura (BEGIN IMMEDIATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// List lista todos los artículos por id.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
}

// ListBelowQuantity lista los artículos con quantity < threshold.
func (r *ItemRepo) ListBelowQuantity(ctx context.Context, threshold decimal.Decimal) ([]*entity.Item, error) {
	return r.query(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE CAST(quantity AS REAL) < ? ORDER BY CAST(quantity AS REAL), id`,
		threshold.InexactFloat64(),
	)
}

// UpdateQuantityAndPrice actualiza cantidad y precio.
func (r *ItemRepo) UpdateQuantityAndPrice(ctx context.Context, id int64, quantity, unitPrice decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE items SET quantity = ?, unit_price = ? WHERE id = ?`,
		quantity, unitPrice, id,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return requireOneRow(res)
}

// Delete elimina un artículo. La FK impide borrarlo si aún tiene movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireOneRow(res)
}

func (r *ItemRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*entity.Item, error) {
	var it entity.Item
	if err := s.Scan(&it.ID, &it.Name, &it.Category, &it.Unit, &it.Quantity, &it.UnitPrice); err != nil {
		return nil, err
	}
	return &it, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
