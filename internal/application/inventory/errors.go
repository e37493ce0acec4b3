package inventory

import (
	"fmt"

	"github.com/jhoicas/estoque/internal/domain"
)

// storageErr clasifica como domain.ErrStorage todo error que no sea ya de dominio.
func storageErr(op string, err error) error {
	if err == nil || domain.IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

func notFound(id int64) error {
	return fmt.Errorf("%w: artículo %d", domain.ErrNotFound, id)
}
