package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con un mensaje legible: fmt.Errorf("%w: ...", ErrInvalidInput).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrStorage           = errors.New("falla de almacenamiento")
)

// Kind código estable del tipo de error, para la capa que presenta los errores al operador.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindStorage           Kind = "STORAGE"
	KindUnknown           Kind = "INTERNAL"
)

// KindOf clasifica un error devuelto por el núcleo.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}

// IsKnown indica si err ya pertenece a alguno de los tipos de dominio.
func IsKnown(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrStorage)
}
