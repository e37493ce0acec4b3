package inventory

import (
	"time"

	"github.com/jhoicas/estoque/pkg/logger"
)

// Option configura los casos de uso del paquete.
type Option func(*options)

type options struct {
	now func() time.Time
	log *logger.Logger
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock reemplaza el reloj usado para los timestamps del ledger.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger inyecta el logger de la aplicación.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
