// Package cli implementa la interfaz de línea de comandos del estoque: subcomandos
// (google/subcommands) y el menú interactivo numerado.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/pkg/logger"
)

// App dependencias compartidas por los subcomandos.
type App struct {
	Items     *inventory.ItemUseCase
	Ledger    *inventory.RegisterMovementUseCase
	Valuation *inventory.ValuationUseCase
	Reports   *analytics.ReportUseCase
	PDF       *analytics.PDFUseCase

	// Serve levanta el servidor HTTP hasta que ctx se cancele.
	Serve func(ctx context.Context) error

	In    io.Reader
	Out   io.Writer
	Err   io.Writer
	Plain bool // sin estilos de terminal (markdown crudo)
	Log   *logger.Logger
}

func (a *App) stdout() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Err != nil {
		return a.Err
	}
	return os.Stderr
}

func (a *App) stdin() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

// Register registra los subcomandos en el commander.
func Register(c *subcommands.Commander, app *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&menuCmd{app: app}, "")

	c.Register(&listCmd{app: app}, "items")
	c.Register(&addCmd{app: app}, "items")
	c.Register(&deleteCmd{app: app}, "items")
	c.Register(&updatePriceCmd{app: app}, "items")
	c.Register(&searchCmd{app: app}, "items")

	c.Register(&moveCmd{app: app}, "ledger")
	c.Register(&movementsCmd{app: app}, "ledger")

	c.Register(&reportCmd{app: app}, "reports")
	c.Register(&valueCmd{app: app}, "reports")
	c.Register(&exportPDFCmd{app: app}, "reports")

	c.Register(&serveCmd{app: app}, "server")
}

// describeError mensaje para el operador según el tipo de error del núcleo.
func describeError(err error) string {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return "Dato inválido: " + err.Error()
	case domain.KindNotFound:
		return "No encontrado: " + err.Error()
	case domain.KindInsufficientStock:
		return "Estoque insuficiente: " + err.Error()
	case domain.KindStorage:
		return "Error de almacenamiento: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// fail imprime el error y devuelve el exit status: uso para validación, falla para el resto.
func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(a.stderr(), describeError(err))
	if errors.Is(err, domain.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
