package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const menuText = `
===== ESTOQUE =====
1. Registrar artículo
2. Eliminar artículo
3. Listar artículos
4. Buscar artículos
5. Registrar entrada
6. Registrar salida
7. Ver movimientos
8. Reportes
9. Actualizar precio
0. Salir
`

type menuCmd struct {
	app *App
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "menú interactivo (por defecto)" }
func (*menuCmd) Usage() string {
	return `estoque menu

  Menú de texto numerado para operar el estoque paso a paso.
`
}
func (*menuCmd) SetFlags(*flag.FlagSet) {}

func (c *menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m := &menu{app: c.app, in: bufio.NewScanner(c.app.stdin()), out: c.app.stdout()}
	if err := m.run(ctx); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

// menu sesión interactiva: lee opciones de in hasta "0" o EOF.
type menu struct {
	app *App
	in  *bufio.Scanner
	out io.Writer
}

func (m *menu) run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.ask("Opción: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.createItem(ctx)
		case "2":
			err = m.deleteItem(ctx)
		case "3":
			err = m.listItems(ctx)
		case "4":
			err = m.search(ctx)
		case "5":
			err = m.move(ctx, entity.MovementTypeIn)
		case "6":
			err = m.move(ctx, entity.MovementTypeOut)
		case "7":
			err = m.movements(ctx)
		case "8":
			err = m.report(ctx)
		case "9":
			err = m.updatePrice(ctx)
		case "0":
			fmt.Fprintln(m.out, "Hasta luego.")
			return nil
		default:
			fmt.Fprintln(m.out, "Opción inválida.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(m.out, describeError(err))
		}
	}
}

// ask muestra label y devuelve la línea leída sin espacios.
func (m *menu) ask(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// askDecimal repite la pregunta hasta obtener un número; vacío devuelve def.
func (m *menu) askDecimal(label string, def *decimal.Decimal) (decimal.Decimal, error) {
	for {
		raw, err := m.ask(label)
		if err != nil {
			return decimal.Zero, err
		}
		if raw == "" && def != nil {
			return *def, nil
		}
		v, err := decimal.NewFromString(normalizeNumber(raw))
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(m.out, "Valor numérico inválido, intente de nuevo.")
	}
}

// askID repite la pregunta hasta obtener un id entero positivo.
func (m *menu) askID(label string) (int64, error) {
	for {
		raw, err := m.ask(label)
		if err != nil {
			return 0, err
		}
		id, err := parseID(raw)
		if err == nil {
			return id, nil
		}
		fmt.Fprintln(m.out, "ID inválido, intente de nuevo.")
	}
}

func (m *menu) createItem(ctx context.Context) error {
	name, err := m.ask("Nombre: ")
	if err != nil {
		return err
	}
	category, err := m.ask("Categoría: ")
	if err != nil {
		return err
	}
	unit, err := m.ask("Unidad: ")
	if err != nil {
		return err
	}
	zero := decimal.Zero
	qty, err := m.askDecimal("Cantidad inicial [0]: ", &zero)
	if err != nil {
		return err
	}
	price, err := m.askDecimal("Precio unitario [0]: ", &zero)
	if err != nil {
		return err
	}
	item, err := m.app.Items.CreateItem(ctx, inventory.CreateItemInputDTO{
		Name: name, Category: category, Unit: unit, Quantity: qty, UnitPrice: price,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Artículo #%d registrado.\n", item.ID)
	return nil
}

func (m *menu) deleteItem(ctx context.Context) error {
	id, err := m.askID("ID del artículo a eliminar: ")
	if err != nil {
		return err
	}
	if err := m.app.Items.DeleteItem(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Artículo #%d eliminado.\n", id)
	return nil
}

func (m *menu) updatePrice(ctx context.Context) error {
	id, err := m.askID("ID del artículo: ")
	if err != nil {
		return err
	}
	price, err := m.askDecimal("Nuevo precio unitario: ", nil)
	if err != nil {
		return err
	}
	item, err := m.app.Items.UpdatePrice(ctx, id, price)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Artículo #%d actualizado. Precio: %s\n", item.ID, item.UnitPrice.StringFixed(2))
	return nil
}

func (m *menu) listItems(ctx context.Context) error {
	items, err := m.app.Items.ListItems(ctx)
	if err != nil {
		return err
	}
	return printMarkdown(m.out, ItemsMarkdown("Artículos", items), m.app.Plain)
}

func (m *menu) search(ctx context.Context) error {
	term, err := m.ask("Buscar: ")
	if err != nil {
		return err
	}
	items, err := m.app.Items.SearchItems(ctx, term)
	if err != nil {
		return err
	}
	return printMarkdown(m.out, ItemsMarkdown(fmt.Sprintf("Búsqueda: %q", term), items), m.app.Plain)
}

func (m *menu) move(ctx context.Context, kind string) error {
	id, err := m.askID("ID del artículo: ")
	if err != nil {
		return err
	}
	qty, err := m.askDecimal("Cantidad: ", nil)
	if err != nil {
		return err
	}
	in := inventory.MovementInputDTO{ItemID: id, Type: kind, Quantity: qty}
	if kind == entity.MovementTypeIn {
		raw, err := m.ask("Nuevo precio unitario (vacío = mantener): ")
		if err != nil {
			return err
		}
		if raw != "" {
			price, err := parseDecimal("precio", raw)
			if err != nil {
				return err
			}
			in.UnitPrice = &price
		}
	}
	mov, err := m.app.Ledger.RecordMovement(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Movimiento #%d (%s) registrado. Cantidad resultante: %s\n",
		mov.ID, mov.Type, mov.ResultingQuantity.StringFixed(2))
	return nil
}

func (m *menu) movements(ctx context.Context) error {
	movs, err := m.app.Ledger.ListMovements(ctx)
	if err != nil {
		return err
	}
	return printMarkdown(m.out, MovementsMarkdown("Movimientos", movs), m.app.Plain)
}

func (m *menu) report(ctx context.Context) error {
	summary, err := m.app.Reports.Summary(ctx)
	if err != nil {
		return err
	}
	return printMarkdown(m.out, ReportMarkdown(summary), m.app.Plain)
}

// normalizeNumber acepta coma como separador decimal ("5,25" → "5.25").
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}
