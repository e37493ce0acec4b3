package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/pkg/currency"
	"github.com/shopspring/decimal"
)

// parseDecimal interpreta s como número; acepta coma decimal ("5,25").
func parseDecimal(field, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(normalizeNumber(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s debe ser numérico", domain.ErrInvalidInput, field)
	}
	return v, nil
}

// ── list ──────────────────────────────────────────────────────────────────────

type listCmd struct {
	app *App
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "lista los artículos del estoque" }
func (*listCmd) Usage() string {
	return `estoque list

  Lista todos los artículos ordenados por id, con cantidad, precio unitario y valor.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	items, err := c.app.Items.ListItems(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := printMarkdown(c.app.stdout(), ItemsMarkdown("Artículos", items), c.app.Plain); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

// ── add ───────────────────────────────────────────────────────────────────────

type addCmd struct {
	app      *App
	name     string
	category string
	unit     string
	quantity string
	price    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "registra un artículo (y su movimiento init)" }
func (*addCmd) Usage() string {
	return `estoque add -name <nombre> [-category <categoría>] [-unit <unidad>] [-qty <cantidad>] [-price <precio>]

  Registra un artículo nuevo. La cantidad inicial queda en el ledger como movimiento init.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Nombre del artículo (obligatorio).")
	f.StringVar(&c.category, "category", "", "Categoría.")
	f.StringVar(&c.unit, "unit", "", "Unidad de medida (kg, un, l...).")
	f.StringVar(&c.quantity, "qty", "0", "Cantidad inicial.")
	f.StringVar(&c.price, "price", "0", "Precio unitario.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	qty, err := parseDecimal("qty", c.quantity)
	if err != nil {
		return c.app.fail(err)
	}
	price, err := parseDecimal("price", c.price)
	if err != nil {
		return c.app.fail(err)
	}
	item, err := c.app.Items.CreateItem(ctx, inventory.CreateItemInputDTO{
		Name: c.name, Category: c.category, Unit: c.unit, Quantity: qty, UnitPrice: price,
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.stdout(), "Artículo #%d registrado: %s\n", item.ID, item.Name)
	return subcommands.ExitSuccess
}

// ── delete ────────────────────────────────────────────────────────────────────

type deleteCmd struct {
	app *App
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "borra un artículo y su historial" }
func (*deleteCmd) Usage() string {
	return `estoque delete <id>

  Borra el artículo y todos sus movimientos.
`
}
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.app.stderr(), c.Usage())
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	if err := c.app.Items.DeleteItem(ctx, id); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.stdout(), "Artículo #%d eliminado.\n", id)
	return subcommands.ExitSuccess
}

// ── update-price ──────────────────────────────────────────────────────────────

type updatePriceCmd struct {
	app *App
}

func (*updatePriceCmd) Name() string     { return "update-price" }
func (*updatePriceCmd) Synopsis() string { return "cambia el precio unitario de un artículo" }
func (*updatePriceCmd) Usage() string {
	return `estoque update-price <id> <precio>

  Cambia el precio unitario; la cantidad queda igual y no se registra movimiento.
`
}
func (*updatePriceCmd) SetFlags(*flag.FlagSet) {}

func (c *updatePriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(c.app.stderr(), c.Usage())
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	price, err := parseDecimal("precio", f.Arg(1))
	if err != nil {
		return c.app.fail(err)
	}
	item, err := c.app.Items.UpdatePrice(ctx, id, price)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.stdout(), "Artículo #%d: precio %s, valor %s\n",
		item.ID, currency.Format(item.UnitPrice), currency.Format(item.Value()))
	return subcommands.ExitSuccess
}

// ── search ────────────────────────────────────────────────────────────────────

type searchCmd struct {
	app *App
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "busca artículos por nombre o categoría" }
func (*searchCmd) Usage() string {
	return `estoque search <término>

  Busca sin distinguir mayúsculas en nombre y categoría. Sin término lista todo.
`
}
func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	term := ""
	if f.NArg() > 0 {
		term = f.Arg(0)
	}
	items, err := c.app.Items.SearchItems(ctx, term)
	if err != nil {
		return c.app.fail(err)
	}
	if err := printMarkdown(c.app.stdout(), ItemsMarkdown(fmt.Sprintf("Búsqueda: %q", term), items), c.app.Plain); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

// ── move ──────────────────────────────────────────────────────────────────────

type moveCmd struct {
	app      *App
	item     int64
	kind     string
	quantity string
	price    string
}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "registra una entrada o salida" }
func (*moveCmd) Usage() string {
	return `estoque move -item <id> -type entrada|saida -qty <cantidad> [-price <precio>]

  Registra un movimiento. -price solo se acepta en entradas y actualiza el precio del artículo.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.item, "item", 0, "ID del artículo.")
	f.StringVar(&c.kind, "type", "", "Tipo de movimiento: entrada o saida.")
	f.StringVar(&c.quantity, "qty", "", "Cantidad (mayor que cero).")
	f.StringVar(&c.price, "price", "", "Nuevo precio unitario (solo entradas).")
}

func (c *moveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	qty, err := parseDecimal("qty", c.quantity)
	if err != nil {
		return c.app.fail(err)
	}
	in := inventory.MovementInputDTO{ItemID: c.item, Type: c.kind, Quantity: qty}
	if c.price != "" {
		price, err := parseDecimal("price", c.price)
		if err != nil {
			return c.app.fail(err)
		}
		in.UnitPrice = &price
	}
	mov, err := c.app.Ledger.RecordMovement(ctx, in)
	if err != nil {
		return c.app.fail(err)
	}
	printMovement(c.app, mov)
	return subcommands.ExitSuccess
}

func printMovement(app *App, mov *entity.Movement) {
	fmt.Fprintf(app.stdout(), "Movimiento #%d (%s) registrado. Cantidad resultante: %s. Valor total del estoque: %s\n",
		mov.ID, mov.Type, currency.Quantity(mov.ResultingQuantity), currency.Format(mov.ResultingTotalValue))
}

// ── movements ─────────────────────────────────────────────────────────────────

type movementsCmd struct {
	app  *App
	item int64
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "muestra el ledger de movimientos" }
func (*movementsCmd) Usage() string {
	return `estoque movements [-item <id>]

  Muestra los movimientos en orden cronológico; con -item solo los de ese artículo.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.item, "item", 0, "Filtrar por artículo.")
}

func (c *movementsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		movs  []*entity.Movement
		err   error
		title = "Movimientos"
	)
	if c.item > 0 {
		movs, err = c.app.Ledger.ListItemMovements(ctx, c.item)
		title = fmt.Sprintf("Movimientos del artículo #%d", c.item)
	} else {
		movs, err = c.app.Ledger.ListMovements(ctx)
	}
	if err != nil {
		return c.app.fail(err)
	}
	if err := printMarkdown(c.app.stdout(), MovementsMarkdown(title, movs), c.app.Plain); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

// ── report ────────────────────────────────────────────────────────────────────

type reportCmd struct {
	app *App
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "reporte de valor, estoque bajo y giro" }
func (*reportCmd) Usage() string {
	return `estoque report

  Muestra el valor total, los artículos con estoque bajo, el giro, el valor por
  categoría y la evolución del valor del estoque.
`
}
func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := c.app.Reports.Summary(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := printMarkdown(c.app.stdout(), ReportMarkdown(summary), c.app.Plain); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

// ── value ─────────────────────────────────────────────────────────────────────

type valueCmd struct {
	app *App
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "valor total del estoque" }
func (*valueCmd) Usage() string {
	return `estoque value

  Imprime la suma de cantidad × precio unitario de todos los artículos.
`
}
func (*valueCmd) SetFlags(*flag.FlagSet) {}

func (c *valueCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	total, err := c.app.Valuation.TotalStockValue(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.stdout(), "Valor total del estoque: %s\n", currency.Format(total))
	return subcommands.ExitSuccess
}

// ── export-pdf ────────────────────────────────────────────────────────────────

type exportPDFCmd struct {
	app    *App
	output string
}

func (*exportPDFCmd) Name() string     { return "export-pdf" }
func (*exportPDFCmd) Synopsis() string { return "exporta el reporte de estoque en PDF" }
func (*exportPDFCmd) Usage() string {
	return `estoque export-pdf [-o <archivo.pdf>]

  Genera el reporte en PDF. Sin -o usa estoque-<fecha>.pdf en el directorio actual.
`
}

func (c *exportPDFCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Ruta del archivo de salida.")
}

func (c *exportPDFCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, filename, err := c.app.PDF.ExportStockReport(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if c.output != "" {
		filename = c.output
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return c.app.fail(fmt.Errorf("escribir %s: %w", filename, err))
	}
	fmt.Fprintf(c.app.stdout(), "Reporte exportado en %s\n", filename)
	return subcommands.ExitSuccess
}

// ── serve ─────────────────────────────────────────────────────────────────────

type serveCmd struct {
	app *App
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "expone el estoque por HTTP (JSON)" }
func (*serveCmd) Usage() string {
	return `estoque serve

  Inicia la API HTTP en HTTP_HOST:HTTP_PORT hasta recibir SIGINT/SIGTERM.
`
}
func (*serveCmd) SetFlags(*flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.app.Serve == nil {
		fmt.Fprintln(c.app.stderr(), "servidor HTTP no configurado")
		return subcommands.ExitFailure
	}
	if err := c.app.Serve(ctx); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q debe ser un entero positivo", domain.ErrInvalidInput, s)
	}
	return id, nil
}
