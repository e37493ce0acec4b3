// Package pdf implementa el reporte de estoque en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app + fecha de generación             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: artículos / movimientos / valor total / giro      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Artículo | Categoría | Cant. | P.Unit | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTOQUE BAJO / VALOR POR CATEGORÍA / SERIE DE VALOR         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/pkg/currency"
)

var _ analytics.StockReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// maxSeriesRows la serie de valor se recorta a los últimos N puntos.
const maxSeriesRows = 30

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.StockReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title encabeza el documento.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "estoque"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(
	_ context.Context,
	summary *dto.StockSummaryDTO,
	items []dto.ItemResponse,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de estoque", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("ARTÍCULOS"))
	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("ESTOQUE BAJO (cantidad < %s)", currency.Quantity(summary.LowStockThreshold))))
	m.AddRows(lowStockRows(summary.LowStock)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("VALOR POR CATEGORÍA"))
	m.AddRows(categoryRows(summary.ValueByCategory)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("SERIE DE VALOR DEL ESTOQUE"))
	m.AddRows(seriesRows(summary.ValueSeries)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(summary *dto.StockSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de estoque", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+entity.FormatTimestamp(summary.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales del estoque y métricas de giro.
func summaryRow(s *dto.StockSummaryDTO) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Left, Left: 1})
	}
	return row.New(26).Add(
		col.New(3).Add(
			label("Artículos:"),
			label("Movimientos:"),
			label("Valor total:"),
		),
		col.New(3).Add(
			value(strconv.Itoa(s.ItemCount)),
			value(strconv.Itoa(s.MovementCount)),
			value(currency.Format(s.TotalStockValue)),
		),
		col.New(3).Add(
			label("Giro (salidas):"),
			label("Estoque de seguridad:"),
			label("Reposición media (días):"),
		),
		col.New(3).Add(
			value(currency.Quantity(s.Turnover.TotalOutbound)),
			value(currency.Quantity(s.Turnover.SuggestedSafetyStock)),
			value(s.Turnover.AverageReplenishmentDays.StringFixed(2)),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

// itemsHeaderRow: cabecera de la tabla de artículos.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("ID", 1, align.Center),
		h("Artículo", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Cant.", 2, align.Right),
		h("Precio Unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// itemRows: una fila por artículo.
func itemRows(items []dto.ItemResponse) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin artículos registrados.")}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(strconv.FormatInt(it.ID, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Category, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(currency.Quantity(it.Quantity)+" "+it.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(currency.Format(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(currency.Format(it.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func lowStockRows(items []dto.ItemResponse) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Ningún artículo por debajo del umbral.")}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(5).Add(
			col.New(8).Add(text.New(fmt.Sprintf("#%d %s", it.ID, it.Name), props.Text{Size: 8, Left: 2, Color: colorAlert})),
			col.New(4).Add(text.New(currency.Quantity(it.Quantity)+" "+it.Unit, props.Text{Size: 8, Align: align.Right, Right: 1, Color: colorAlert})),
		))
	}
	return result
}

func categoryRows(values []dto.CategoryValueDTO) []core.Row {
	if len(values) == 0 {
		return []core.Row{emptyRow("Sin categorías.")}
	}
	result := make([]core.Row, 0, len(values))
	for _, cv := range values {
		result = append(result, row.New(5).Add(
			col.New(8).Add(text.New(nonEmpty(cv.Category, "(sin categoría)"), props.Text{Size: 8, Left: 2})),
			col.New(4).Add(text.New(currency.Format(cv.Value), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return result
}

// seriesRows: últimos maxSeriesRows puntos de la serie.
func seriesRows(points []dto.ValuePointDTO) []core.Row {
	if len(points) == 0 {
		return []core.Row{emptyRow("Sin movimientos.")}
	}
	if len(points) > maxSeriesRows {
		points = points[len(points)-maxSeriesRows:]
	}
	result := make([]core.Row, 0, len(points))
	for _, p := range points {
		result = append(result, row.New(5).Add(
			col.New(8).Add(text.New(entity.FormatTimestamp(p.Timestamp), props.Text{Size: 8, Left: 2, Color: colorGray})),
			col.New(4).Add(text.New(currency.Format(p.Value), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func emptyRow(msg string) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Left: 2, Color: colorGray}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
