package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/pkg/currency"
	"github.com/shopspring/decimal"
)

const barWidth = 30

// printMarkdown renderiza md para la terminal con glamour; en modo plain lo escribe tal cual.
func printMarkdown(w io.Writer, md string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(110))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// escapeCell evita que un nombre con | rompa la tabla.
func escapeCell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// ItemsMarkdown tabla de artículos.
func ItemsMarkdown(title string, items []*entity.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("_Ningún artículo._\n")
		return b.String()
	}
	b.WriteString("| ID | Nombre | Categoría | Unidad | Cantidad | Precio unit. | Valor |\n")
	b.WriteString("|---:|---|---|---|---:|---:|---:|\n")
	for _, it := range items {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			it.ID, escapeCell(it.Name), escapeCell(it.Category), escapeCell(it.Unit),
			currency.Quantity(it.Quantity), currency.Format(it.UnitPrice), currency.Format(it.Value()))
	}
	return b.String()
}

// MovementsMarkdown tabla del ledger.
func MovementsMarkdown(title string, movs []*entity.Movement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(movs) == 0 {
		b.WriteString("_Sin movimientos._\n")
		return b.String()
	}
	b.WriteString("| ID | Fecha | Artículo | Tipo | Cantidad | Precio unit. | Cant. resultante | Valor total |\n")
	b.WriteString("|---:|---|---:|---|---:|---:|---:|---:|\n")
	for _, m := range movs {
		fmt.Fprintf(&b, "| %d | %s | %d | %s | %s | %s | %s | %s |\n",
			m.ID, entity.FormatTimestamp(m.Timestamp), m.ItemID, m.Type,
			currency.Quantity(m.Quantity), currency.Format(m.UnitPrice),
			currency.Quantity(m.ResultingQuantity), currency.Format(m.ResultingTotalValue))
	}
	return b.String()
}

// ReportMarkdown reporte completo: totales, estoque bajo, giro y gráficos de barras en texto.
func ReportMarkdown(s *dto.StockSummaryDTO) string {
	var b strings.Builder
	b.WriteString("# Reporte de estoque\n\n")
	fmt.Fprintf(&b, "Generado: %s\n\n", entity.FormatTimestamp(s.GeneratedAt))
	fmt.Fprintf(&b, "- Artículos: **%d**\n", s.ItemCount)
	fmt.Fprintf(&b, "- Movimientos: **%d**\n", s.MovementCount)
	fmt.Fprintf(&b, "- Valor total del estoque: **%s**\n\n", currency.Format(s.TotalStockValue))

	fmt.Fprintf(&b, "## Estoque bajo (cantidad < %s)\n\n", currency.Quantity(s.LowStockThreshold))
	if len(s.LowStock) == 0 {
		b.WriteString("_Ningún artículo por debajo del umbral._\n\n")
	} else {
		for _, it := range s.LowStock {
			fmt.Fprintf(&b, "- #%d %s: %s %s\n", it.ID, escapeCell(it.Name), currency.Quantity(it.Quantity), it.Unit)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Giro\n\n")
	fmt.Fprintf(&b, "- Total de salidas: **%s**\n", currency.Quantity(s.Turnover.TotalOutbound))
	fmt.Fprintf(&b, "- Estoque de seguridad sugerido: **%s**\n", currency.Quantity(s.Turnover.SuggestedSafetyStock))
	fmt.Fprintf(&b, "- Reposición media: **%s días**\n\n", s.Turnover.AverageReplenishmentDays.StringFixed(2))

	b.WriteString("## Valor por categoría\n\n")
	labels := make([]string, 0, len(s.ValueByCategory))
	values := make([]decimal.Decimal, 0, len(s.ValueByCategory))
	for _, cv := range s.ValueByCategory {
		label := cv.Category
		if label == "" {
			label = "(sin categoría)"
		}
		labels = append(labels, label)
		values = append(values, cv.Value)
	}
	writeBars(&b, labels, values)

	b.WriteString("## Evolución del valor del estoque\n\n")
	labels = labels[:0]
	values = values[:0]
	for _, p := range s.ValueSeries {
		labels = append(labels, entity.FormatTimestamp(p.Timestamp))
		values = append(values, p.Value)
	}
	writeBars(&b, labels, values)
	return b.String()
}

// writeBars gráfico de barras horizontal en un bloque de código.
func writeBars(b *strings.Builder, labels []string, values []decimal.Decimal) {
	if len(values) == 0 {
		b.WriteString("_Sin datos._\n\n")
		return
	}
	maxValue := decimal.Zero
	width := 0
	for i, v := range values {
		if v.GreaterThan(maxValue) {
			maxValue = v
		}
		if n := len([]rune(labels[i])); n > width {
			width = n
		}
	}
	b.WriteString("```\n")
	for i, v := range values {
		n := 0
		if maxValue.IsPositive() {
			n = int(v.Mul(decimal.NewFromInt(barWidth)).Div(maxValue).Round(0).IntPart())
		}
		pad := strings.Repeat(" ", width-len([]rune(labels[i])))
		fmt.Fprintf(b, "%s%s │%s %s\n", labels[i], pad, strings.Repeat("█", n), currency.Format(v))
	}
	b.WriteString("```\n\n")
}
