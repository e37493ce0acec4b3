package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// ReportHandler expone los reportes (solo lectura).
type ReportHandler struct {
	reports   *analytics.ReportUseCase
	valuation *inventory.ValuationUseCase
	pdf       *analytics.PDFUseCase
}

// NewReportHandler construye el handler. pdf puede ser nil (ruta deshabilitada).
func NewReportHandler(reports *analytics.ReportUseCase, valuation *inventory.ValuationUseCase, pdf *analytics.PDFUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, valuation: valuation, pdf: pdf}
}

// StockValue godoc
// @Summary      Valor total del estoque
// @Tags         reports
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/reports/stock-value [get]
func (h *ReportHandler) StockValue(c *fiber.Ctx) error {
	total, err := h.valuation.TotalStockValue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total_stock_value": total})
}

// LowStock godoc
// @Summary      Artículos con estoque bajo
// @Tags         reports
// @Produce      json
// @Param        threshold  query  number  false  "Umbral (por defecto el configurado)"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	var threshold *decimal.Decimal
	if raw := c.Query("threshold"); raw != "" {
		t, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "threshold debe ser numérico")
		}
		threshold = &t
	}
	list, err := h.reports.LowStockItems(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemListResponse(list))
}

// Turnover godoc
// @Summary      Giro, estoque de seguridad y reposición media
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.TurnoverDTO
// @Router       /api/reports/turnover [get]
func (h *ReportHandler) Turnover(c *fiber.Ctx) error {
	out, err := h.reports.Turnover(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ValueSeries godoc
// @Summary      Serie temporal del valor del estoque
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.ValuePointDTO
// @Router       /api/reports/value-series [get]
func (h *ReportHandler) ValueSeries(c *fiber.Ctx) error {
	out, err := h.reports.StockValueTimeSeries(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ValueByCategory godoc
// @Summary      Valor del estoque por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.CategoryValueDTO
// @Router       /api/reports/value-by-category [get]
func (h *ReportHandler) ValueByCategory(c *fiber.Ctx) error {
	out, err := h.reports.CategoryValues(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del estoque
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StockSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reports.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Reporte de estoque en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.ExportStockReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
