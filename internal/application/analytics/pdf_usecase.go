package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain/repository"
)

// StockReportPDFGenerator puerto de salida: arma el PDF del reporte de estoque.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, summary *dto.StockSummaryDTO, items []dto.ItemResponse) ([]byte, error)
}

// PDFUseCase exporta el resumen del estoque y la lista de artículos como PDF.
type PDFUseCase struct {
	reports   *ReportUseCase
	itemRepo  repository.ItemRepository
	generator StockReportPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(reports *ReportUseCase, itemRepo repository.ItemRepository, generator StockReportPDFGenerator) *PDFUseCase {
	return &PDFUseCase{reports: reports, itemRepo: itemRepo, generator: generator}
}

// ExportStockReport devuelve los bytes del PDF y un nombre de archivo con la fecha de generación.
func (uc *PDFUseCase) ExportStockReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	summary, err := uc.reports.Summary(ctx)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, "", wrap("pdf: listar artículos", err)
	}

	pdfBytes, err = uc.generator.GenerateStockReportPDF(ctx, summary, dto.ToItemListResponse(items).Items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	filename = fmt.Sprintf("estoque-%s.pdf", summary.GeneratedAt.Format("20060102-150405"))
	return pdfBytes, filename, nil
}
