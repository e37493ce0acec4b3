package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/dto"
)

type stubGenerator struct {
	summary *dto.StockSummaryDTO
	items   []dto.ItemResponse
	err     error
}

func (g *stubGenerator) GenerateStockReportPDF(_ context.Context, s *dto.StockSummaryDTO, items []dto.ItemResponse) ([]byte, error) {
	g.summary, g.items = s, items
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-stub"), nil
}

func TestExportStockReport(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.create(t, "Arroz", "Grãos", "10", "5")
	f.create(t, "Sal", "", "1", "2")

	gen := &stubGenerator{}
	uc := analytics.NewPDFUseCase(f.reports, f.store.Items(), gen)

	out, filename, err := uc.ExportStockReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), out)
	assert.Equal(t, "estoque-20261016-120000.pdf", filename)
	require.NotNil(t, gen.summary)
	assert.Equal(t, 2, gen.summary.ItemCount)
	require.Len(t, gen.items, 2)
	assert.Equal(t, "Arroz", gen.items[0].Name)
}

func TestExportStockReport_FallaGenerador(t *testing.T) {
	f := newFixture(t, time.Minute)
	boom := errors.New("fuente no disponible")
	uc := analytics.NewPDFUseCase(f.reports, f.store.Items(), &stubGenerator{err: boom})

	_, _, err := uc.ExportStockReport(context.Background())
	assert.ErrorIs(t, err, boom)
}
