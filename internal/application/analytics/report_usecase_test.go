package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/infrastructure/memory"
)

var generatedAt = time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)

type fixture struct {
	items   *inventory.ItemUseCase
	ledger  *inventory.RegisterMovementUseCase
	reports *analytics.ReportUseCase
	store   *memory.Store
}

// newFixture: cada movimiento avanza step en el reloj del ledger.
func newFixture(t *testing.T, step time.Duration) *fixture {
	t.Helper()
	store := memory.New()
	cur := time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local)
	clock := func() time.Time {
		now := cur
		cur = cur.Add(step)
		return now
	}
	ledger := inventory.NewRegisterMovementUseCase(store, store.Items(), store.Movements(), inventory.WithClock(clock))
	return &fixture{
		store:   store,
		ledger:  ledger,
		items:   inventory.NewItemUseCase(store, store.Items(), ledger),
		reports: analytics.NewReportUseCase(store.Items(), store.Movements(), decimal.NewFromInt(5), analytics.WithClock(func() time.Time { return generatedAt })),
	}
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func (f *fixture) create(t *testing.T, name, category, qty, price string) *entity.Item {
	t.Helper()
	it, err := f.items.CreateItem(context.Background(), inventory.CreateItemInputDTO{
		Name: name, Category: category, Quantity: d(qty), UnitPrice: d(price),
	})
	require.NoError(t, err)
	return it
}

func (f *fixture) move(t *testing.T, id int64, typ, qty string) {
	t.Helper()
	_, err := f.ledger.RecordMovement(context.Background(), inventory.MovementInputDTO{ItemID: id, Type: typ, Quantity: d(qty)})
	require.NoError(t, err)
}

func TestReports_StoreVacio(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	low, err := f.reports.LowStockItems(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, low)
	assert.Empty(t, low)

	turnover, err := f.reports.TotalOutboundQuantity(ctx)
	require.NoError(t, err)
	assert.True(t, turnover.IsZero())

	safety, err := f.reports.SuggestedSafetyStock(ctx)
	require.NoError(t, err)
	assert.True(t, safety.IsZero())

	days, err := f.reports.AverageReplenishmentDays(ctx)
	require.NoError(t, err)
	assert.True(t, days.IsZero())

	series, err := f.reports.StockValueTimeSeries(ctx)
	require.NoError(t, err)
	assert.Empty(t, series)

	byCat, err := f.reports.ValueByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, byCat)
}

func TestLowStockItems(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()
	f.create(t, "A", "", "7", "1")
	b := f.create(t, "B", "", "4", "1")
	c := f.create(t, "C", "", "0", "1")
	f.create(t, "D", "", "5", "1")

	low, err := f.reports.LowStockItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, c.ID, low[0].ID)
	assert.Equal(t, b.ID, low[1].ID)

	ten := d("10")
	low, err = f.reports.LowStockItems(ctx, &ten)
	require.NoError(t, err)
	assert.Len(t, low, 4)

	neg := d("-1")
	_, err = f.reports.LowStockItems(ctx, &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTurnoverYReposicion(t *testing.T) {
	// 1 día entre movimientos: init(d0), init(d1), saida 4 (d2), saida 6 (d3), entrada 5 (d4).
	f := newFixture(t, 24*time.Hour)
	ctx := context.Background()
	a := f.create(t, "A", "x", "10", "2")
	f.create(t, "B", "x", "10", "1")
	f.move(t, a.ID, entity.MovementTypeOut, "4")
	f.move(t, a.ID, entity.MovementTypeOut, "6")
	f.move(t, a.ID, entity.MovementTypeIn, "5")

	total, err := f.reports.TotalOutboundQuantity(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("10")))

	safety, err := f.reports.SuggestedSafetyStock(ctx)
	require.NoError(t, err)
	assert.True(t, safety.Equal(d("1")))

	// 4 días de ledger / giro 10 = 0.4
	days, err := f.reports.AverageReplenishmentDays(ctx)
	require.NoError(t, err)
	assert.True(t, days.Equal(d("0.4")), days.String())

	tv, err := f.reports.Turnover(ctx)
	require.NoError(t, err)
	assert.True(t, tv.TotalOutbound.Equal(total))
	assert.True(t, tv.SuggestedSafetyStock.Equal(safety))
	assert.True(t, tv.AverageReplenishmentDays.Equal(days))
}

func TestAverageReplenishmentDays_SinSalidas(t *testing.T) {
	f := newFixture(t, 24*time.Hour)
	a := f.create(t, "A", "", "1", "1")
	f.move(t, a.ID, entity.MovementTypeIn, "3")

	days, err := f.reports.AverageReplenishmentDays(context.Background())
	require.NoError(t, err)
	assert.True(t, days.IsZero())
}

func TestStockValueTimeSeries(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()
	rice := f.create(t, "Arroz", "Grãos", "10", "5")
	f.move(t, rice.ID, entity.MovementTypeIn, "5")
	f.move(t, rice.ID, entity.MovementTypeOut, "3")

	series, err := f.reports.StockValueTimeSeries(ctx)
	require.NoError(t, err)
	require.Len(t, series, 3)
	want := []string{"50", "75", "60"}
	for i, p := range series {
		assert.True(t, p.Value.Equal(d(want[i])), "punto %d = %s", i, p.Value)
		if i > 0 {
			assert.True(t, p.Timestamp.After(series[i-1].Timestamp))
		}
	}
}

func TestValueByCategory(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx := context.Background()
	f.create(t, "a", "A", "2", "10")
	f.create(t, "b", "B", "3", "4")

	byCat, err := f.reports.ValueByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	assert.True(t, byCat["A"].Equal(d("20")))
	assert.True(t, byCat["B"].Equal(d("12")))

	list, err := f.reports.CategoryValues(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Category)
	assert.Equal(t, "B", list[1].Category)
}

func TestSummary(t *testing.T) {
	f := newFixture(t, time.Hour)
	rice := f.create(t, "Arroz", "Grãos", "10", "5")
	f.create(t, "Sal", "Mercearia", "2", "3")
	f.move(t, rice.ID, entity.MovementTypeOut, "7")

	s, err := f.reports.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, generatedAt, s.GeneratedAt)
	assert.Equal(t, 2, s.ItemCount)
	assert.Equal(t, 3, s.MovementCount)
	assert.True(t, s.TotalStockValue.Equal(d("21")))
	assert.True(t, s.Turnover.TotalOutbound.Equal(d("7")))
	assert.True(t, s.LowStockThreshold.Equal(d("5")))
	require.Len(t, s.LowStock, 2)
	assert.Equal(t, "Sal", s.LowStock[0].Name)
	assert.Equal(t, "Arroz", s.LowStock[1].Name)
	assert.Len(t, s.ValueByCategory, 2)
	assert.Len(t, s.ValueSeries, 3)
}

func TestNewReportUseCase_UmbralNegativo(t *testing.T) {
	store := memory.New()
	uc := analytics.NewReportUseCase(store.Items(), store.Movements(), d("-3"))
	assert.True(t, uc.Threshold().Equal(analytics.DefaultLowStockThreshold))
}
