package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/internal/domain"
	"github.com/jhoicas/estoque/internal/domain/entity"
	"github.com/jhoicas/estoque/internal/domain/repository"
	"github.com/jhoicas/estoque/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeClock avanza un segundo por llamada para que cada movimiento tenga su propio timestamp.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	store     *memory.Store
	items     *inventory.ItemUseCase
	ledger    *inventory.RegisterMovementUseCase
	valuation *inventory.ValuationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithTx(t, nil)
}

// newFixtureWithTx permite envolver el TxRunner del store (inyección de fallas).
func newFixtureWithTx(t *testing.T, wrap func(inventory.TxRunner) inventory.TxRunner) *fixture {
	t.Helper()
	store := memory.New()
	var tx inventory.TxRunner = store
	if wrap != nil {
		tx = wrap(store)
	}
	clock := &fakeClock{t: time.Date(2026, 10, 16, 8, 0, 0, 0, time.Local)}
	ledger := inventory.NewRegisterMovementUseCase(tx, store.Items(), store.Movements(), inventory.WithClock(clock.Now))
	return &fixture{
		store:     store,
		items:     inventory.NewItemUseCase(tx, store.Items(), ledger, inventory.WithClock(clock.Now)),
		ledger:    ledger,
		valuation: inventory.NewValuationUseCase(store.Items()),
	}
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func (f *fixture) create(t *testing.T, name, category string, qty, price string) *entity.Item {
	t.Helper()
	it, err := f.items.CreateItem(context.Background(), inventory.CreateItemInputDTO{
		Name: name, Category: category, Unit: "un", Quantity: d(qty), UnitPrice: d(price),
	})
	require.NoError(t, err)
	return it
}

func (f *fixture) move(id int64, typ, qty string) (*entity.Movement, error) {
	return f.ledger.RecordMovement(context.Background(), inventory.MovementInputDTO{ItemID: id, Type: typ, Quantity: d(qty)})
}

// failingListTx hace fallar List del repo de artículos dentro de la tx (la valoración).
type failingListTx struct {
	inner inventory.TxRunner
	err   error
}

type failingListRepo struct {
	repository.ItemRepository
	err error
}

func (r failingListRepo) List(context.Context) ([]*entity.Item, error) { return nil, r.err }

func (f failingListTx) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	return f.inner.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
		return fn(failingListRepo{ItemRepository: items, err: f.err}, movs)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Item Store
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_MovimientoInit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Feijão", "Grãos", "2", "8")
	it := f.create(t, "Arroz", "Grãos", "10", "5.00")

	movs, err := f.ledger.ListItemMovements(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	first := movs[0]
	assert.Equal(t, entity.MovementTypeInit, first.Type)
	assert.True(t, first.Quantity.Equal(d("10")))
	assert.True(t, first.ResultingQuantity.Equal(it.Quantity))
	assert.True(t, first.UnitPrice.Equal(d("5")))

	total, err := f.valuation.TotalStockValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("66")))
	assert.True(t, first.ResultingTotalValue.Equal(total), "el snapshot del init es la valoración post-creación")
}

func TestCreateItem_CantidadCero(t *testing.T) {
	f := newFixture(t)
	it := f.create(t, "Sal", "", "0", "2")
	movs, err := f.ledger.ListItemMovements(context.Background(), it.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.IsZero())
}

func TestCreateItem_Validacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := []inventory.CreateItemInputDTO{
		{Name: "   "},
		{Name: "x", Quantity: d("-1")},
		{Name: "x", UnitPrice: d("-0.01")},
	}
	for _, in := range cases {
		_, err := f.items.CreateItem(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	list, err := f.items.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateItem_NormalizaCampos(t *testing.T) {
	f := newFixture(t)
	it := f.create(t, "  Arroz  ", " Grãos ", "1", "1")
	got, err := f.items.GetItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arroz", got.Name)
	assert.Equal(t, "Grãos", got.Category)
}

func TestCreateItem_FallaDeValoracionHaceRollback(t *testing.T) {
	boom := errors.New("disco lleno")
	f := newFixtureWithTx(t, func(tx inventory.TxRunner) inventory.TxRunner { return failingListTx{inner: tx, err: boom} })

	_, err := f.items.CreateItem(context.Background(), inventory.CreateItemInputDTO{Name: "Arroz", Quantity: d("1")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))

	list, err := f.items.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "ni el artículo ni el init deben quedar persistidos")
}

func TestIDsMonotonicos(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "A", "", "1", "1")
	b := f.create(t, "B", "", "1", "1")
	require.NoError(t, f.items.DeleteItem(context.Background(), b.ID))
	c := f.create(t, "C", "", "1", "1")
	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID, "un ID borrado no se reutiliza")
}

func TestGetItem_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.items.GetItem(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDeleteItem_CascadaDeMovimientos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.create(t, "Arroz", "Grãos", "10", "5")
	beans := f.create(t, "Feijão", "Grãos", "3", "8")
	_, err := f.move(rice.ID, entity.MovementTypeIn, "5")
	require.NoError(t, err)

	require.NoError(t, f.items.DeleteItem(ctx, rice.ID))

	_, err = f.items.GetItem(ctx, rice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	movs, err := f.ledger.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, beans.ID, movs[0].ItemID)

	assert.ErrorIs(t, f.items.DeleteItem(ctx, rice.ID), domain.ErrNotFound)
}

func TestSearchItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "feijão preto", "Grãos", "1", "1")
	f.create(t, "Óleo", "Mercearia", "1", "1")
	f.create(t, "Arroz", "GRÃOS", "1", "1")
	f.create(t, "Açúcar", "Mercearia", "1", "1")

	got, err := f.items.SearchItems(ctx, "grãos")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Arroz", got[0].Name)
	assert.Equal(t, "feijão preto", got[1].Name)

	got, err = f.items.SearchItems(ctx, "ÓLEO")
	require.NoError(t, err)
	require.Len(t, got, 1)

	all, err := f.items.SearchItems(ctx, "")
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, it := range all {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Açúcar", "Arroz", "feijão preto", "Óleo"}, names)

	none, err := f.items.SearchItems(ctx, "café")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateQuantityAndPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.create(t, "Arroz", "", "1", "1")

	require.NoError(t, f.items.UpdateQuantityAndPrice(ctx, it.ID, d("4"), d("2.5")))
	got, err := f.items.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.Value().Equal(d("10")))

	assert.ErrorIs(t, f.items.UpdateQuantityAndPrice(ctx, it.ID, d("-1"), d("1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.items.UpdateQuantityAndPrice(ctx, 99, d("1"), d("1")), domain.ErrNotFound)
}

func TestUpdatePrice_ConservaCantidadYLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.create(t, "Arroz", "Grãos", "10", "5")

	got, err := f.items.UpdatePrice(ctx, rice.ID, d("6"))
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("10")))
	assert.True(t, got.UnitPrice.Equal(d("6")))

	movs, err := f.ledger.ListItemMovements(ctx, rice.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].ResultingQuantity.Equal(got.Quantity))

	total, err := f.valuation.TotalStockValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("60")))

	// El movimiento siguiente valúa con el precio nuevo.
	in, err := f.move(rice.ID, entity.MovementTypeIn, "5")
	require.NoError(t, err)
	assert.True(t, in.UnitPrice.Equal(d("6")))
	assert.True(t, in.ResultingTotalValue.Equal(d("90")))
}

func TestUpdatePrice_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.create(t, "Arroz", "", "1", "1")

	_, err := f.items.UpdatePrice(ctx, rice.ID, d("-0.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.items.UpdatePrice(ctx, 99, d("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.items.GetItem(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, got.UnitPrice.Equal(d("1")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Movement Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EscenarioArroz(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.create(t, "Arroz", "Grãos", "10", "5.00")

	total, err := f.valuation.TotalStockValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("50")))

	in, err := f.move(rice.ID, entity.MovementTypeIn, "5")
	require.NoError(t, err)
	assert.True(t, in.ResultingQuantity.Equal(d("15")))
	assert.True(t, in.ResultingTotalValue.Equal(d("75")))
	assert.True(t, in.UnitPrice.Equal(d("5")))

	_, err = f.move(rice.ID, entity.MovementTypeOut, "20")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	got, err := f.items.GetItem(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("15")))

	movs, err := f.ledger.ListMovements(ctx)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "la salida rechazada no deja movimiento")
}

func TestRecordMovement_CantidadIgualUltimoMovimiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.create(t, "Arroz", "", "10", "2")
	for _, step := range []struct{ typ, qty string }{
		{entity.MovementTypeIn, "3"},
		{entity.MovementTypeOut, "7.5"},
		{entity.MovementTypeOut, "5.5"},
		{entity.MovementTypeIn, "1"},
	} {
		_, err := f.move(it.ID, step.typ, step.qty)
		require.NoError(t, err)
	}

	got, err := f.items.GetItem(ctx, it.ID)
	require.NoError(t, err)
	movs, err := f.ledger.ListItemMovements(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, movs, 5)
	last := movs[len(movs)-1]
	assert.True(t, got.Quantity.Equal(last.ResultingQuantity))
	assert.True(t, got.Quantity.Equal(d("1")))
}

func TestRecordMovement_SalidaDeTodoElEstoque(t *testing.T) {
	f := newFixture(t)
	it := f.create(t, "Arroz", "", "4", "2")
	mov, err := f.move(it.ID, entity.MovementTypeOut, "4")
	require.NoError(t, err)
	assert.True(t, mov.ResultingQuantity.IsZero())
	assert.True(t, mov.ResultingTotalValue.IsZero())
}

func TestRecordMovement_IdaYVuelta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.create(t, "Arroz", "", "10", "5")
	f.create(t, "Feijão", "", "2", "8")
	before, err := f.valuation.TotalStockValue(ctx)
	require.NoError(t, err)

	_, err = f.move(it.ID, entity.MovementTypeIn, "7")
	require.NoError(t, err)
	out, err := f.move(it.ID, entity.MovementTypeOut, "7")
	require.NoError(t, err)

	got, err := f.items.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("10")))
	assert.True(t, out.ResultingTotalValue.Equal(before))
}

func TestRecordMovement_SnapshotIncluyeOtrosArticulos(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "A", "", "2", "10")
	f.create(t, "B", "", "3", "4")
	mov, err := f.move(a.ID, entity.MovementTypeOut, "1")
	require.NoError(t, err)
	assert.True(t, mov.ResultingTotalValue.Equal(d("22")))
}

func TestRecordMovement_EntradaConNuevoPrecio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.create(t, "Arroz", "", "10", "5")
	price := d("6")
	mov, err := f.ledger.RecordMovement(ctx, inventory.MovementInputDTO{
		ItemID: it.ID, Type: entity.MovementTypeIn, Quantity: d("10"), UnitPrice: &price,
	})
	require.NoError(t, err)
	assert.True(t, mov.UnitPrice.Equal(price))
	assert.True(t, mov.ResultingTotalValue.Equal(d("120")))
}

func TestRecordMovement_Validacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	it := f.create(t, "Arroz", "", "10", "5")
	neg := d("-1")
	price := d("3")

	cases := []inventory.MovementInputDTO{
		{ItemID: it.ID, Type: entity.MovementTypeIn, Quantity: d("0")},
		{ItemID: it.ID, Type: entity.MovementTypeOut, Quantity: d("-2")},
		{ItemID: it.ID, Type: entity.MovementTypeInit, Quantity: d("1")},
		{ItemID: it.ID, Type: "ajuste", Quantity: d("1")},
		{ItemID: it.ID, Type: entity.MovementTypeIn, Quantity: d("1"), UnitPrice: &neg},
		{ItemID: it.ID, Type: entity.MovementTypeOut, Quantity: d("1"), UnitPrice: &price},
	}
	for _, in := range cases {
		_, err := f.ledger.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
	movs, err := f.ledger.ListMovements(ctx)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestRecordMovement_ArticuloInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.move(404, entity.MovementTypeIn, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_FallaDeValoracionHaceRollback(t *testing.T) {
	boom := errors.New("io")
	var fail bool
	f := newFixtureWithTx(t, func(tx inventory.TxRunner) inventory.TxRunner {
		return switchTx{inner: tx, failing: failingListTx{inner: tx, err: boom}, fail: &fail}
	})
	ctx := context.Background()
	it := f.create(t, "Arroz", "", "10", "5")

	fail = true
	_, err := f.move(it.ID, entity.MovementTypeOut, "3")
	assert.ErrorIs(t, err, domain.ErrStorage)

	got, err := f.items.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("10")), "la actualización de cantidad se descarta con la tx")
}

type switchTx struct {
	inner, failing inventory.TxRunner
	fail           *bool
}

func (s switchTx) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	if *s.fail {
		return s.failing.Run(ctx, fn)
	}
	return s.inner.Run(ctx, fn)
}

func TestListMovements_OrdenYTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A", "", "5", "1")
	b := f.create(t, "B", "", "5", "1")
	_, err := f.move(a.ID, entity.MovementTypeOut, "1")
	require.NoError(t, err)

	movs, err := f.ledger.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, []int64{a.ID, b.ID, a.ID}, []int64{movs[0].ItemID, movs[1].ItemID, movs[2].ItemID})
	for i := 1; i < len(movs); i++ {
		assert.False(t, movs[i].Timestamp.Before(movs[i-1].Timestamp))
	}
	assert.Equal(t, 0, movs[0].Timestamp.Nanosecond(), "precisión de segundos")
	assert.Equal(t, "2026-10-16 08:00:01", entity.FormatTimestamp(movs[0].Timestamp))
}

func TestListItemMovements_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ListItemMovements(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valuation Engine
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalStockValue_StoreVacio(t *testing.T) {
	f := newFixture(t)
	total, err := f.valuation.TotalStockValue(context.Background())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
