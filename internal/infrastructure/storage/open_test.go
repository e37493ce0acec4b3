package storage_test

import (
	"context"
	"testing"

	"github.com/jhoicas/estoque/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFor(t *testing.T) {
	cases := map[string]storage.Driver{
		"postgres://u:p@localhost/estoque":   storage.DriverPostgres,
		"postgresql://u:p@localhost/estoque": storage.DriverPostgres,
		":memory:":                           storage.DriverMemory,
		"memory://demo":                      storage.DriverMemory,
		"estoque.db":                         storage.DriverSQLite,
		"/var/lib/estoque/data.db":           storage.DriverSQLite,
	}
	for loc, want := range cases {
		assert.Equal(t, want, storage.DriverFor(loc), loc)
	}
}

func TestOpen_Memory(t *testing.T) {
	st, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, storage.DriverMemory, st.Driver)
	items, err := st.Items.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_UbicacionVacia(t *testing.T) {
	_, err := storage.Open(context.Background(), "  ")
	assert.Error(t, err)
}
