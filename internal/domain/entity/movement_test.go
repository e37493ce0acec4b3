package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque/internal/domain/entity"
)

func TestEncodeTimestamp_OrdenEnCambioDeHorario(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zona horaria no disponible: %v", err)
	}
	// 01:30 EDT y, 40 minutos después, 01:10 EST: en hora local el texto retrocede.
	first := time.Date(2026, 11, 1, 1, 30, 0, 0, ny)
	second := first.Add(40 * time.Minute)
	require.Equal(t, "01:10", second.Format("15:04"))

	assert.Less(t, entity.EncodeTimestamp(first), entity.EncodeTimestamp(second))
	assert.Equal(t, "2026-11-01 05:30:00", entity.EncodeTimestamp(first))
}

func TestDecodeTimestamp_IdaYVuelta(t *testing.T) {
	ts := time.Date(2026, 10, 16, 14, 30, 5, 0, time.Local)
	got, err := entity.DecodeTimestamp(entity.EncodeTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))
	assert.Equal(t, entity.FormatTimestamp(ts), entity.FormatTimestamp(got))

	_, err = entity.DecodeTimestamp("16/10/2026")
	assert.Error(t, err)
}
