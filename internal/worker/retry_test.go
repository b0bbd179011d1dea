package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetryReintentaHastaElExito(t *testing.T) {
	intentos := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		intentos++
		if intentos < 3 {
			return errors.New("transitorio")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, intentos)
}

func TestWithRetryDevuelveElUltimoError(t *testing.T) {
	ultimo := errors.New("sigue caido")
	err := withRetry(context.Background(), 2, func(attempt int) error {
		return ultimo
	})
	assert.ErrorIs(t, err, ultimo)
}

func TestWithRetryRespetaCancelacion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	intentos := 0
	err := withRetry(ctx, 5, func(attempt int) error {
		intentos++
		cancel() // cancel during the first backoff wait
		return errors.New("falla")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, intentos)
}

func TestJobEnvelopeRoundTrip(t *testing.T) {
	payload, err := json.Marshal(AlertaStockPayload{
		EventoID: "e1",
		TipoItem: "insumo",
		ItemID:   "i1",
		Nombre:   "Queso",
		Actual:   "0.4",
		Minima:   "0.5",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(Job{Type: "alerta_stock", Payload: payload})
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal(raw, &job))
	assert.Equal(t, "alerta_stock", job.Type)

	var decoded AlertaStockPayload
	require.NoError(t, json.Unmarshal(job.Payload, &decoded))
	assert.Equal(t, "Queso", decoded.Nombre)
}
