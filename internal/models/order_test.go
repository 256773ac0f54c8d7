package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusString(t *testing.T) {
	assert.Equal(t, "pianificato", OrderStatusPianificato.String())
	assert.Equal(t, "lanciato", OrderStatusLanciato.String())
	assert.Equal(t, "saldato", OrderStatusSaldato.String())
	assert.Equal(t, "unknown(99)", OrderStatus(99).String())
}

func TestOrderStatusIsCompleted(t *testing.T) {
	assert.True(t, OrderStatusEvaso.IsCompleted())
	assert.True(t, OrderStatusSaldato.IsCompleted())
	assert.False(t, OrderStatusLanciato.IsCompleted())
	assert.False(t, OrderStatusSospeso.IsCompleted())
}

func TestOrderProgressPercentage(t *testing.T) {
	order := Order{
		Quantity:       decimal.NewFromInt(100),
		WorkedQuantity: decimal.NewFromInt(25),
	}
	assert.Equal(t, 25.0, order.ProgressPercentage())

	order.WorkedQuantity = decimal.NewFromFloat(33.333)
	assert.Equal(t, 33.33, order.ProgressPercentage())

	zero := Order{Quantity: decimal.Zero, WorkedQuantity: decimal.NewFromInt(5)}
	assert.Equal(t, 0.0, zero.ProgressPercentage())
}

func TestStatusSemaphoreRoundTrip(t *testing.T) {
	sem := StatusSemaphore{Etichette: 2, Packaging: 1, Prodotto: 0}

	value, err := sem.Value()
	require.NoError(t, err)

	var decoded StatusSemaphore
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, sem, decoded)
}

func TestStatusSemaphoreScanEmpty(t *testing.T) {
	var sem StatusSemaphore
	require.NoError(t, sem.Scan(nil))
	assert.Equal(t, StatusSemaphore{}, sem)

	require.NoError(t, sem.Scan([]byte{}))
	assert.Equal(t, StatusSemaphore{}, sem)

	assert.Error(t, sem.Scan(42))
}
