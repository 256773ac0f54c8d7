package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gestionale/server/internal/models"
)

func statusPtr(s models.OrderStatus) *models.OrderStatus {
	return &s
}

func TestResolveStatus_AutoAdvanceOnWorkedIncrease(t *testing.T) {
	got := ResolveStatus(
		models.OrderStatusLanciato,
		nil,
		decimal.NewFromInt(10),
		decimal.NewFromInt(15),
	)
	assert.Equal(t, models.OrderStatusInAvanzamento, got)
}

func TestResolveStatus_AutoAdvanceWinsOverRequestedStatus(t *testing.T) {
	// Caller asks for SOSPESO in the same update that reports work: the
	// automatic transition takes precedence.
	got := ResolveStatus(
		models.OrderStatusLanciato,
		statusPtr(models.OrderStatusSospeso),
		decimal.NewFromInt(0),
		decimal.NewFromFloat(0.5),
	)
	assert.Equal(t, models.OrderStatusInAvanzamento, got)
}

func TestResolveStatus_NoAdvanceWhenWorkedUnchanged(t *testing.T) {
	got := ResolveStatus(
		models.OrderStatusLanciato,
		nil,
		decimal.NewFromInt(10),
		decimal.NewFromInt(10),
	)
	assert.Equal(t, models.OrderStatusLanciato, got)
}

func TestResolveStatus_NoAdvanceWhenWorkedDecreases(t *testing.T) {
	got := ResolveStatus(
		models.OrderStatusLanciato,
		nil,
		decimal.NewFromInt(10),
		decimal.NewFromInt(5),
	)
	assert.Equal(t, models.OrderStatusLanciato, got)
}

func TestResolveStatus_AutoAdvanceOnlyFromLanciato(t *testing.T) {
	for _, current := range []models.OrderStatus{
		models.OrderStatusPianificato,
		models.OrderStatusInAllestimento,
		models.OrderStatusInAvanzamento,
		models.OrderStatusSospeso,
		models.OrderStatusEvaso,
		models.OrderStatusSaldato,
	} {
		got := ResolveStatus(current, nil, decimal.Zero, decimal.NewFromInt(1))
		assert.Equal(t, current, got, "worked increase from %s must not auto-advance", current)
	}
}

func TestResolveStatus_RequestedStatusApplies(t *testing.T) {
	got := ResolveStatus(
		models.OrderStatusPianificato,
		statusPtr(models.OrderStatusLanciato),
		decimal.Zero,
		decimal.Zero,
	)
	assert.Equal(t, models.OrderStatusLanciato, got)
}

func TestResolveStatus_RegressionOutOfSaldatoAllowed(t *testing.T) {
	// Back-office corrections may reopen a settled order.
	got := ResolveStatus(
		models.OrderStatusSaldato,
		statusPtr(models.OrderStatusInAvanzamento),
		decimal.NewFromInt(10),
		decimal.NewFromInt(10),
	)
	assert.Equal(t, models.OrderStatusInAvanzamento, got)
}
