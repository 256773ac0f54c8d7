package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateUniqueViolation_Postgres(t *testing.T) {
	err := errors.New(`ERROR: duplicate key value violates unique constraint "idx_orders_production_number" (SQLSTATE 23505)`)

	translated := translateUniqueViolation(err, "order_production_number", duplicateProductionNumberMsg)

	var dup *DuplicateKeyError
	assert.ErrorAs(t, translated, &dup)
	assert.Equal(t, "order_production_number", dup.Field)
	assert.Equal(t, duplicateProductionNumberMsg, dup.Message)
}

func TestTranslateUniqueViolation_MySQL(t *testing.T) {
	err := errors.New(`Error 1062 (23000): Duplicate entry 'OFF-2026-000001' for key 'offers.idx_offers_offer_number'`)

	translated := translateUniqueViolation(err, "offer_number", duplicateOfferNumberMsg)

	var dup *DuplicateKeyError
	assert.ErrorAs(t, translated, &dup)
	assert.Equal(t, "offer_number", dup.Field)
}

func TestTranslateUniqueViolation_PassesThroughOtherErrors(t *testing.T) {
	err := errors.New("connection refused")

	translated := translateUniqueViolation(err, "order_production_number", duplicateProductionNumberMsg)

	assert.Equal(t, err, translated)
	assert.False(t, IsDuplicateKey(translated))
}

func TestTranslateUniqueViolation_Nil(t *testing.T) {
	assert.NoError(t, translateUniqueViolation(nil, "order_production_number", duplicateProductionNumberMsg))
}

func TestIsDuplicateKey_Wrapped(t *testing.T) {
	inner := &DuplicateKeyError{Field: "offer_number", Message: duplicateOfferNumberMsg}
	wrapped := fmt.Errorf("update offer: %w", inner)

	assert.True(t, IsDuplicateKey(wrapped))
}

func TestDuplicateKeyError_Error(t *testing.T) {
	err := &DuplicateKeyError{Field: "order_production_number", Message: duplicateProductionNumberMsg}
	assert.Equal(t, duplicateProductionNumberMsg, err.Error())
}
