package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sga-pro-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// ShipmentStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentStatus_IsValid(t *testing.T) {
	valid := []entity.ShipmentStatus{
		entity.ShipmentPending,
		entity.ShipmentInProgress,
		entity.ShipmentCompleted,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "%s debe ser un estado válido", s)
	}
	assert.False(t, entity.ShipmentStatus("RECIBIDO").IsValid())
	assert.False(t, entity.ShipmentStatus("").IsValid())
}

func TestShipmentStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.ShipmentStatus
		allowed  bool
	}{
		{entity.ShipmentPending, entity.ShipmentInProgress, true},
		{entity.ShipmentPending, entity.ShipmentCompleted, true},
		{entity.ShipmentInProgress, entity.ShipmentCompleted, true},
		// retrocesos y salidas desde COMPLETADO prohibidos
		{entity.ShipmentInProgress, entity.ShipmentPending, false},
		{entity.ShipmentCompleted, entity.ShipmentPending, false},
		{entity.ShipmentCompleted, entity.ShipmentInProgress, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"transición %s -> %s", tc.from, tc.to)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderStatus_IsValid(t *testing.T) {
	valid := []entity.OrderStatus{
		entity.OrderPending,
		entity.OrderPicking,
		entity.OrderPacked,
		entity.OrderShipped,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "%s debe ser un estado válido", s)
	}
	assert.False(t, entity.OrderStatus("CANCELADO").IsValid())
}

func TestOrderStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		allowed  bool
	}{
		{entity.OrderPending, entity.OrderPicking, true},
		{entity.OrderPending, entity.OrderPacked, true},
		{entity.OrderPicking, entity.OrderPacked, true},
		{entity.OrderPacked, entity.OrderShipped, true},
		// sin saltos hacia atrás ni salida desde ENVIADO
		{entity.OrderPicking, entity.OrderPending, false},
		{entity.OrderPending, entity.OrderShipped, false},
		{entity.OrderShipped, entity.OrderPending, false},
		{entity.OrderShipped, entity.OrderPacked, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"transición %s -> %s", tc.from, tc.to)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// StockRecord
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRecord_Available(t *testing.T) {
	rec := &entity.StockRecord{Quantity: 10, ReservedQuantity: 4}
	assert.Equal(t, 6, rec.Available())

	rec.ReservedQuantity = 10
	assert.Zero(t, rec.Available())
}
