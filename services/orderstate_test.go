package services

import (
	"testing"

	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderProcessing, models.OrderPreparing, true},
		{models.OrderProcessing, models.OrderFulfilled, true},
		{models.OrderPreparing, models.OrderReady, true},
		{models.OrderReady, models.OrderFulfilled, true},
		{models.OrderReady, models.OrderCancelled, true},
		{models.OrderReady, models.OrderPreparing, false},
		{models.OrderPreparing, models.OrderProcessing, false},
		{models.OrderFulfilled, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderProcessing, false},
	}
	for _, tt := range tests {
		err := CanTransitionOrder(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
			continue
		}
		assert.True(t, utils.IsKind(err, utils.KindNotFound), "%s -> %s", tt.from, tt.to)
	}
}

func TestInvalidTransitionListsNextStates(t *testing.T) {
	err := CanTransitionOrder(models.OrderReady, models.OrderPreparing)
	assert.Contains(t, err.Error(), "fulfilled, cancelled")

	err = CanTransitionOrder(models.OrderFulfilled, models.OrderReady)
	assert.Contains(t, err.Error(), "terminal")
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminalOrderStatus(models.OrderFulfilled))
	assert.True(t, IsTerminalOrderStatus(models.OrderCancelled))
	for _, s := range ActiveOrderStatuses() {
		assert.False(t, IsTerminalOrderStatus(s), s)
	}
}
