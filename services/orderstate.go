package services

import (
	"strings"

	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
)

// orderTransitions is the authoritative order lifecycle.
var orderTransitions = []struct {
	From models.OrderStatus
	To   models.OrderStatus
}{
	{models.OrderProcessing, models.OrderPreparing},
	{models.OrderProcessing, models.OrderReady},
	{models.OrderProcessing, models.OrderFulfilled},
	{models.OrderProcessing, models.OrderCancelled},
	{models.OrderPreparing, models.OrderReady},
	{models.OrderPreparing, models.OrderFulfilled},
	{models.OrderPreparing, models.OrderCancelled},
	{models.OrderReady, models.OrderFulfilled},
	{models.OrderReady, models.OrderCancelled},
}

type orderTransition struct {
	from, to models.OrderStatus
}

var orderTransitionSet = func() map[orderTransition]bool {
	m := make(map[orderTransition]bool, len(orderTransitions))
	for _, t := range orderTransitions {
		m[orderTransition{t.From, t.To}] = true
	}
	return m
}()

// NextOrderStatuses returns the statuses reachable from status in one step.
func NextOrderStatuses(status models.OrderStatus) []models.OrderStatus {
	var next []models.OrderStatus
	for _, t := range orderTransitions {
		if t.From == status {
			next = append(next, t.To)
		}
	}
	return next
}

// IsTerminalOrderStatus reports whether no transition leaves status.
func IsTerminalOrderStatus(status models.OrderStatus) bool {
	return len(NextOrderStatuses(status)) == 0
}

// ActiveOrderStatuses are the non-terminal statuses.
func ActiveOrderStatuses() []models.OrderStatus {
	return []models.OrderStatus{models.OrderProcessing, models.OrderPreparing, models.OrderReady}
}

// CanTransitionOrder returns a not-found error naming the valid next states when from → to is not allowed.
func CanTransitionOrder(from, to models.OrderStatus) error {
	if orderTransitionSet[orderTransition{from, to}] {
		return nil
	}
	return utils.NewNotFoundError("Cannot move order from " + string(from) + " to " + string(to) +
		". Valid transitions from " + string(from) + " are: " + describeNext(from))
}

func describeNext(status models.OrderStatus) string {
	next := NextOrderStatuses(status)
	if len(next) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
