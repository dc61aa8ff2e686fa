package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s → %s", tc.from, tc.to)
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, OrderStatus("expédiée").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderItemTotalPrice(t *testing.T) {
	item := OrderItem{
		Quantity: 3,
		Price:    decimal.RequireFromString("89.99"),
	}
	assert.True(t, item.TotalPrice().Equal(decimal.RequireFromString("269.97")))
}
