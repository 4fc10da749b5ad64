package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"placed to accepted", StatusPlaced, StatusAccepted, true},
		{"pending to accepted", StatusPendingVendorAcceptance, StatusAccepted, true},
		{"pending to rejected", StatusPendingVendorAcceptance, StatusRejected, true},
		{"pending to cancelled", StatusPendingVendorAcceptance, StatusCancelled, true},
		{"accepted to preparing", StatusAccepted, StatusPreparing, true},
		{"preparing to ready", StatusPreparing, StatusReady, true},
		{"ready to delivered", StatusReady, StatusDelivered, true},
		{"accepted to accepted", StatusAccepted, StatusAccepted, false},
		{"placed to preparing skips accept", StatusPlaced, StatusPreparing, false},
		{"accepted to ready skips preparing", StatusAccepted, StatusReady, false},
		{"delivered is terminal", StatusDelivered, StatusPreparing, false},
		{"rejected is terminal", StatusRejected, StatusAccepted, false},
		{"cancelled is terminal", StatusCancelled, StatusAccepted, false},
		{"backward from ready", StatusReady, StatusPreparing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPlaced.IsTerminal())
	assert.False(t, StatusPendingVendorAcceptance.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusPreparing.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestNextRiderStatus(t *testing.T) {
	tests := []struct {
		from RiderStatus
		next RiderStatus
		ok   bool
	}{
		{RiderAssigned, RiderPicked, true},
		{RiderPicked, RiderEnroute, true},
		{RiderEnroute, RiderArrived, true},
		{RiderArrived, RiderDelivered, true},
		{RiderDelivered, "", false},
	}

	for _, tt := range tests {
		next, ok := NextRiderStatus(tt.from)
		assert.Equal(t, tt.ok, ok, "from %s", tt.from)
		if tt.ok {
			assert.Equal(t, tt.next, next, "from %s", tt.from)
		}
	}
}

func TestOrder_ItemFlagRollups(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{ProductID: 1, LogisticsFlags: LogisticsFlags{Perishable: true}},
		{ProductID: 2, LogisticsFlags: LogisticsFlags{Fragile: true, HandleWithCare: true}},
	}}

	assert.True(t, order.HasFragileItems())
	assert.False(t, order.HasLiveAnimalItems())

	order.Items = append(order.Items, OrderItem{ProductID: 3, LogisticsFlags: LogisticsFlags{LiveAnimal: true, HandleWithCare: true}})
	assert.True(t, order.HasLiveAnimalItems())
}

func TestProduct_ToLogisticsFlags(t *testing.T) {
	fragile := Product{Flags: LogisticsFlags{Fragile: true}}
	assert.True(t, fragile.ToLogisticsFlags().HandleWithCare)

	live := Product{Flags: LogisticsFlags{LiveAnimal: true}}
	assert.True(t, live.ToLogisticsFlags().HandleWithCare)

	plain := Product{Flags: LogisticsFlags{Perishable: true}}
	assert.False(t, plain.ToLogisticsFlags().HandleWithCare)
}

func TestRiderOrder_RequiresProof(t *testing.T) {
	assert.True(t, (&RiderOrder{Alert: AlertLive}).RequiresProof())
	assert.True(t, (&RiderOrder{Alert: AlertFragile}).RequiresProof())
	assert.False(t, (&RiderOrder{}).RequiresProof())

	withProof := &RiderOrder{Alert: AlertFragile, DeliveryProof: DeliveryProof{PhotoURL: "https://cdn.example/p.jpg"}}
	assert.True(t, withProof.HasProof())
	assert.False(t, (&RiderOrder{Alert: AlertFragile}).HasProof())
}
