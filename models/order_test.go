package models

import (
	"errors"
	"testing"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"new to processing", OrderStatusNew, OrderStatusProcessing, true},
		{"new to cancelled", OrderStatusNew, OrderStatusCancelled, true},
		{"new to ordered skips processing", OrderStatusNew, OrderStatusOrdered, false},
		{"new to delivered skips everything", OrderStatusNew, OrderStatusDelivered, false},
		{"processing to ordered", OrderStatusProcessing, OrderStatusOrdered, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, true},
		{"processing back to new", OrderStatusProcessing, OrderStatusNew, false},
		{"ordered to delivered", OrderStatusOrdered, OrderStatusDelivered, true},
		{"ordered to cancelled", OrderStatusOrdered, OrderStatusCancelled, true},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusNew, false},
		{"same state is rejected", OrderStatusProcessing, OrderStatusProcessing, false},
		{"terminal same state is rejected", OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to)
			if tt.allowed && err != nil {
				t.Errorf("CheckTransition(%s, %s) = %v, expected nil", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Errorf("CheckTransition(%s, %s) = nil, expected rejection", tt.from, tt.to)
			}
		})
	}
}

func TestCheckTransition_FullLifecycle(t *testing.T) {
	status := OrderStatusNew
	for _, next := range []OrderStatus{OrderStatusProcessing, OrderStatusOrdered, OrderStatusDelivered} {
		if err := CheckTransition(status, next); err != nil {
			t.Fatalf("transition %s → %s rejected: %v", status, next, err)
		}
		status = next
	}
}

func TestCheckTransition_ErrorNamesBothStates(t *testing.T) {
	err := CheckTransition(OrderStatusNew, OrderStatusDelivered)
	if err == nil {
		t.Fatal("expected error")
	}
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if te.From != OrderStatusNew || te.To != OrderStatusDelivered {
		t.Errorf("unexpected error detail: %+v", te)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusNew, OrderStatusProcessing, OrderStatusOrdered, OrderStatusDelivered, OrderStatusCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%s) = false", s)
		}
	}
	if ValidOrderStatus("SHIPPED") {
		t.Error("unknown status accepted")
	}
}
