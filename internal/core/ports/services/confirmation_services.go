package services

import "context"

// ConfirmationGate verifies a customer's confirmation PIN before a
// balance-reducing operation goes ahead.
type ConfirmationGate interface {
	// Confirm checks the PIN against the customer's stored hash and returns
	// a forbidden error on mismatch.
	Confirm(ctx context.Context, customerID int64, pin string) error
}
