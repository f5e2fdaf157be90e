package domain

import "errors"

// Workflow error taxonomy. Handlers map these to HTTP statuses; anything
// else coming out of a transaction is an upstream failure (500, retryable).
var (
	ErrListingNotFound     = errors.New("Listing not found")
	ErrOrderNotFound       = errors.New("Order not found")
	ErrReservationNotFound = errors.New("Reservation not found")
	ErrMatchNotFound       = errors.New("Match not found")
	ErrReferralNotFound    = errors.New("Referral not found")
	ErrVendorNotFound      = errors.New("Vendor not found")

	// Listing type must be one of offering / wanted.
	ErrInvalidListingType = errors.New("Invalid listing type")

	// Caller does not own the mutated record (vendor_id/buyer_id mismatch).
	ErrNotOwner = errors.New("Not authorized for this record")

	// Transition attempted from a state that does not permit it.
	ErrInvalidTransition = errors.New("Invalid status transition")

	// Reservations and orders apply to offering listings only.
	ErrNotAnOffering = errors.New("Listing is not an offering")

	// Uniqueness violation surfaced to the caller.
	ErrConflict = errors.New("Conflict with existing record")
)
