package service

import "errors"

var (
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrInvalidPayload     = errors.New("invalid webhook payload")
	ErrInvalidSessionData = errors.New("invalid session data")
	ErrReconcileFailed    = errors.New("failed to save payment or booking")

	ErrReconciliationNotFound = errors.New("reconciliation not found")

	ErrInvalidCheckoutRequest  = errors.New("invalid checkout request")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrInvalidPrice            = errors.New("price must not be negative")
	ErrPriceMismatch           = errors.New("amount does not match the event price")
	ErrInsufficientSeats       = errors.New("not enough seats remaining")
	ErrCheckoutSessionFailed   = errors.New("failed to create checkout session")
	ErrCheckoutSessionNotFound = errors.New("checkout session not found")

	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidEvent        = errors.New("invalid event")
	ErrEventHasBookings    = errors.New("event has recorded payments")
	ErrCapacityBelowBooked = errors.New("capacity cannot be lower than booked seats")

	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("event already reviewed by this user")

	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// IsPermanent reports whether redelivering the same notification can never
// succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrInvalidSessionData)
}
