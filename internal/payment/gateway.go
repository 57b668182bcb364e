// Package payment talks to the hosted payment processor: it opens checkout
// sessions and authenticates the notifications the processor sends back.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/vogiaan1904/swiftseats/internal/models"
)

var ErrGateway = errors.New("payment gateway request failed")

// Metadata keys attached to every checkout session and read back from the
// completion notification.
const (
	MetadataUserID   = "userId"
	MetadataEventID  = "eventId"
	MetadataQuantity = "quantity"
)

type CheckoutRequest struct {
	UserID     string
	EventID    string
	EventName  string
	UnitPrice  models.Cents
	Quantity   int
	Currency   string
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID        string
	URL       string
	ExpiresAt time.Time
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}
