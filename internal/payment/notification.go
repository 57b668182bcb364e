package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	"github.com/vogiaan1904/swiftseats/internal/models"
)

var (
	ErrMalformedPayload   = errors.New("malformed notification payload")
	ErrInvalidSessionData = errors.New("invalid session data")
)

// CheckoutCompleted is the data the reconciler needs from a completed
// checkout session.
type CheckoutCompleted struct {
	EventType     string
	TransactionID string
	UserID        string
	EventID       string
	Quantity      int
	Amount        models.Cents
	Currency      string
}

// Notification is a parsed, already verified processor notification.
// Completed is nil for every kind other than a completed checkout session.
type Notification struct {
	ID        string
	Type      string
	Completed *CheckoutCompleted
}

// checkoutSessionObject keeps amount_total nullable; stripe.CheckoutSession
// would decode a null total as zero.
type checkoutSessionObject struct {
	ID          string            `json:"id"`
	AmountTotal *int64            `json:"amount_total"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
}

// ParseNotification decodes a verified notification body. Call it only after
// Verifier.Verify succeeded.
func ParseNotification(payload []byte) (*Notification, error) {
	var evt stripe.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if evt.Type == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrMalformedPayload)
	}

	n := &Notification{ID: evt.ID, Type: string(evt.Type)}
	if evt.Type != stripe.EventTypeCheckoutSessionCompleted {
		return n, nil
	}

	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: missing session object", ErrInvalidSessionData)
	}

	var obj checkoutSessionObject
	if err := json.Unmarshal(evt.Data.Raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSessionData, err)
	}

	completed, err := obj.toCompleted()
	if err != nil {
		return nil, err
	}
	completed.EventType = n.Type
	n.Completed = completed

	return n, nil
}

func (o checkoutSessionObject) toCompleted() (*CheckoutCompleted, error) {
	if o.ID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidSessionData)
	}
	if o.AmountTotal == nil {
		return nil, fmt.Errorf("%w: amount_total is null", ErrInvalidSessionData)
	}
	if *o.AmountTotal < 0 {
		return nil, fmt.Errorf("%w: negative amount_total", ErrInvalidSessionData)
	}
	if len(o.Metadata) == 0 {
		return nil, fmt.Errorf("%w: metadata missing", ErrInvalidSessionData)
	}

	userID := o.Metadata[MetadataUserID]
	eventID := o.Metadata[MetadataEventID]
	if userID == "" || eventID == "" {
		return nil, fmt.Errorf("%w: metadata must carry %s and %s", ErrInvalidSessionData, MetadataUserID, MetadataEventID)
	}

	qty, err := strconv.Atoi(o.Metadata[MetadataQuantity])
	if err != nil || qty < 1 {
		return nil, fmt.Errorf("%w: quantity %q", ErrInvalidSessionData, o.Metadata[MetadataQuantity])
	}

	return &CheckoutCompleted{
		TransactionID: o.ID,
		UserID:        userID,
		EventID:       eventID,
		Quantity:      qty,
		Amount:        models.Cents(*o.AmountTotal),
		Currency:      o.Currency,
	}, nil
}
