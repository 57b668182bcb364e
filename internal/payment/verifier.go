package payment

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79/webhook"
)

var ErrInvalidSignature = errors.New("invalid notification signature")

// Verifier authenticates a raw notification body against its signature
// header. A zero tolerance disables the timestamp window.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{
		secret:    secret,
		tolerance: tolerance,
	}
}

// NewQueuedVerifier checks only the signature. Notifications read from a
// queue can be consumed or redelivered long after the processor signed them,
// so the timestamp window would turn consumer lag into dropped payments.
func NewQueuedVerifier(secret string) *Verifier {
	return NewVerifier(secret, 0)
}

// Verify fails closed: an unset secret rejects every notification.
func (v *Verifier) Verify(payload []byte, header string) error {
	if v.secret == "" {
		return fmt.Errorf("%w: webhook secret not configured", ErrInvalidSignature)
	}
	if header == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, webhook.ErrNotSigned)
	}

	var err error
	if v.tolerance > 0 {
		err = webhook.ValidatePayloadWithTolerance(payload, header, v.secret, v.tolerance)
	} else {
		err = webhook.ValidatePayloadIgnoringTolerance(payload, header, v.secret)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return nil
}

// SignatureHeader builds the header a processor would send for payload at t.
func SignatureHeader(payload []byte, secret string, t time.Time) string {
	sig := webhook.ComputeSignature(t, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), hex.EncodeToString(sig))
}
