package models

import "time"

// CheckoutSession is the cached copy of a session created at the processor.
type CheckoutSession struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	UserID     string    `json:"user_id"`
	EventID    string    `json:"event_id"`
	EventName  string    `json:"event_name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  Cents     `json:"unit_price"`
	Currency   string    `json:"currency"`
	SuccessURL string    `json:"success_url"`
	CancelURL  string    `json:"cancel_url"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s *CheckoutSession) Total() Cents {
	return s.UnitPrice * Cents(s.Quantity)
}
