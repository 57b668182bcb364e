package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
	PaymentMethodStripe     PaymentMethod = "stripe"
)

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is append-only. TransactionID is the processor's session id and is
// unique across all payments.
type Payment struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user"`
	EventID       string        `json:"event"`
	Amount        Cents         `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
	CreatedAt     time.Time     `json:"createdAt"`
}
