package models

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type BookingPaymentStatus string

const (
	BookingPaymentPaid    BookingPaymentStatus = "paid"
	BookingPaymentPending BookingPaymentStatus = "pending"
)

type Booking struct {
	ID            string               `json:"id"`
	EventID       string               `json:"event"`
	UserID        string               `json:"user"`
	BookingDate   time.Time            `json:"bookingDate"`
	NumberOfSeats int                  `json:"numberOfSeats"`
	TotalPrice    Cents                `json:"totalPrice"`
	Status        BookingStatus        `json:"status"`
	PaymentStatus BookingPaymentStatus `json:"paymentStatus"`
	TransactionID string               `json:"transactionId"`
}
