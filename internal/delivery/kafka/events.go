package kafka

import (
	"time"

	"github.com/vogiaan1904/swiftseats/internal/models"
)

// Events published BY the booking service through the outbox.

type PaymentRecordedEvent struct {
	PaymentID     string       `json:"payment_id"`
	TransactionID string       `json:"transaction_id"`
	UserID        string       `json:"user_id"`
	EventID       string       `json:"event_id"`
	Amount        models.Cents `json:"amount"`
	Currency      string       `json:"currency"`
	RecordedAt    time.Time    `json:"recorded_at"`
}

type BookingConfirmedEvent struct {
	BookingID     string       `json:"booking_id"`
	TransactionID string       `json:"transaction_id"`
	UserID        string       `json:"user_id"`
	EventID       string       `json:"event_id"`
	NumberOfSeats int          `json:"number_of_seats"`
	TotalPrice    models.Cents `json:"total_price"`
	OrganizerID   string       `json:"organizer_id"`
	ConfirmedAt   time.Time    `json:"confirmed_at"`
}

type BookingOverbookedEvent struct {
	BookingID      string    `json:"booking_id"`
	TransactionID  string    `json:"transaction_id"`
	EventID        string    `json:"event_id"`
	AvailableSeats int       `json:"available_seats"`
	BookedSeats    int       `json:"booked_seats"`
	DetectedAt     time.Time `json:"detected_at"`
}
