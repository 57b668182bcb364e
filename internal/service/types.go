package service

import (
	"time"

	"github.com/vogiaan1904/swiftseats/internal/models"
)

type ReconcileInput struct {
	TransactionID string
	UserID        string
	EventID       string
	Quantity      int
	Amount        models.Cents
	Currency      string
}

type ReconcileOutput struct {
	TransactionID string                     `json:"transaction_id"`
	State         models.ReconciliationState `json:"state"`
	PaymentID     string                     `json:"payment_id,omitempty"`
	BookingID     string                     `json:"booking_id,omitempty"`
	Overbooked    bool                       `json:"overbooked"`
	Duplicate     bool                       `json:"duplicate"`
}

type NotificationOutput struct {
	NotificationID string           `json:"notification_id"`
	Type           string           `json:"type"`
	Ignored        bool             `json:"ignored"`
	Reconciliation *ReconcileOutput `json:"reconciliation,omitempty"`
}

type CreateCheckoutInput struct {
	UserID    string       `json:"userId" validate:"required"`
	EventID   string       `json:"eventId" validate:"required"`
	EventName string       `json:"eventName" validate:"required"`
	UnitPrice models.Cents `json:"amount" validate:"gte=0"`
	Quantity  int          `json:"quantity" validate:"required,gte=1"`
	Origin    string       `json:"-"`
}

type CreateCheckoutOutput struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CheckoutStatus string

const (
	CheckoutStatusPending  CheckoutStatus = "pending"
	CheckoutStatusComplete CheckoutStatus = "complete"
)

type CheckoutStatusOutput struct {
	Session    models.CheckoutSession     `json:"session"`
	Status     CheckoutStatus             `json:"status"`
	State      models.ReconciliationState `json:"state"`
	Overbooked bool                       `json:"overbooked"`
}

type EventInput struct {
	Title          string       `json:"title" validate:"required,max=200"`
	Description    string       `json:"description" validate:"max=5000"`
	Category       string       `json:"category" validate:"max=100"`
	Address        string       `json:"address" validate:"max=300"`
	City           string       `json:"city" validate:"max=100"`
	Date           time.Time    `json:"date" validate:"required"`
	Price          models.Cents `json:"price" validate:"gte=0"`
	AvailableSeats int          `json:"availableSeats" validate:"gte=0"`
	ImageURL       string       `json:"imageUrl" validate:"omitempty,url"`
}

type EventOutput struct {
	models.Event
	RemainingSeats int `json:"remainingSeats"`
}

type RegisterInput struct {
	Username string      `json:"username" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=user organizer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type BalanceOutput struct {
	UserID  string       `json:"userId"`
	Balance models.Cents `json:"balance"`
}

type ReviewInput struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating" validate:"required"`
	Text   string `json:"reviewText" validate:"max=2000"`
}

// PublicUser is the part of a user record shown to anyone.
type PublicUser struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ProfileOutput struct {
	User    PublicUser      `json:"user"`
	Events  []EventOutput   `json:"events"`
	Reviews []models.Review `json:"reviews"`
}
