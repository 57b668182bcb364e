package service

import (
	"context"

	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
)

// Services

type InventoryService interface {
	// Increment adds qty to the event's booked seats and returns the event
	// after the change. It never rejects on capacity.
	Increment(ctx context.Context, eventID string, qty int) (*models.Event, error)
	Remaining(ctx context.Context, eventID string) (int, error)
	Lookup(ctx context.Context, eventID string) (*models.Event, error)
}

type ReconcileService interface {
	Reconcile(ctx context.Context, in ReconcileInput) (*ReconcileOutput, error)
	GetState(ctx context.Context, txID string) (*models.Reconciliation, error)
}

type NotificationService interface {
	HandleNotification(ctx context.Context, payload []byte, signature string) (*NotificationOutput, error)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, in CreateCheckoutInput) (*CreateCheckoutOutput, error)
	GetSession(ctx context.Context, userID, sessionID string) (*CheckoutStatusOutput, error)
	ListSessions(ctx context.Context, userID string) ([]CheckoutStatusOutput, error)
}

type EventService interface {
	Create(ctx context.Context, actor auth.Identity, in EventInput) (*EventOutput, error)
	Get(ctx context.Context, id string) (*EventOutput, error)
	List(ctx context.Context, filter models.EventFilter) ([]EventOutput, error)
	Update(ctx context.Context, actor auth.Identity, id string, in EventInput) (*EventOutput, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type BookingService interface {
	// ListByEvent is limited to the event's organizer and admins.
	ListByEvent(ctx context.Context, actor auth.Identity, eventID string) ([]models.Booking, error)
}

type ReviewService interface {
	Create(ctx context.Context, actor auth.Identity, eventID string, in ReviewInput) (*models.Review, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Review, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*ProfileOutput, error)
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginOutput, error)
	GetBalance(ctx context.Context, userID string) (*BalanceOutput, error)
}

// Collaborators

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, f models.EventFilter) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id string) error
	IncrementBookedSeats(ctx context.Context, id string, qty int) (*models.Event, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreditBalance(ctx context.Context, id string, amount models.Cents) (models.Cents, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByTransactionID(ctx context.Context, txID string) (*models.Payment, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	ListByEvent(ctx context.Context, eventID string) ([]models.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *models.Review) error
	ListByEvent(ctx context.Context, eventID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
}

type ReconciliationRepository interface {
	Begin(ctx context.Context, rec *models.Reconciliation) (bool, error)
	Get(ctx context.Context, txID string) (*models.Reconciliation, error)
	Advance(ctx context.Context, txID string, from, to models.ReconciliationState) error
	MarkOverbooked(ctx context.Context, txID string) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, msg models.OutboxMessage) error
}

type CheckoutSessionRepository interface {
	Save(ctx context.Context, ss *models.CheckoutSession) error
	Get(ctx context.Context, id string) (*models.CheckoutSession, error)
	ListByUser(ctx context.Context, userID string) ([]models.CheckoutSession, error)
}

type SignatureVerifier interface {
	Verify(payload []byte, header string) error
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}
