package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type ReconcileRepositories struct {
	Payments        PaymentRepository
	Bookings        BookingRepository
	Users           UserRepository
	Reconciliations ReconciliationRepository
	Outbox          OutboxRepository
}

type reconcileService struct {
	tx        TxManager
	repos     ReconcileRepositories
	inventory InventoryService
	l         pkgLog.Logger
	now       func() time.Time
}

func NewReconcileService(tx TxManager, repos ReconcileRepositories, inventory InventoryService, l pkgLog.Logger) ReconcileService {
	return &reconcileService{
		tx:        tx,
		repos:     repos,
		inventory: inventory,
		l:         l,
		now:       time.Now,
	}
}

// Reconcile applies a verified completed payment exactly once per
// transaction id. Every write happens in one transaction; on error nothing
// is kept and the caller should let the processor redeliver.
func (s *reconcileService) Reconcile(ctx context.Context, in ReconcileInput) (*ReconcileOutput, error) {
	if err := in.validate(); err != nil {
		s.l.Warnf(ctx, "service.reconcileService.Reconcile: tx=%s: %v", in.TransactionID, err)
		return nil, err
	}

	var out *ReconcileOutput
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.reconcile(ctx, in)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidSessionData) {
			s.l.Warnf(ctx, "service.reconcileService.Reconcile: tx=%s: %v", in.TransactionID, err)
			return nil, err
		}
		s.l.Errorf(ctx, "service.reconcileService.Reconcile: tx=%s: %v", in.TransactionID, err)
		return nil, fmt.Errorf("%w: %v", ErrReconcileFailed, err)
	}

	if out.Duplicate {
		s.l.Infof(ctx, "service.reconcileService.Reconcile: tx=%s already reconciled (state=%s)", out.TransactionID, out.State)
	} else {
		s.l.Infof(ctx, "service.reconcileService.Reconcile: tx=%s complete payment=%s booking=%s overbooked=%t",
			out.TransactionID, out.PaymentID, out.BookingID, out.Overbooked)
	}

	return out, nil
}

func (s *reconcileService) reconcile(ctx context.Context, in ReconcileInput) (*ReconcileOutput, error) {
	if _, err := s.repos.Payments.GetByTransactionID(ctx, in.TransactionID); err == nil {
		return &ReconcileOutput{
			TransactionID: in.TransactionID,
			State:         models.ReconciliationComplete,
			Duplicate:     true,
		}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	rec := &models.Reconciliation{
		TransactionID: in.TransactionID,
		State:         models.ReconciliationUnseen,
		EventID:       in.EventID,
		UserID:        in.UserID,
		Quantity:      in.Quantity,
		Amount:        in.Amount,
	}
	created, err := s.repos.Reconciliations.Begin(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !created {
		existing, err := s.repos.Reconciliations.Get(ctx, in.TransactionID)
		if err != nil {
			return nil, err
		}
		return &ReconcileOutput{
			TransactionID: existing.TransactionID,
			State:         existing.State,
			Overbooked:    existing.Overbooked,
			Duplicate:     true,
		}, nil
	}

	now := s.now()

	p := &models.Payment{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		EventID:       in.EventID,
		Amount:        in.Amount,
		PaymentMethod: models.PaymentMethodStripe,
		Status:        models.PaymentStatusSuccess,
		TransactionID: in.TransactionID,
	}
	if err := s.repos.Payments.Create(ctx, p); err != nil {
		return nil, unknownEvent(err)
	}

	b := &models.Booking{
		ID:            uuid.NewString(),
		EventID:       in.EventID,
		UserID:        in.UserID,
		NumberOfSeats: in.Quantity,
		TotalPrice:    in.Amount,
		Status:        models.BookingStatusConfirmed,
		PaymentStatus: models.BookingPaymentPaid,
		TransactionID: in.TransactionID,
	}
	if err := s.repos.Bookings.Create(ctx, b); err != nil {
		return nil, unknownEvent(err)
	}
	if err := s.advance(ctx, rec, models.ReconciliationRecorded); err != nil {
		return nil, err
	}

	e, err := s.inventory.Increment(ctx, in.EventID, in.Quantity)
	if err != nil {
		return nil, unknownEvent(err)
	}
	if e.IsOverbooked() {
		if err := s.repos.Reconciliations.MarkOverbooked(ctx, rec.TransactionID); err != nil {
			return nil, err
		}
		rec.Overbooked = true
	}
	if err := s.advance(ctx, rec, models.ReconciliationInventoryUpdated); err != nil {
		return nil, err
	}

	if _, err := s.repos.Users.CreditBalance(ctx, e.OrganizerID, in.Amount); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("organizer %s: %w", e.OrganizerID, ErrUserNotFound)
		}
		return nil, err
	}
	if err := s.advance(ctx, rec, models.ReconciliationBalanceUpdated); err != nil {
		return nil, err
	}

	if err := s.enqueueEvents(ctx, in, p, b, e, now); err != nil {
		return nil, err
	}
	if err := s.advance(ctx, rec, models.ReconciliationComplete); err != nil {
		return nil, err
	}

	return &ReconcileOutput{
		TransactionID: rec.TransactionID,
		State:         rec.State,
		PaymentID:     p.ID,
		BookingID:     b.ID,
		Overbooked:    rec.Overbooked,
	}, nil
}

func (s *reconcileService) advance(ctx context.Context, rec *models.Reconciliation, to models.ReconciliationState) error {
	if err := s.repos.Reconciliations.Advance(ctx, rec.TransactionID, rec.State, to); err != nil {
		return fmt.Errorf("advance %s -> %s: %w", rec.State, to, err)
	}
	rec.State = to
	return nil
}

type outboxEvent struct {
	topic string
	body  any
}

func (s *reconcileService) enqueueEvents(
	ctx context.Context,
	in ReconcileInput,
	p *models.Payment,
	b *models.Booking,
	e *models.Event,
	now time.Time,
) error {
	msgs := []outboxEvent{
		{kafka.TopicPaymentRecorded, kafka.PaymentRecordedEvent{
			PaymentID:     p.ID,
			TransactionID: p.TransactionID,
			UserID:        p.UserID,
			EventID:       p.EventID,
			Amount:        p.Amount,
			Currency:      in.Currency,
			RecordedAt:    now,
		}},
		{kafka.TopicBookingConfirmed, kafka.BookingConfirmedEvent{
			BookingID:     b.ID,
			TransactionID: b.TransactionID,
			UserID:        b.UserID,
			EventID:       b.EventID,
			NumberOfSeats: b.NumberOfSeats,
			TotalPrice:    b.TotalPrice,
			OrganizerID:   e.OrganizerID,
			ConfirmedAt:   now,
		}},
	}
	if e.IsOverbooked() {
		msgs = append(msgs, outboxEvent{kafka.TopicBookingOverbooked, kafka.BookingOverbookedEvent{
			BookingID:      b.ID,
			TransactionID:  b.TransactionID,
			EventID:        e.ID,
			AvailableSeats: e.AvailableSeats,
			BookedSeats:    e.BookedSeats,
			DetectedAt:     now,
		}})
	}

	for _, m := range msgs {
		payload, err := json.Marshal(m.body)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", m.topic, err)
		}
		if err := s.repos.Outbox.Enqueue(ctx, models.OutboxMessage{
			ID:        uuid.NewString(),
			Topic:     m.topic,
			Key:       in.EventID,
			Payload:   payload,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (s *reconcileService) GetState(ctx context.Context, txID string) (*models.Reconciliation, error) {
	rec, err := s.repos.Reconciliations.Get(ctx, txID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReconciliationNotFound
		}
		s.l.Errorf(ctx, "service.reconcileService.GetState: %v", err)
		return nil, err
	}
	return rec, nil
}

func (in ReconcileInput) validate() error {
	switch {
	case in.TransactionID == "":
		return fmt.Errorf("%w: missing transaction id", ErrInvalidSessionData)
	case in.UserID == "" || in.EventID == "":
		return fmt.Errorf("%w: missing user or event", ErrInvalidSessionData)
	case in.Quantity < 1:
		return fmt.Errorf("%w: quantity %d", ErrInvalidSessionData, in.Quantity)
	case in.Amount < 0:
		return fmt.Errorf("%w: negative amount", ErrInvalidSessionData)
	}
	return nil
}

// unknownEvent turns a write that failed because the referenced event does
// not exist into ErrInvalidSessionData. Retrying it cannot help.
func unknownEvent(err error) error {
	if errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, repository.ErrInvalidReference) ||
		errors.Is(err, repository.ErrInvalidID) {
		return fmt.Errorf("%w: unknown event: %v", ErrInvalidSessionData, err)
	}
	return err
}
