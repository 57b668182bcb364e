package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/payment"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

const sessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

type checkoutService struct {
	gateway   payment.Gateway
	inventory InventoryService
	sessions  CheckoutSessionRepository
	recRepo   ReconciliationRepository
	cfg       config.CheckoutConfig
	currency  string
	l         pkgLog.Logger
	now       func() time.Time
}

func NewCheckoutService(
	gateway payment.Gateway,
	inventory InventoryService,
	sessions CheckoutSessionRepository,
	recRepo ReconciliationRepository,
	cfg config.CheckoutConfig,
	currency string,
	l pkgLog.Logger,
) CheckoutService {
	return &checkoutService{
		gateway:   gateway,
		inventory: inventory,
		sessions:  sessions,
		recRepo:   recRepo,
		cfg:       cfg,
		currency:  currency,
		l:         l,
		now:       time.Now,
	}
}

// CreateSession opens a hosted checkout session. The client amount must match
// the event's current price. It never touches seat counts; seats are taken
// only when the completed payment is reconciled.
func (s *checkoutService) CreateSession(ctx context.Context, in CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	if err := in.validate(); err != nil {
		s.l.Warnf(ctx, "service.checkoutService.CreateSession: %v", err)
		return nil, err
	}

	e, err := s.inventory.Lookup(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if in.UnitPrice != e.Price {
		s.l.Warnf(ctx, "service.checkoutService.CreateSession: event=%s amount=%d price=%d",
			in.EventID, in.UnitPrice, e.Price)
		return nil, ErrPriceMismatch
	}

	if s.cfg.EnforceCapacity {
		if remaining := e.RemainingSeats(); remaining < in.Quantity {
			s.l.Warnf(ctx, "service.checkoutService.CreateSession: event=%s remaining=%d requested=%d",
				in.EventID, remaining, in.Quantity)
			return nil, ErrInsufficientSeats
		}
	}

	origin := strings.TrimRight(in.Origin, "/")
	if origin == "" {
		origin = strings.TrimRight(s.cfg.DefaultOrigin, "/")
	}
	successURL := origin + "/success?session_id=" + sessionIDPlaceholder
	cancelURL := origin + "/cancel"

	cs, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		UserID:     in.UserID,
		EventID:    in.EventID,
		EventName:  in.EventName,
		UnitPrice:  in.UnitPrice,
		Quantity:   in.Quantity,
		Currency:   s.currency,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		s.l.Errorf(ctx, "service.checkoutService.CreateSession: %v", err)
		return nil, ErrCheckoutSessionFailed
	}

	now := s.now()
	expiresAt := cs.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(s.cfg.SessionTTL)
	}

	if err := s.sessions.Save(ctx, &models.CheckoutSession{
		ID:         cs.ID,
		URL:        cs.URL,
		UserID:     in.UserID,
		EventID:    in.EventID,
		EventName:  in.EventName,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		Currency:   s.currency,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		CreatedAt:  now,
		ExpiresAt:  expiresAt,
	}); err != nil {
		s.l.Warnf(ctx, "service.checkoutService.CreateSession: cache session %s: %v", cs.ID, err)
	}

	s.l.Infof(ctx, "service.checkoutService.CreateSession: session=%s user=%s event=%s qty=%d",
		cs.ID, in.UserID, in.EventID, in.Quantity)

	return &CreateCheckoutOutput{
		ID:  cs.ID,
		URL: cs.URL,
	}, nil
}

// GetSession reports whether the buyer's session has been reconciled yet.
// Sessions of other buyers are reported as not found.
func (s *checkoutService) GetSession(ctx context.Context, userID, sessionID string) (*CheckoutStatusOutput, error) {
	ss, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCheckoutSessionNotFound
		}
		return nil, err
	}
	if ss.UserID != userID {
		s.l.Warnf(ctx, "service.checkoutService.GetSession: session %s requested by %s", sessionID, userID)
		return nil, ErrCheckoutSessionNotFound
	}

	return s.status(ctx, ss)
}

func (s *checkoutService) ListSessions(ctx context.Context, userID string) ([]CheckoutStatusOutput, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CheckoutStatusOutput, 0, len(sessions))
	for i := range sessions {
		st, err := s.status(ctx, &sessions[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, nil
}

func (s *checkoutService) status(ctx context.Context, ss *models.CheckoutSession) (*CheckoutStatusOutput, error) {
	out := &CheckoutStatusOutput{
		Session: *ss,
		Status:  CheckoutStatusPending,
		State:   models.ReconciliationUnseen,
	}

	rec, err := s.recRepo.Get(ctx, ss.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, nil
		}
		s.l.Errorf(ctx, "service.checkoutService.status: %v", err)
		return nil, err
	}

	out.State = rec.State
	out.Overbooked = rec.Overbooked
	if rec.State.IsTerminal() {
		out.Status = CheckoutStatusComplete
	}
	return out, nil
}

func (in CreateCheckoutInput) validate() error {
	switch {
	case in.Quantity < 1:
		return ErrInvalidQuantity
	case in.UnitPrice < 0:
		return ErrInvalidPrice
	case in.UserID == "" || in.EventID == "":
		return fmt.Errorf("%w: user and event are required", ErrInvalidCheckoutRequest)
	case strings.TrimSpace(in.EventName) == "":
		return fmt.Errorf("%w: event name is required", ErrInvalidCheckoutRequest)
	}
	return nil
}
