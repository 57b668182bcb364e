package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vogiaan1904/swiftseats/internal/payment"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type notificationService struct {
	verifier SignatureVerifier
	recSvc   ReconcileService
	l        pkgLog.Logger
}

func NewNotificationService(verifier SignatureVerifier, recSvc ReconcileService, l pkgLog.Logger) NotificationService {
	return &notificationService{
		verifier: verifier,
		recSvc:   recSvc,
		l:        l,
	}
}

// HandleNotification verifies the raw body before reading any of it, then
// reconciles completed checkout sessions. Every other kind is acknowledged.
func (s *notificationService) HandleNotification(ctx context.Context, payload []byte, signature string) (*NotificationOutput, error) {
	if err := s.verifier.Verify(payload, signature); err != nil {
		s.l.Warnf(ctx, "service.notificationService.HandleNotification: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	n, err := payment.ParseNotification(payload)
	if err != nil {
		s.l.Warnf(ctx, "service.notificationService.HandleNotification: %v", err)
		if errors.Is(err, payment.ErrInvalidSessionData) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSessionData, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	out := &NotificationOutput{
		NotificationID: n.ID,
		Type:           n.Type,
	}

	if n.Completed == nil {
		s.l.Debugf(ctx, "service.notificationService.HandleNotification: ignoring %s (%s)", n.Type, n.ID)
		out.Ignored = true
		return out, nil
	}

	c := n.Completed
	rec, err := s.recSvc.Reconcile(ctx, ReconcileInput{
		TransactionID: c.TransactionID,
		UserID:        c.UserID,
		EventID:       c.EventID,
		Quantity:      c.Quantity,
		Amount:        c.Amount,
		Currency:      c.Currency,
	})
	if err != nil {
		return nil, err
	}

	out.Reconciliation = rec
	return out, nil
}
