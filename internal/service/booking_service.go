package service

import (
	"context"
	"errors"

	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type bookingService struct {
	repo   BookingRepository
	events EventRepository
	l      pkgLog.Logger
}

func NewBookingService(repo BookingRepository, events EventRepository, l pkgLog.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		events: events,
		l:      l,
	}
}

func (s *bookingService) ListByEvent(ctx context.Context, actor auth.Identity, eventID string) ([]models.Booking, error) {
	e, err := s.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.bookingService.ListByEvent: %v", err)
		return nil, err
	}
	if !canEdit(actor, e) {
		s.l.Warnf(ctx, "service.bookingService.ListByEvent: event=%s requested by %s", eventID, actor.UserID)
		return nil, ErrForbidden
	}

	bookings, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		s.l.Errorf(ctx, "service.bookingService.ListByEvent: %v", err)
		return nil, err
	}
	return bookings, nil
}
