package service

import (
	"context"
	"errors"

	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type inventoryService struct {
	repo EventRepository
	l    pkgLog.Logger
}

func NewInventoryService(repo EventRepository, l pkgLog.Logger) InventoryService {
	return &inventoryService{
		repo: repo,
		l:    l,
	}
}

func (s *inventoryService) Increment(ctx context.Context, eventID string, qty int) (*models.Event, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	e, err := s.repo.IncrementBookedSeats(ctx, eventID, qty)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			s.l.Warnf(ctx, "service.inventoryService.Increment: event=%s: %v", eventID, ErrEventNotFound)
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.inventoryService.Increment: %v", err)
		return nil, err
	}

	if e.IsOverbooked() {
		s.l.Warnf(ctx, "service.inventoryService.Increment: event=%s overbooked booked=%d available=%d",
			e.ID, e.BookedSeats, e.AvailableSeats)
	}

	return e, nil
}

func (s *inventoryService) Remaining(ctx context.Context, eventID string) (int, error) {
	e, err := s.Lookup(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return e.RemainingSeats(), nil
}

func (s *inventoryService) Lookup(ctx context.Context, eventID string) (*models.Event, error) {
	e, err := s.repo.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.inventoryService.Lookup: %v", err)
		return nil, err
	}
	return e, nil
}
