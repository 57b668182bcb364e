package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type eventService struct {
	repo EventRepository
	l    pkgLog.Logger
}

func NewEventService(repo EventRepository, l pkgLog.Logger) EventService {
	return &eventService{
		repo: repo,
		l:    l,
	}
}

func (s *eventService) Create(ctx context.Context, actor auth.Identity, in EventInput) (*EventOutput, error) {
	if !actor.Role.CanManageEvents() {
		return nil, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	e := &models.Event{ID: uuid.NewString(), OrganizerID: actor.UserID}
	in.apply(e)

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		s.l.Errorf(ctx, "service.eventService.Create: %v", err)
		return nil, err
	}

	s.l.Infof(ctx, "service.eventService.Create: event=%s organizer=%s seats=%d", e.ID, e.OrganizerID, e.AvailableSeats)

	return toEventOutput(e), nil
}

func (s *eventService) Get(ctx context.Context, id string) (*EventOutput, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEventOutput(e), nil
}

func (s *eventService) List(ctx context.Context, filter models.EventFilter) ([]EventOutput, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.l.Errorf(ctx, "service.eventService.List: %v", err)
		return nil, err
	}

	out := make([]EventOutput, 0, len(events))
	for i := range events {
		out = append(out, *toEventOutput(&events[i]))
	}
	return out, nil
}

func (s *eventService) Update(ctx context.Context, actor auth.Identity, id string, in EventInput) (*EventOutput, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, e) {
		return nil, ErrForbidden
	}
	if in.AvailableSeats < e.BookedSeats {
		return nil, ErrCapacityBelowBooked
	}

	in.apply(e)

	if err := s.repo.Update(ctx, e); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrCapacityBelowBooked
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.eventService.Update: %v", err)
		return nil, err
	}

	return toEventOutput(e), nil
}

func (s *eventService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	e, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(actor, e) {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidReference):
			return ErrEventHasBookings
		case errors.Is(err, repository.ErrNotFound):
			return ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.eventService.Delete: %v", err)
		return err
	}

	s.l.Infof(ctx, "service.eventService.Delete: event=%s by %s", id, actor.UserID)
	return nil
}

func (s *eventService) get(ctx context.Context, id string) (*models.Event, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.eventService.get: %v", err)
		return nil, err
	}
	return e, nil
}

func canEdit(actor auth.Identity, e *models.Event) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.Role == models.RoleOrganizer && actor.UserID == e.OrganizerID
}

func toEventOutput(e *models.Event) *EventOutput {
	return &EventOutput{Event: *e, RemainingSeats: e.RemainingSeats()}
}

func (in EventInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	case in.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidEvent)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidEvent)
	case in.AvailableSeats < 0:
		return fmt.Errorf("%w: availableSeats must not be negative", ErrInvalidEvent)
	}
	return nil
}

func (in EventInput) apply(e *models.Event) {
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.Category = in.Category
	e.Address = in.Address
	e.City = in.City
	e.Date = in.Date
	e.Price = in.Price
	e.AvailableSeats = in.AvailableSeats
	e.ImageURL = in.ImageURL
}
