package service

import (
	"context"
	"errors"

	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type profileService struct {
	users   UserRepository
	events  EventRepository
	reviews ReviewRepository
	l       pkgLog.Logger
}

func NewProfileService(users UserRepository, events EventRepository, reviews ReviewRepository, l pkgLog.Logger) ProfileService {
	return &profileService{
		users:   users,
		events:  events,
		reviews: reviews,
		l:       l,
	}
}

// Get returns a user's public page: the events they organize and the reviews
// they wrote. Email and balance are left out.
func (s *profileService) Get(ctx context.Context, userID string) (*ProfileOutput, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		s.l.Errorf(ctx, "service.profileService.Get: %v", err)
		return nil, err
	}

	events, err := s.events.List(ctx, models.EventFilter{OrganizerID: u.ID})
	if err != nil {
		s.l.Errorf(ctx, "service.profileService.Get: %v", err)
		return nil, err
	}
	reviews, err := s.reviews.ListByUser(ctx, u.ID)
	if err != nil {
		s.l.Errorf(ctx, "service.profileService.Get: %v", err)
		return nil, err
	}

	out := &ProfileOutput{
		User:    PublicUser{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt},
		Events:  make([]EventOutput, 0, len(events)),
		Reviews: reviews,
	}
	for i := range events {
		out.Events = append(out.Events, *toEventOutput(&events[i]))
	}
	return out, nil
}
