package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type reviewService struct {
	repo   ReviewRepository
	events EventRepository
	l      pkgLog.Logger
}

func NewReviewService(repo ReviewRepository, events EventRepository, l pkgLog.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		events: events,
		l:      l,
	}
}

// Create records the actor's rating of an event. A user reviews an event at
// most once; the storage unique key settles concurrent submissions.
func (s *reviewService) Create(ctx context.Context, actor auth.Identity, eventID string, in ReviewInput) (*models.Review, error) {
	if !models.ValidRating(in.Rating) {
		return nil, ErrInvalidRating
	}
	if in.UserID != "" && in.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}

	rv := &models.Review{
		ID:      uuid.NewString(),
		EventID: eventID,
		UserID:  actor.UserID,
		Rating:  in.Rating,
		Text:    strings.TrimSpace(in.Text),
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyReviewed
		case errors.Is(err, repository.ErrInvalidReference), errors.Is(err, repository.ErrInvalidID):
			return nil, ErrUserNotFound
		}
		s.l.Errorf(ctx, "service.reviewService.Create: %v", err)
		return nil, err
	}

	s.l.Infof(ctx, "service.reviewService.Create: event=%s user=%s rating=%d", eventID, actor.UserID, rv.Rating)
	return rv, nil
}

func (s *reviewService) ListByEvent(ctx context.Context, eventID string) ([]models.Review, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		s.l.Errorf(ctx, "service.reviewService.ListByEvent: %v", err)
		return nil, err
	}
	return reviews, nil
}

func (s *reviewService) ensureEvent(ctx context.Context, eventID string) error {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrEventNotFound
		}
		s.l.Errorf(ctx, "service.reviewService.ensureEvent: %v", err)
		return err
	}
	return nil
}
