package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

const defaultSessionTTL = 24 * time.Hour

type CheckoutSessionRepository struct {
	cli *goredis.Client
	l   logger.Logger
	ttl time.Duration
}

func NewCheckoutSessionRepository(cli *goredis.Client, l logger.Logger, ttl time.Duration) *CheckoutSessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &CheckoutSessionRepository{
		cli: cli,
		l:   l,
		ttl: ttl,
	}
}

// Save stores the session and indexes it under its buyer.
func (r *CheckoutSessionRepository) Save(ctx context.Context, ss *models.CheckoutSession) error {
	data, err := json.Marshal(ss)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}

	userKey := r.userSessionsKey(ss.UserID)

	pipe := r.cli.TxPipeline()
	pipe.Set(ctx, r.sessionKey(ss.ID), data, r.ttl)
	pipe.SAdd(ctx, userKey, ss.ID)
	pipe.Expire(ctx, userKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "repository.redis.CheckoutSessionRepository.Save: %v", err)
		return err
	}

	r.l.Debugf(ctx, "repository.redis.CheckoutSessionRepository.Save: session=%s user=%s event=%s",
		ss.ID, ss.UserID, ss.EventID)

	return nil
}

func (r *CheckoutSessionRepository) Get(ctx context.Context, id string) (*models.CheckoutSession, error) {
	data, err := r.cli.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "repository.redis.CheckoutSessionRepository.Get: %v", err)
		return nil, err
	}

	var ss models.CheckoutSession
	if err := json.Unmarshal(data, &ss); err != nil {
		r.l.Errorf(ctx, "repository.redis.CheckoutSessionRepository.Get: %v", err)
		return nil, err
	}

	return &ss, nil
}

// ListByUser returns the buyer's sessions that have not expired yet.
func (r *CheckoutSessionRepository) ListByUser(ctx context.Context, userID string) ([]models.CheckoutSession, error) {
	userKey := r.userSessionsKey(userID)

	ids, err := r.cli.SMembers(ctx, userKey).Result()
	if err != nil {
		r.l.Errorf(ctx, "repository.redis.CheckoutSessionRepository.ListByUser: %v", err)
		return nil, err
	}

	sessions := make([]models.CheckoutSession, 0, len(ids))
	for _, id := range ids {
		ss, err := r.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			// expired; drop the dangling index entry
			r.cli.SRem(ctx, userKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *ss)
	}

	return sessions, nil
}

func (r *CheckoutSessionRepository) sessionKey(id string) string {
	return fmt.Sprintf("swiftseats:checkout:%s", id)
}

func (r *CheckoutSessionRepository) userSessionsKey(userID string) string {
	return fmt.Sprintf("swiftseats:user:%s:checkouts", userID)
}
