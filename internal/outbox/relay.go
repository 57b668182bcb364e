package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/swiftseats/internal/models"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
)

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Store interface {
	FetchUnpublished(ctx context.Context, limit int) ([]models.OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []string) error
}

// Relay moves committed outbox rows to Kafka. Delivery is at least once:
// a crash between the broker ack and MarkPublished resends the message.
type Relay struct {
	tx       TxManager
	store    Store
	producer producer.Producer
	l        pkgLog.Logger
	cfg      config.OutboxConfig

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

func NewRelay(tx TxManager, store Store, prod producer.Producer, l pkgLog.Logger, cfg config.OutboxConfig) *Relay {
	return &Relay{
		tx:       tx,
		store:    store,
		producer: prod,
		l:        l,
		cfg:      cfg,
	}
}

// Run polls until ctx is cancelled. A failed batch is retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return errors.New("outbox relay is already running")
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	r.l.Infof(ctx, "outbox.Relay.Run: interval=%s batch=%d", r.cfg.PollInterval, r.cfg.BatchSize)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.l.Infof(ctx, "outbox.Relay.Run: %v", ctx.Err())
			return nil
		case <-ticker.C:
			// drain full batches before waiting for the next tick
			for {
				n, err := r.RelayOnce(ctx)
				if err != nil {
					r.l.Errorf(ctx, "outbox.Relay.Run: %v", err)
					break
				}
				if n < r.cfg.BatchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// RelayOnce publishes at most one batch in message order and returns how many
// were published. It stops at the first failed send so later messages for the
// same key are not delivered ahead of it.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	var (
		published int
		sendErr   error
	)

	err := r.tx.WithTx(ctx, func(ctx context.Context) error {
		msgs, err := r.store.FetchUnpublished(ctx, r.cfg.BatchSize)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(msgs))
		for _, msg := range msgs {
			if sendErr = r.producer.Publish(ctx, msg); sendErr != nil {
				break
			}
			ids = append(ids, msg.ID)
		}

		if len(ids) > 0 {
			if err := r.store.MarkPublished(ctx, ids); err != nil {
				return err
			}
		}
		published = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if published > 0 {
		r.l.Debugf(ctx, "outbox.Relay.RelayOnce: published %d messages", published)
	}
	if sendErr != nil {
		return published, fmt.Errorf("publish outbox message: %w", sendErr)
	}
	return published, nil
}
