package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

type passTx struct{}

func (passTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memStore struct {
	mu       sync.Mutex
	msgs     []models.OutboxMessage
	fetchErr error
}

func (s *memStore) FetchUnpublished(_ context.Context, limit int) ([]models.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]models.OutboxMessage, 0, limit)
	for _, m := range s.msgs {
		if m.PublishedAt == nil && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) MarkPublished(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, id := range ids {
		for i := range s.msgs {
			if s.msgs[i].ID == id {
				s.msgs[i].PublishedAt = &now
			}
		}
	}
	return nil
}

func (s *memStore) unpublished() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.msgs {
		if m.PublishedAt == nil {
			n++
		}
	}
	return n
}

type fakeProducer struct {
	mu     sync.Mutex
	sent   []string
	failOn string
}

func (p *fakeProducer) Publish(_ context.Context, msg models.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if msg.ID == p.failOn {
		return errors.New("kafka: leader not available")
	}
	p.sent = append(p.sent, msg.ID)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func seed(ids ...string) *memStore {
	s := &memStore{}
	for _, id := range ids {
		s.msgs = append(s.msgs, models.OutboxMessage{ID: id, Topic: "payment.recorded", Key: "event-1"})
	}
	return s
}

func TestRelayOnce_PublishesInOrder(t *testing.T) {
	store := seed("m1", "m2", "m3")
	prod := &fakeProducer{}
	r := NewRelay(passTx{}, store, prod, logger.NewNop(), config.OutboxConfig{BatchSize: 2, PollInterval: time.Second})

	n, err := r.RelayOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.RelayOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.RelayOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, []string{"m1", "m2", "m3"}, prod.sent)
	assert.Equal(t, 0, store.unpublished())
}

func TestRelayOnce_StopsAtFirstFailure(t *testing.T) {
	store := seed("m1", "m2", "m3")
	prod := &fakeProducer{failOn: "m2"}
	r := NewRelay(passTx{}, store, prod, logger.NewNop(), config.OutboxConfig{BatchSize: 10, PollInterval: time.Second})

	n, err := r.RelayOnce(t.Context())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"m1"}, prod.sent)
	assert.Equal(t, 2, store.unpublished())

	prod.failOn = ""
	n, err = r.RelayOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"m1", "m2", "m3"}, prod.sent)
}

func TestRelayOnce_FetchError(t *testing.T) {
	store := seed("m1")
	store.fetchErr = errors.New("connection reset")
	r := NewRelay(passTx{}, store, &fakeProducer{}, logger.NewNop(), config.OutboxConfig{BatchSize: 10, PollInterval: time.Second})

	_, err := r.RelayOnce(t.Context())
	assert.Error(t, err)
}

func TestRun_DrainsUntilCancelled(t *testing.T) {
	store := seed("m1", "m2", "m3", "m4", "m5")
	prod := &fakeProducer{}
	r := NewRelay(passTx{}, store, prod, logger.NewNop(), config.OutboxConfig{BatchSize: 2, PollInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	assert.Eventually(t, func() bool { return store.unpublished() == 0 }, time.Second, 5*time.Millisecond)

	assert.Error(t, r.Run(ctx), "second Run must be rejected while the first is active")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
