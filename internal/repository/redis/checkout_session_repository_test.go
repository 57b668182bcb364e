package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*CheckoutSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cli := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	return NewCheckoutSessionRepository(cli, logger.NewNop(), ttl), mr
}

func TestCheckoutSessionRepository_SaveGet(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := t.Context()

	ss := &models.CheckoutSession{
		ID:        "cs_test_1",
		UserID:    "user-1",
		EventID:   "event-1",
		Quantity:  2,
		UnitPrice: 2500,
		Currency:  "usd",
	}
	require.NoError(t, repo.Save(ctx, ss))

	got, err := repo.Get(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, ss.EventID, got.EventID)
	assert.Equal(t, models.Cents(5000), got.Total())

	assert.Equal(t, time.Hour, mr.TTL("swiftseats:checkout:cs_test_1"))
}

func TestCheckoutSessionRepository_GetMissing(t *testing.T) {
	repo, _ := newTestRepo(t, 0)

	_, err := repo.Get(t.Context(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCheckoutSessionRepository_ListByUserDropsExpired(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := t.Context()

	require.NoError(t, repo.Save(ctx, &models.CheckoutSession{ID: "a", UserID: "u"}))
	require.NoError(t, repo.Save(ctx, &models.CheckoutSession{ID: "b", UserID: "u"}))
	require.NoError(t, repo.Save(ctx, &models.CheckoutSession{ID: "c", UserID: "other"}))

	mr.Del("swiftseats:checkout:a")

	sessions, err := repo.ListByUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "b", sessions[0].ID)

	members, err := mr.SMembers("swiftseats:user:u:checkouts")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
}
