package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/payment"
	"github.com/vogiaan1904/swiftseats/internal/service"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

type fakeNotifications struct {
	calls []string
	errs  map[string]error
}

func (f *fakeNotifications) HandleNotification(_ context.Context, payload []byte, signature string) (*service.NotificationOutput, error) {
	f.calls = append(f.calls, string(payload)+"|"+signature)
	if err := f.errs[string(payload)]; err != nil {
		return nil, err
	}
	return &service.NotificationOutput{
		Reconciliation: &service.ReconcileOutput{TransactionID: string(payload)},
	}, nil
}

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "member-1" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	msgs chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return kafka.TopicPaymentNotifications }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return int64(len(c.msgs)) }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }

func claimOf(payloads ...string) *fakeClaim {
	c := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage, len(payloads))}
	for i, p := range payloads {
		c.msgs <- &sarama.ConsumerMessage{
			Topic:  kafka.TopicPaymentNotifications,
			Offset: int64(i),
			Value:  []byte(p),
			Headers: []*sarama.RecordHeader{
				{Key: []byte(kafka.HeaderSignature), Value: []byte("t=1,v1=sig")},
			},
		}
	}
	close(c.msgs)
	return c
}

func TestConsumeClaim_MarksHandledAndPermanentFailures(t *testing.T) {
	svc := &fakeNotifications{errs: map[string]error{
		"forged": fmt.Errorf("%w: bad mac", service.ErrInvalidSignature),
	}}
	c := NewConsumer(nil, svc, "", 0, logger.NewNop())
	sess := &fakeSession{ctx: t.Context()}

	err := c.ConsumeClaim(sess, claimOf("cs_1", "forged", "cs_2"))
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1, 2}, sess.marked)
	assert.Equal(t, []string{"cs_1|t=1,v1=sig", "forged|t=1,v1=sig", "cs_2|t=1,v1=sig"}, svc.calls)
}

func TestConsumeClaim_TransientFailureStopsWithoutMarking(t *testing.T) {
	svc := &fakeNotifications{errs: map[string]error{
		"cs_2": fmt.Errorf("%w: connection refused", service.ErrReconcileFailed),
	}}
	c := NewConsumer(nil, svc, "", 0, logger.NewNop())
	sess := &fakeSession{ctx: t.Context()}

	err := c.ConsumeClaim(sess, claimOf("cs_1", "cs_2", "cs_3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrReconcileFailed))

	assert.Equal(t, []int64{0}, sess.marked)
	assert.Len(t, svc.calls, 2)
}

type flakyReconciler struct {
	failures int
	inputs   []service.ReconcileInput
}

func (r *flakyReconciler) Reconcile(_ context.Context, in service.ReconcileInput) (*service.ReconcileOutput, error) {
	r.inputs = append(r.inputs, in)
	if r.failures > 0 {
		r.failures--
		return nil, fmt.Errorf("%w: connection refused", service.ErrReconcileFailed)
	}
	return &service.ReconcileOutput{TransactionID: in.TransactionID, State: models.ReconciliationComplete}, nil
}

func (r *flakyReconciler) GetState(context.Context, string) (*models.Reconciliation, error) {
	return nil, service.ErrReconciliationNotFound
}

func TestConsumeClaim_LaggedNotificationIsRedeliveredUntilReconciled(t *testing.T) {
	const secret = "whsec_worker_test"
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_lagged",
			"amount_total": 5000,
			"currency": "usd",
			"metadata": {"userId": "buyer-1", "eventId": "event-1", "quantity": "2"}
		}}
	}`)
	signedAt := time.Now().Add(-10 * time.Minute)

	claim := func() *fakeClaim {
		c := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage, 1)}
		c.msgs <- &sarama.ConsumerMessage{
			Topic:  kafka.TopicPaymentNotifications,
			Offset: 7,
			Value:  payload,
			Headers: []*sarama.RecordHeader{{
				Key:   []byte(kafka.HeaderSignature),
				Value: []byte(payment.SignatureHeader(payload, secret, signedAt)),
			}},
		}
		close(c.msgs)
		return c
	}

	rec := &flakyReconciler{failures: 1}
	notiSvc := service.NewNotificationService(payment.NewQueuedVerifier(secret), rec, logger.NewNop())
	c := NewConsumer(nil, notiSvc, "", 0, logger.NewNop())

	// store outage: left unmarked so the group redelivers it
	sess := &fakeSession{ctx: t.Context()}
	err := c.ConsumeClaim(sess, claim())
	require.Error(t, err)
	assert.False(t, service.IsPermanent(err))
	assert.Empty(t, sess.marked)

	sess = &fakeSession{ctx: t.Context()}
	require.NoError(t, c.ConsumeClaim(sess, claim()))
	assert.Equal(t, []int64{7}, sess.marked)

	require.Len(t, rec.inputs, 2)
	assert.Equal(t, "cs_test_lagged", rec.inputs[1].TransactionID)
	assert.Equal(t, models.Cents(5000), rec.inputs[1].Amount)
}

func TestHeader(t *testing.T) {
	msg := &sarama.ConsumerMessage{Headers: []*sarama.RecordHeader{
		nil,
		{Key: []byte("other"), Value: []byte("x")},
		{Key: []byte(kafka.HeaderSignature), Value: []byte("sig")},
	}}
	assert.Equal(t, "sig", header(msg, kafka.HeaderSignature))
	assert.Empty(t, header(msg, "missing"))
}
