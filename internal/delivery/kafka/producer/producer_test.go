package producer

import (
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kafka "github.com/vogiaan1904/swiftseats/internal/delivery/kafka"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

func TestPublish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	payload := []byte(`{"booking_id":"b-1"}`)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != string(payload) {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewProducer(sp, logger.NewNop())
	err := p.Publish(t.Context(), models.OutboxMessage{
		ID:        "msg-1",
		Topic:     kafka.TopicBookingConfirmed,
		Key:       "event-1",
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducer(sp, logger.NewNop())
	err := p.Publish(t.Context(), models.OutboxMessage{ID: "msg-1", Topic: kafka.TopicPaymentRecorded})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
