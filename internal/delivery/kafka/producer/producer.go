package producer

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	kafka "github.com/vogiaan1904/swiftseats/internal/delivery/kafka"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

type Producer interface {
	// Publish sends one outbox message and waits for the broker ack.
	Publish(ctx context.Context, msg models.OutboxMessage) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) Publish(ctx context.Context, msg models.OutboxMessage) error {
	pm := &sarama.ProducerMessage{
		Topic: msg.Topic,
		Key:   sarama.StringEncoder(msg.Key), // partition by event id for per-event ordering
		Value: sarama.ByteEncoder(msg.Payload),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte(kafka.HeaderMessageID),
				Value: []byte(msg.ID),
			},
			{
				Key:   []byte(kafka.HeaderTimestamp),
				Value: []byte(msg.CreatedAt.UTC().Format(time.RFC3339)),
			},
		},
	}

	partition, offset, err := p.prod.SendMessage(pm)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.Publish: topic=%s id=%s: %v", msg.Topic, msg.ID, err)
		return err
	}

	p.l.Debugf(ctx, "delivery.kafka.producer.Publish: topic=%s id=%s partition=%d offset=%d",
		msg.Topic, msg.ID, partition, offset)

	return nil
}

func (p *implProducer) Close() error {
	return p.prod.Close()
}
