package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka"
	"github.com/vogiaan1904/swiftseats/internal/service"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

const retryDelay = 2 * time.Second

// Consumer feeds payment notifications from Kafka into the same verification
// and reconciliation path as the HTTP webhook.
type Consumer struct {
	consGr  sarama.ConsumerGroup
	notiSvc service.NotificationService
	topic   string
	timeout time.Duration
	l       logger.Logger
	wg      sync.WaitGroup
}

func NewConsumer(
	consGr sarama.ConsumerGroup,
	notiSvc service.NotificationService,
	topic string,
	timeout time.Duration,
	l logger.Logger,
) *Consumer {
	if topic == "" {
		topic = kafka.TopicPaymentNotifications
	}
	return &Consumer{
		consGr:  consGr,
		notiSvc: notiSvc,
		topic:   topic,
		timeout: timeout,
		l:       l,
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	topics := []string{c.topic}
	c.wg.Go(func() {
		for {
			if err := c.consGr.Consume(ctx, topics, c); err != nil {
				c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
			}

			if ctx.Err() != nil {
				c.l.Infof(ctx, "delivery.kafka.consumer.Start: %v", ctx.Err())
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
		}
	})

	c.wg.Go(func() {
		for err := range c.consGr.Errors() {
			c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
		}
	})

	c.l.Infof(ctx, "delivery.kafka.consumer.Start: consuming topics %v", topics)
	return nil
}

func (c *Consumer) Close() error {
	if err := c.consGr.Close(); err != nil {
		return err
	}

	c.wg.Wait()
	return nil
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "delivery.kafka.consumer.Setup: session started")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "delivery.kafka.consumer.Cleanup: session ended")
	return nil
}

// ConsumeClaim marks a message once it is reconciled or can never be. On a
// transient failure it returns without marking, which ends the session and
// redelivers the message from the last committed offset.
func (c *Consumer) ConsumeClaim(ss sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			if err := c.handle(ss.Context(), message); err != nil {
				return err
			}

			ss.MarkMessage(message, "")

		case <-ss.Context().Done():
			return nil
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = c.l.With(ctx, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.notiSvc.HandleNotification(ctx, msg.Value, header(msg, kafka.HeaderSignature))
	if err != nil {
		if service.IsPermanent(err) {
			c.l.Warnf(ctx, "delivery.kafka.consumer.handle: dropping notification: %v", err)
			return nil
		}
		c.l.Errorf(ctx, "delivery.kafka.consumer.handle: %v", err)
		return err
	}

	if out.Reconciliation != nil {
		c.l.Infof(ctx, "delivery.kafka.consumer.handle: transaction=%s state=%s duplicate=%t",
			out.Reconciliation.TransactionID, out.Reconciliation.State, out.Reconciliation.Duplicate)
	}
	return nil
}

func header(msg *sarama.ConsumerMessage, key string) string {
	for _, h := range msg.Headers {
		if h != nil && string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}
