package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

type ProducerConfig struct {
	Brokers      []string
	ClientID     string
	RetryMax     int
	RequiredAcks int
}

// NewProducer builds a sync producer. With acks=-1 the producer is made
// idempotent so broker-side retries cannot duplicate outbox messages.
func NewProducer(cfg ProducerConfig) (sarama.SyncProducer, error) {
	saramaCfg := newConfig(cfg.ClientID)
	saramaCfg.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	saramaCfg.Producer.Retry.Max = cfg.RetryMax
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner

	if saramaCfg.Producer.RequiredAcks == sarama.WaitForAll {
		saramaCfg.Producer.Idempotent = true
		saramaCfg.Net.MaxOpenRequests = 1
	}

	prod, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return prod, nil
}

func newConfig(clientID string) *sarama.Config {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V2_8_0_0
	if clientID != "" {
		saramaCfg.ClientID = clientID
	}
	return saramaCfg
}
