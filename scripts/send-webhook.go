package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka"
	"github.com/vogiaan1904/swiftseats/internal/payment"
	pkgKafka "github.com/vogiaan1904/swiftseats/pkg/kafka"
)

var (
	target    = flag.String("url", "http://localhost:8080/api/webhook", "Webhook endpoint")
	brokers   = flag.String("kafka", "", "Publish to this Kafka broker instead of posting over HTTP")
	secret    = flag.String("secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Webhook signing secret")
	eventID   = flag.String("event", "", "Event ID (required)")
	userID    = flag.String("user", "", "Buyer user ID (default: random)")
	sessionID = flag.String("session", "", "Checkout session ID (default: random)")
	quantity  = flag.Int("quantity", 2, "Seats purchased")
	amount    = flag.Int64("amount", 5000, "amount_total in cents")
	times     = flag.Int("times", 5, "How many times to deliver the same notification")
	parallel  = flag.Bool("parallel", true, "Deliver concurrently")
)

func main() {
	flag.Parse()

	if *eventID == "" || *secret == "" {
		fmt.Fprintln(os.Stderr, "-event and -secret are required")
		flag.Usage()
		os.Exit(2)
	}
	if *userID == "" {
		*userID = uuid.NewString()
	}
	if *sessionID == "" {
		*sessionID = "cs_test_" + uuid.NewString()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	payload, err := buildPayload()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build payload: %v\n", err)
		os.Exit(1)
	}

	send := postHTTP
	if *brokers != "" {
		prod, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      []string{*brokers},
			ClientID:     "swiftseats-send-webhook",
			RetryMax:     3,
			RequiredAcks: int(sarama.WaitForAll),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "kafka producer: %v\n", err)
			os.Exit(1)
		}
		defer prod.Close()
		send = publishKafka(prod)
	}

	fmt.Printf("Delivering %s %d times (event=%s user=%s qty=%d amount=%d)\n",
		*sessionID, *times, *eventID, *userID, *quantity, *amount)

	var wg sync.WaitGroup
	for i := range *times {
		deliver := func() {
			// a fresh timestamp per attempt, as a real processor retry would carry
			header := payment.SignatureHeader(payload, *secret, time.Now())
			result, err := send(ctx, payload, header)
			if err != nil {
				fmt.Printf("  #%d error: %v\n", i+1, err)
				return
			}
			fmt.Printf("  #%d %s\n", i+1, result)
		}

		if *parallel {
			wg.Go(deliver)
		} else {
			deliver()
		}
	}
	wg.Wait()
}

func buildPayload() ([]byte, error) {
	return json.Marshal(map[string]any{
		"id":       "evt_" + uuid.NewString(),
		"object":   "event",
		"type":     "checkout.session.completed",
		"livemode": false,
		"created":  time.Now().Unix(),
		"data": map[string]any{
			"object": map[string]any{
				"id":           *sessionID,
				"object":       "checkout.session",
				"amount_total": *amount,
				"currency":     "usd",
				"metadata": map[string]string{
					payment.MetadataUserID:   *userID,
					payment.MetadataEventID:  *eventID,
					payment.MetadataQuantity: fmt.Sprint(*quantity),
				},
			},
		},
	})
}

func postHTTP(ctx context.Context, payload []byte, header string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *target, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return fmt.Sprintf("%d %s", resp.StatusCode, bytes.TrimSpace(body)), nil
}

func publishKafka(prod sarama.SyncProducer) func(context.Context, []byte, string) (string, error) {
	return func(_ context.Context, payload []byte, header string) (string, error) {
		partition, offset, err := prod.SendMessage(&sarama.ProducerMessage{
			Topic: kafka.TopicPaymentNotifications,
			Key:   sarama.StringEncoder(*sessionID),
			Value: sarama.ByteEncoder(payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte(kafka.HeaderSignature), Value: []byte(header)},
			},
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("partition=%d offset=%d", partition, offset), nil
	}
}
