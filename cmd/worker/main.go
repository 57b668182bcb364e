package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka/consumer"
	"github.com/vogiaan1904/swiftseats/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/swiftseats/internal/infra/postgres"
	"github.com/vogiaan1904/swiftseats/internal/outbox"
	"github.com/vogiaan1904/swiftseats/internal/payment"
	pgRepo "github.com/vogiaan1904/swiftseats/internal/repository/postgres"
	"github.com/vogiaan1904/swiftseats/internal/service"
	pkgKafka "github.com/vogiaan1904/swiftseats/pkg/kafka"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const clientID = "swiftseats-worker"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})
	defer func() { _ = l.Sync() }()

	if !cfg.Kafka.Enabled {
		l.Info(ctx, "Kafka is disabled, worker has nothing to do")
		return
	}

	pool, err := postgres.Connect(ctx, l, cfg.Postgres)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to Postgres: %v", err)
	}
	defer postgres.Disconnect(context.Background(), l, pool)

	// Kafka producer
	kSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		ClientID:     clientID,
		RetryMax:     cfg.Kafka.ProducerRetryMax,
		RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
	})
	if err != nil {
		l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
	}
	prod := producer.NewProducer(kSyncProd, l)
	defer func() {
		if err := prod.Close(); err != nil {
			l.Warnf(context.Background(), "Failed to close Kafka producer: %v", err)
		}
	}()

	// Kafka consumer
	kConsGrCli, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: clientID,
		GroupID:  cfg.Kafka.ConsumerGroupID,
	})
	if err != nil {
		l.Fatalf(ctx, "Failed to initialize Kafka consumer: %v", err)
	}

	txm := pgRepo.NewTxManager(pool)
	outboxRepo := pgRepo.NewOutboxRepository(pool)

	recSvc := service.NewReconcileService(txm, service.ReconcileRepositories{
		Payments:        pgRepo.NewPaymentRepository(pool),
		Bookings:        pgRepo.NewBookingRepository(pool),
		Users:           pgRepo.NewUserRepository(pool),
		Reconciliations: pgRepo.NewReconciliationRepository(pool),
		Outbox:          outboxRepo,
	}, service.NewInventoryService(pgRepo.NewEventRepository(pool), l), l)
	notiSvc := service.NewNotificationService(
		payment.NewQueuedVerifier(cfg.Stripe.WebhookSecret), recSvc, l)

	cons := consumer.NewConsumer(kConsGrCli, notiSvc, cfg.Kafka.NotificationTopic, cfg.Checkout.WebhookTimeout, l)
	relay := outbox.NewRelay(txm, outboxRepo, prod, l, cfg.Outbox)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := cons.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		return cons.Close()
	})

	g.Go(func() error {
		return relay.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		l.Errorf(context.Background(), "Worker exited with error: %v", err)
		return
	}

	l.Info(context.Background(), "Worker exited")
}
