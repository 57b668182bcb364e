package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/internal/auth"
	grpcDelivery "github.com/vogiaan1904/swiftseats/internal/delivery/grpc"
	httpDelivery "github.com/vogiaan1904/swiftseats/internal/delivery/http"
	"github.com/vogiaan1904/swiftseats/internal/infra/postgres"
	infraRedis "github.com/vogiaan1904/swiftseats/internal/infra/redis"
	"github.com/vogiaan1904/swiftseats/internal/payment"
	pgRepo "github.com/vogiaan1904/swiftseats/internal/repository/postgres"
	redisRepo "github.com/vogiaan1904/swiftseats/internal/repository/redis"
	"github.com/vogiaan1904/swiftseats/internal/service"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
	"golang.org/x/sync/errgroup"
)

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

	pool, err := postgres.Connect(ctx, l, cfg.Postgres)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to Postgres: %v", err)
	}
	defer postgres.Disconnect(context.Background(), l, pool)

	redisCli, err := infraRedis.Connect(ctx, l, cfg.Redis)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
	}
	defer infraRedis.Disconnect(context.Background(), l, redisCli)

	// Repositories
	txm := pgRepo.NewTxManager(pool)
	eventRepo := pgRepo.NewEventRepository(pool)
	userRepo := pgRepo.NewUserRepository(pool)
	recRepo := pgRepo.NewReconciliationRepository(pool)
	bookingRepo := pgRepo.NewBookingRepository(pool)
	reviewRepo := pgRepo.NewReviewRepository(pool)
	sessionRepo := redisRepo.NewCheckoutSessionRepository(redisCli, l, cfg.Checkout.SessionTTL)

	// Services
	tokens := auth.NewTokenManager(cfg.JWT)
	invSvc := service.NewInventoryService(eventRepo, l)
	recSvc := service.NewReconcileService(txm, service.ReconcileRepositories{
		Payments:        pgRepo.NewPaymentRepository(pool),
		Bookings:        bookingRepo,
		Users:           userRepo,
		Reconciliations: recRepo,
		Outbox:          pgRepo.NewOutboxRepository(pool),
	}, invSvc, l)
	verifier := payment.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance)
	gateway := payment.NewStripeGateway(cfg.Stripe, nil)

	h := httpDelivery.NewHTTPHandler(httpDelivery.Services{
		Notifications: service.NewNotificationService(verifier, recSvc, l),
		Checkout:      service.NewCheckoutService(gateway, invSvc, sessionRepo, recRepo, cfg.Checkout, cfg.Stripe.Currency, l),
		Events:        service.NewEventService(eventRepo, l),
		Bookings:      service.NewBookingService(bookingRepo, eventRepo, l),
		Reviews:       service.NewReviewService(reviewRepo, eventRepo, l),
		Users:         service.NewUserService(userRepo, tokens, l),
		Profiles:      service.NewProfileService(userRepo, eventRepo, reviewRepo, l),
	}, tokens, cfg.Checkout.WebhookTimeout, l)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      h.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	healthSrv := grpcDelivery.NewHealthServer(map[string]grpcDelivery.Pinger{
		"postgres": pool,
		"redis":    grpcDelivery.PingFunc(func(ctx context.Context) error { return redisCli.Ping(ctx).Err() }),
	}, l)

	lnr, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRpcPort))
	if err != nil {
		l.Fatalf(ctx, "gRPC server failed to listen: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Infof(gctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		l.Infof(gctx, "gRPC health server is listening on port: %d", cfg.Server.GRpcPort)
		return healthSrv.Serve(lnr)
	})

	g.Go(func() error {
		healthSrv.Watch(gctx, 10*time.Second)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info(context.Background(), "Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return errors.Join(httpSrv.Shutdown(shutdownCtx), healthSrv.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		l.Errorf(context.Background(), "Server exited with error: %v", err)
		return
	}

	l.Info(context.Background(), "Server exited")
}
