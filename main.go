package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "fanmeet-engine/internal/biddingService"
	"fanmeet-engine/internal/config"
	"fanmeet-engine/internal/eventlog"
	"fanmeet-engine/internal/lifecycle"
	"fanmeet-engine/internal/payment"
	"fanmeet-engine/internal/repository"
	"fanmeet-engine/internal/scheduler"
	"fanmeet-engine/internal/server"
	"fanmeet-engine/pkg/rabbitmq"
	"fanmeet-engine/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown log level, keeping info", map[string]any{"level": cfg.LogLevel})
	}

	ctx := context.Background()

	store, err := openStore(cfg)
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"driver": cfg.DBDriver, "error": err.Error()})
	}
	defer store.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	events := eventlog.New(store, publisher, cfg.EventsExchange)

	biddingSvc := bidding.NewBiddingService(store,
		bidding.WithBidStep(cfg.BidStep),
		bidding.WithMaxAttempts(cfg.TransitionAttempts),
		bidding.WithEventRecorder(events),
	)
	lifecycleSvc := lifecycle.NewService(store, biddingSvc, newGateway(cfg),
		lifecycle.WithNoShowGrace(cfg.NoShowGrace),
		lifecycle.WithCommissionBPS(cfg.CommissionBPS),
		lifecycle.WithMaxAttempts(cfg.TransitionAttempts),
		lifecycle.WithSweepConcurrency(cfg.SweepConcurrency),
		lifecycle.WithEventSink(events),
	)

	locker := newLocker(ctx, cfg)
	jobs := scheduler.New(lifecycleSvc, locker, scheduler.Config{
		SweepSchedule:        cfg.SweepSchedule,
		AuctionCloseSchedule: cfg.AuctionCloseSchedule,
		LockTTL:              cfg.SweepLockTTL,
	})
	if err := jobs.Start(); err != nil {
		utils.Fatal("failed to start scheduler", map[string]any{"error": err.Error()})
	}

	router := server.SetupRouter(biddingSvc, lifecycleSvc, events)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting fan meet engine", map[string]any{"addr": srv.Addr, "db_driver": cfg.DBDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	// Wait for termination signal to gracefully shut down
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	utils.Info("shutdown signal received", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("server shutdown failed", map[string]any{"error": err.Error()})
	}

	stopCtx := jobs.Stop()
	<-stopCtx.Done() // wait for running jobs
	if closer, ok := locker.(*scheduler.RedisLocker); ok {
		_ = closer.Close()
	}
	utils.Info("fan meet engine stopped", nil)
}

func openStore(cfg *config.Config) (repository.Store, error) {
	if cfg.DBDriver == "memory" {
		return repository.NewMemoryRepo(), nil
	}
	return repository.OpenGorm(cfg.DBDriver, cfg.DBDSN)
}

// newPublisher falls back to dropping events when RabbitMQ is absent or unreachable
func newPublisher(cfg *config.Config) rabbitmq.Publisher {
	if cfg.RabbitMQURL == "" {
		return rabbitmq.FallbackPublisher{}
	}
	producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
	if err != nil {
		utils.Warn("rabbitmq unavailable, events are stored only", map[string]any{"error": err.Error()})
		return rabbitmq.FallbackPublisher{}
	}
	return producer
}

func newGateway(cfg *config.Config) payment.Gateway {
	if cfg.PaymentServiceURL == "" {
		utils.Warn("PAYMENT_SERVICE_URL not set, settling against the in-process ledger", nil)
		return payment.NewLedgerGateway()
	}
	return payment.NewClient(cfg.PaymentServiceURL)
}

// newLocker shares the job lock through Redis when more than one replica runs
func newLocker(ctx context.Context, cfg *config.Config) scheduler.Locker {
	if cfg.RedisURL == "" {
		return scheduler.NewLocalLocker()
	}
	locker, err := scheduler.NewRedisLocker(ctx, cfg.RedisURL)
	if err != nil {
		utils.Fatal("failed to connect to redis", map[string]any{"error": err.Error()})
	}
	return locker
}
