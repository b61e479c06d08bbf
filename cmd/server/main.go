package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"devdeck/internal/card"
	"devdeck/internal/card/cache"
	cardhandler "devdeck/internal/card/handler"
	cardmetrics "devdeck/internal/card/metrics"
	"devdeck/internal/events"
	"devdeck/internal/jwttoken"
	"devdeck/internal/payments"
	"devdeck/internal/platform/config"
	"devdeck/internal/platform/httpserver"
	"devdeck/internal/platform/logger"
	"devdeck/internal/platform/metrics"
	platformredis "devdeck/internal/platform/redis"
	httptransport "devdeck/internal/transport/http"
	id "devdeck/pkg/domain"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	appMetrics := metrics.New()
	eventMetrics := events.New()

	owner, err := registryOwner(cfg)
	if err != nil {
		return err
	}

	store, err := cardStore(ctx, cfg)
	if err != nil {
		return err
	}

	sink, worker, producer, err := notificationPipeline(ctx, cfg, log, eventMetrics)
	if err != nil {
		return err
	}
	if producer != nil {
		defer producer.Close()
	}

	// Dev-mode settlement: a seeded in-memory ledger stands in for the
	// external payment processor.
	ledger := payments.NewLedger()

	var opts []card.ServiceOption
	checks := map[string]httptransport.HealthChecker{}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient
		opts = append(opts, card.WithViewCache(cache.New(redisClient, cache.DefaultTTL, log)))
	}

	registry, err := card.NewService(ctx, owner, cfg.CardFee, store, ledger, events.NewPublisher(sink), cardmetrics.New(), opts...)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "devdeck", "devdeck-api")
	handler := cardhandler.New(registry, log, appMetrics, jwttoken.NewJWTServiceAdapter(jwtService))
	router := httptransport.NewRouter([]httptransport.Registrar{handler}, checks)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting devdeck", "addr", cfg.Addr, "card_fee", cfg.CardFee)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if worker != nil {
		g.Go(func() error {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// registryOwner resolves the fee-collecting account, generating an ephemeral
// one in dev mode when none is configured.
func registryOwner(cfg config.Server) (id.AccountID, error) {
	if cfg.RegistryOwner == "" {
		return id.NewAccountID(), nil
	}
	return id.ParseAccountID(cfg.RegistryOwner)
}

func cardStore(ctx context.Context, cfg config.Server) (card.Store, error) {
	if cfg.PostgresDSN == "" {
		return card.NewInMemoryStore(), nil
	}
	db, err := card.OpenPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	return card.NewPostgresStore(db), nil
}

// notificationPipeline picks the event sink. Without brokers configured the
// memory sink absorbs events and no worker runs.
func notificationPipeline(ctx context.Context, cfg config.Server, log *slog.Logger, m *events.Metrics) (events.Sink, *events.Worker, *events.KafkaProducer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NewMemorySink(), nil, nil, nil
	}
	producer, err := events.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return nil, nil, nil, err
	}
	channelSink := events.NewChannelSink(1024, m)
	worker := events.NewWorker(channelSink.Inbox(), producer, log, m)
	return channelSink, worker, producer, nil
}
