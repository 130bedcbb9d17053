package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumenmarkets/matching-core/internal/app/engine"
	"github.com/lumenmarkets/matching-core/internal/config"
	"github.com/lumenmarkets/matching-core/internal/domain/instrument"
	"github.com/lumenmarkets/matching-core/internal/domain/orderbook"
	"github.com/lumenmarkets/matching-core/internal/domain/stats"
	"github.com/lumenmarkets/matching-core/internal/observability"
	"github.com/lumenmarkets/matching-core/pkg/logger"
	"github.com/lumenmarkets/matching-core/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	log, err = logger.NewLogger()
	if err != nil {
		panic(err)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sink := buildSink(ctx)

	registry := instrument.NewRegistry()
	seedInstruments(registry)

	book := orderbook.New()
	statsAcc := stats.New(time.Now())

	eng := engine.New(registry, book, statsAcc, sink, log, cfg)
	eng.Start()

	log.Info("matching engine started", logger.Field{Key: "instruments", Value: len(registry.List())})

	sig := <-sigChan
	log.Info("received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	eng.Stop(shutdownCtx)

	log.Info("matching engine shutdown complete")
}

// buildSink returns a RedisSink, in place of the logger-backed WriterSink,
// when the configured Redis address is reachable; it falls back to the
// WriterSink otherwise, since the core never requires an external subscriber
// (spec §6). The engine logs every line itself in either case.
func buildSink(ctx context.Context) observability.Sink {
	writer := observability.NewWriterSink(log)

	redisConfig := redis.DefaultConfig()
	rclient := redis.NewClient(log, redisConfig)

	connectCtx, connectCancel := context.WithTimeout(ctx, 2*time.Second)
	defer connectCancel()

	if err := rclient.Connect(connectCtx); err != nil {
		log.Warn("redis unavailable, falling back to log-only observability sink",
			logger.Field{Key: "error", Value: err.Error()},
		)
		return writer
	}

	return observability.NewRedisSink(rclient, "matching-core.status", log)
}

// seedInstruments registers the venue's tradable instruments. The core has
// no persistence layer (spec §1); a real deployment would load this list
// from an external collaborator instead of hardcoding it here.
func seedInstruments(registry *instrument.Registry) {
	registry.Register(instrument.New(
		instrument.Key{InstrumentID: 1, MarketCode: "XPAR", Currency: "EUR"},
		"Acme Corp",
		100,
		2,
	))
	registry.Register(instrument.New(
		instrument.Key{InstrumentID: 2, MarketCode: "XPAR", Currency: "EUR"},
		"Bijou Industries",
		50,
		2,
	))
}
