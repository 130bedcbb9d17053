package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumenmarkets/matching-core/internal/config"
	"github.com/lumenmarkets/matching-core/internal/domain/instrument"
	"github.com/lumenmarkets/matching-core/internal/domain/orderbook"
	"github.com/lumenmarkets/matching-core/internal/domain/stats"
	"github.com/lumenmarkets/matching-core/internal/observability"
	"github.com/lumenmarkets/matching-core/pkg/logger"
	"github.com/lumenmarkets/matching-core/pkg/util"
)

// Engine owns the registry, book, and statistics for one venue and runs the
// background worker that advances time for them. State machine:
// {STOPPED -> RUNNING -> STOPPED}; start/stop are idempotent.
type Engine struct {
	registry *instrument.Registry
	book     *orderbook.Book
	stats    *stats.Statistics
	sink     observability.Sink
	logger   *logger.Logger
	config   *config.Config

	// Simple state management with a mutex instead of atomics, matching the
	// source's own trade-off for its narrow match counter.
	mu      sync.RWMutex
	running bool

	lastGTDCheckTS time.Time
	lastStatusTS   time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds an Engine from its collaborators. sink may be nil, in which
// case observability lines are dropped.
func New(registry *instrument.Registry, book *orderbook.Book, statsAcc *stats.Statistics, sink observability.Sink, l *logger.Logger, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		registry: registry,
		book:     book,
		stats:    statsAcc,
		sink:     sink,
		logger:   l,
		config:   cfg,
		ctx:      context.Background(),
	}
}

// Start marks the engine running and spawns the worker, unless it is
// already running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}

	now := time.Now()
	e.running = true
	e.lastGTDCheckTS = now
	e.lastStatusTS = now

	// Every run of the worker loop carries its own request id, the same way
	// the teacher's Engine threads e.ctx through every ErrorContext/
	// InfoContext call so log lines from one run can be correlated.
	runCtx, cancel := context.WithCancel(context.Background())
	e.ctx = util.WithRequestID(runCtx, "")
	e.cancel = cancel
	e.mu.Unlock()

	e.stats.ResetDaily(now)

	e.wg.Add(1)
	go e.run()

	e.emit(fmt.Sprintf("engine started at %s", now.Format(time.RFC3339)))
}

// Stop clears the running flag and waits for the worker to observe it,
// unless the engine is already stopped. It returns once the worker has
// exited or ctx is done, whichever comes first.
func (e *Engine) Stop(ctx context.Context) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	cancel := e.cancel
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.emit(fmt.Sprintf("engine stopped at %s", time.Now().Format(time.RFC3339)))
	case <-ctx.Done():
		e.logger.WarnContext(e.context(), "engine stop timeout exceeded")
	}
}

// context returns the current run's context, safe to call concurrently
// with Start/Stop reassigning it.
func (e *Engine) context() context.Context {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ctx
}

func (e *Engine) emit(line string) {
	e.emitWithFields(line)
}

// emitWithFields logs line with additional structured fields (e.g. a
// per-submission trace id) while still forwarding the plain line, prefixed
// with an RFC3339 timestamp, to the sink — the Observability interface
// (spec §6) is a human text surface and carries no structured fields of its
// own. The log line carries the current
// run's request id via InfoContext, so every line from one Start/Stop cycle
// can be correlated.
func (e *Engine) emitWithFields(line string, fields ...logger.Field) {
	e.logger.InfoContext(e.context(), line, fields...)
	if e.sink != nil {
		e.sink.Emit(time.Now().Format(time.RFC3339) + " " + line)
	}
}
