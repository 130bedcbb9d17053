package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenmarkets/matching-core/pkg/errors"
	"github.com/lumenmarkets/matching-core/pkg/logger"
)

// run is the worker loop: it advances daily statistics, drives matching
// sweeps, expires GTD orders, and emits periodic status lines until Stop
// clears the running flag. A stop during a sweep takes effect at the next
// sleep point; there is no mid-sweep preemption.
func (e *Engine) run() {
	defer e.wg.Done()

	ctx := e.context()

	ticker := time.NewTicker(e.config.WorkerTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

func (e *Engine) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.TracerFromError(fmt.Errorf("worker tick panic: %v", r))
			e.logger.ErrorContext(ctx, err, logger.Field{Key: "code", Value: string(errors.InternalSweepError)})
		}
	}()

	now := time.Now()

	if e.stats.ShouldResetDaily(now, e.config.DailyResetInterval) {
		e.resetDaily(now)
	}

	e.backgroundSweep(now)

	if now.Sub(e.lastGTDCheckTS) >= e.config.GTDCheckInterval {
		e.runGTDCheck(now)
	}

	if now.Sub(e.lastStatusTS) >= e.config.StatusInterval {
		e.emitStatus(now)
	}
}

func (e *Engine) resetDaily(now time.Time) {
	removed := e.book.ExpireDay()
	e.stats.ResetDaily(now)
	e.emit(fmt.Sprintf("daily reset at %s (%d DAY orders expired)", now.Format(time.RFC3339), len(removed)))
}

// backgroundSweep is the worker loop's sweep: it counts as a matching
// attempt whether or not it produces a trade (spec §4.4: "matching_attempts
// is incremented once per background sweep, not per trade").
func (e *Engine) backgroundSweep(now time.Time) {
	e.stats.RecordAttempt()
	e.sweep(now)
}

// sweep runs the book's matching algorithm and folds every produced trade
// into the statistics accumulator, emitting a status line when at least
// one trade was produced.
func (e *Engine) sweep(now time.Time) {
	trades := e.book.Match(now)

	for _, tr := range trades {
		e.stats.RecordTrade(tr.Quantity, tr.Price)
	}

	if len(trades) > 0 {
		e.emit(fmt.Sprintf("sweep at %s produced %d trade(s)", now.Format(time.RFC3339), len(trades)))
	}
}

func (e *Engine) runGTDCheck(now time.Time) {
	removed := e.book.RemoveExpiredGTD(now)

	e.mu.Lock()
	e.lastGTDCheckTS = now
	e.mu.Unlock()

	e.emit(fmt.Sprintf("GTD check at %s expired %d order(s)", now.Format(time.RFC3339), len(removed)))
}

func (e *Engine) emitStatus(now time.Time) {
	e.mu.Lock()
	e.lastStatusTS = now
	e.mu.Unlock()

	detailed := e.stats.Detailed()
	e.emit(fmt.Sprintf(
		"status at %s: daily_trades=%d total_trades=%d matching_attempts=%d successful_matches=%d success_rate=%.2f%%",
		now.Format(time.RFC3339),
		detailed.DailyTradeCount,
		detailed.TotalTradeCount,
		detailed.MatchingAttempts,
		detailed.SuccessfulMatches,
		detailed.SuccessRatePercent,
	))
}
