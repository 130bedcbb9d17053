package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Statistics accumulates trade and matching-effort counters. Ticket counts
// are plain atomics; decimal.Decimal has no atomic primitive in Go, so the
// notional fields share one mutex instead — the same trade-off the source's
// own Engine makes for its match counter (a narrow mutex rather than a true
// lock-free update). See the accompanying design notes for the rationale.
type Statistics struct {
	dailyTradeCount   atomic.Int64
	totalTradeCount   atomic.Int64
	matchingAttempts  atomic.Int64
	successfulMatches atomic.Int64

	notionalMu    sync.Mutex
	dailyNotional decimal.Decimal
	totalNotional decimal.Decimal

	resetMu          sync.Mutex
	lastDailyResetTS time.Time
}

// New returns a Statistics accumulator with its reset clock set to now.
func New(now time.Time) *Statistics {
	s := &Statistics{
		dailyNotional: decimal.Zero,
		totalNotional: decimal.Zero,
	}
	s.resetMu.Lock()
	s.lastDailyResetTS = now
	s.resetMu.Unlock()
	return s
}

// RecordTrade folds one produced trade into the daily and lifetime counters.
func (s *Statistics) RecordTrade(quantity int64, price decimal.Decimal) {
	s.dailyTradeCount.Add(1)
	s.totalTradeCount.Add(1)
	s.successfulMatches.Add(1)

	notional := price.Mul(decimal.NewFromInt(quantity))

	s.notionalMu.Lock()
	s.dailyNotional = s.dailyNotional.Add(notional)
	s.totalNotional = s.totalNotional.Add(notional)
	s.notionalMu.Unlock()
}

// RecordAttempt increments matching_attempts once per background sweep,
// independent of how many trades (if any) the sweep produced.
func (s *Statistics) RecordAttempt() {
	s.matchingAttempts.Add(1)
}

// ShouldResetDaily reports whether now is at least interval past the last
// daily reset.
func (s *Statistics) ShouldResetDaily(now time.Time, interval time.Duration) bool {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()
	return now.Sub(s.lastDailyResetTS) >= interval
}

// ResetDaily zeroes the daily fields and the per-window attempt/success
// counters, and sets the reset clock to now.
func (s *Statistics) ResetDaily(now time.Time) {
	s.dailyTradeCount.Store(0)
	s.matchingAttempts.Store(0)
	s.successfulMatches.Store(0)

	s.notionalMu.Lock()
	s.dailyNotional = decimal.Zero
	s.notionalMu.Unlock()

	s.resetMu.Lock()
	s.lastDailyResetTS = now
	s.resetMu.Unlock()
}

// Snapshot is a read-only, point-in-time copy of the accumulator's counters.
type Snapshot struct {
	DailyTradeCount   int64
	DailyNotional     decimal.Decimal
	TotalTradeCount   int64
	TotalNotional     decimal.Decimal
	MatchingAttempts  int64
	SuccessfulMatches int64
	LastDailyResetTS  time.Time
}

// Snapshot returns a consistent-enough view of all counters. Individual
// fields are each internally consistent; cross-counter skew is possible
// under concurrent writers, matching the spec's stated guarantee.
func (s *Statistics) Snapshot() Snapshot {
	s.notionalMu.Lock()
	dailyNotional := s.dailyNotional
	totalNotional := s.totalNotional
	s.notionalMu.Unlock()

	s.resetMu.Lock()
	lastReset := s.lastDailyResetTS
	s.resetMu.Unlock()

	return Snapshot{
		DailyTradeCount:   s.dailyTradeCount.Load(),
		DailyNotional:     dailyNotional,
		TotalTradeCount:   s.totalTradeCount.Load(),
		TotalNotional:     totalNotional,
		MatchingAttempts:  s.matchingAttempts.Load(),
		SuccessfulMatches: s.successfulMatches.Load(),
		LastDailyResetTS:  lastReset,
	}
}

// DetailedSnapshot extends Snapshot with the derived success-rate figure
// the source's displayDetailedStats() computes (supplemented feature).
type DetailedSnapshot struct {
	Snapshot
	SuccessRatePercent float64
}

// Detailed returns Snapshot plus the success rate
// (successful_matches / matching_attempts * 100, 0 when no attempts yet).
func (s *Statistics) Detailed() DetailedSnapshot {
	snap := s.Snapshot()

	var rate float64
	if snap.MatchingAttempts > 0 {
		rate = 100.0 * float64(snap.SuccessfulMatches) / float64(snap.MatchingAttempts)
	}

	return DetailedSnapshot{Snapshot: snap, SuccessRatePercent: rate}
}
