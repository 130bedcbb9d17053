package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmarkets/matching-core/internal/config"
	"github.com/lumenmarkets/matching-core/internal/domain/instrument"
	"github.com/lumenmarkets/matching-core/internal/domain/order"
	"github.com/lumenmarkets/matching-core/internal/domain/orderbook"
	"github.com/lumenmarkets/matching-core/internal/domain/stats"
	"github.com/lumenmarkets/matching-core/pkg/logger"
)

func testKey() instrument.Key {
	return instrument.Key{InstrumentID: 1, MarketCode: "XPAR", Currency: "EUR"}
}

func setupTestFixture(t *testing.T) *Engine {
	t.Helper()

	l, err := logger.NewLogger()
	require.NoError(t, err)

	registry := instrument.NewRegistry()
	require.True(t, registry.Register(instrument.New(testKey(), "Acme Corp", 100, 2)))

	cfg := config.Default()
	cfg.WorkerTickInterval = 10 * time.Millisecond

	return New(registry, orderbook.New(), stats.New(time.Now()), nil, l, cfg)
}

func testOrder(id int64, side order.Side, price string, qty int64) *order.Order {
	return &order.Order{
		OrderID:      id,
		MarketCode:   "XPAR",
		Currency:     "EUR",
		InstrumentID: 1,
		Side:         side,
		Price:        decimal.RequireFromString(price),
		OriginalQty:  qty,
		RemainingQty: qty,
		PriorityTS:   time.Now(),
		TimeInForce:  order.Day,
	}
}

func TestEngine_Submit(t *testing.T) {
	t.Run("unknown instrument is rejected", func(t *testing.T) {
		e := setupTestFixture(t)
		o := testOrder(1, order.Bid, "155.00", 300)
		o.InstrumentID = 999

		assert.False(t, e.Submit(o))
	})

	t.Run("invalid price is rejected", func(t *testing.T) {
		e := setupTestFixture(t)
		o := testOrder(1, order.Bid, "150.005", 300)

		assert.False(t, e.Submit(o))
	})

	t.Run("invalid quantity is rejected", func(t *testing.T) {
		e := setupTestFixture(t)
		o := testOrder(1, order.Bid, "150.00", 150)

		assert.False(t, e.Submit(o))
	})

	t.Run("valid order is accepted and crosses immediately", func(t *testing.T) {
		e := setupTestFixture(t)

		bid := testOrder(1001, order.Bid, "155.00", 300)
		require.True(t, e.Submit(bid))

		ask := testOrder(2001, order.Ask, "148.00", 200)
		require.True(t, e.Submit(ask))

		tr, ok := e.book.LastTrade()
		require.True(t, ok)
		assert.Equal(t, int64(200), tr.Quantity)
	})
}

func TestEngine_StartStop_Idempotent(t *testing.T) {
	e := setupTestFixture(t)

	e.Start()
	e.Start() // no-op, must not spawn a second worker or panic
	assert.True(t, e.Running())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	e.Stop(ctx)
	assert.False(t, e.Running())

	e.Stop(ctx) // stopping an already-stopped engine is a no-op
	assert.False(t, e.Running())
}

func TestEngine_Stop_TerminatesWithinOneTickInterval(t *testing.T) {
	e := setupTestFixture(t)
	e.Start()

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		e.Stop(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(e.config.WorkerTickInterval):
		t.Fatal("Stop did not return within one worker tick interval")
	}

	assert.False(t, e.Running())
}

func TestEngine_ListGTD(t *testing.T) {
	e := setupTestFixture(t)

	gtd := testOrder(3001, order.Ask, "152.00", 100)
	gtd.TimeInForce = order.GTD
	gtd.ExpirationTS = time.Now().Add(time.Hour)
	require.True(t, e.Submit(gtd))

	list := e.ListGTD()
	require.Len(t, list, 1)
	assert.Equal(t, int64(3001), list[0].OrderID)
}

func TestEngine_DetailedStats_CountsSubmitTrades(t *testing.T) {
	e := setupTestFixture(t)

	require.True(t, e.Submit(testOrder(1001, order.Bid, "155.00", 300)))
	require.True(t, e.Submit(testOrder(2001, order.Ask, "148.00", 200)))

	detailed := e.DetailedStats()
	assert.Equal(t, int64(1), detailed.SuccessfulMatches)
}
