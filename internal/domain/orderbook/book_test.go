package orderbook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
)

func newOrder(id int64, instrumentID int64, side order.Side, price string, qty int64, ts time.Time) *order.Order {
	return &order.Order{
		OrderID:      id,
		MarketCode:   "XPAR",
		Currency:     "EUR",
		InstrumentID: instrumentID,
		Side:         side,
		Price:        decimal.RequireFromString(price),
		OriginalQty:  qty,
		RemainingQty: qty,
		PriorityTS:   ts,
		TimeInForce:  order.Day,
	}
}

func TestBook_Match_BasicCross(t *testing.T) {
	b := New()
	now := time.Now()

	bid := newOrder(1001, 1, order.Bid, "155.00", 300, now)
	ask := newOrder(2001, 1, order.Ask, "148.00", 200, now.Add(time.Millisecond))

	b.Insert(bid)
	b.Insert(ask)

	trades := b.Match(now.Add(time.Second))

	require.Len(t, trades, 1)
	tr := trades[0]
	assert.Equal(t, int64(1001), tr.BuyOrderID)
	assert.Equal(t, int64(2001), tr.SellOrderID)
	assert.Equal(t, int64(200), tr.Quantity)
	assert.True(t, tr.Price.Equal(decimal.RequireFromString("148.00")))

	assert.Equal(t, int64(100), bid.RemainingQty)
	assert.Equal(t, int64(0), ask.RemainingQty)

	snap := b.Snapshot()
	assert.Len(t, snap.Orders, 1, "filled ask should have been removed from the book")
}

func TestBook_Match_TimePriorityAtSamePrice(t *testing.T) {
	b := New()
	t0 := time.Now()

	bid1 := newOrder(1001, 1, order.Bid, "155.00", 300, t0)
	ask1 := newOrder(2001, 1, order.Ask, "148.00", 200, t0.Add(100*time.Millisecond))
	b.Insert(bid1)
	b.Insert(ask1)
	b.Match(t0.Add(time.Second))
	require.Equal(t, int64(100), bid1.RemainingQty)

	bid2 := newOrder(1002, 1, order.Bid, "155.00", 200, t0.Add(200*time.Millisecond))
	bid3 := newOrder(1003, 1, order.Bid, "155.00", 200, t0.Add(300*time.Millisecond))
	b.Insert(bid2)
	b.Insert(bid3)

	snap := b.Snapshot()
	var bidsAtPrice []*order.Order
	for _, o := range snap.Orders {
		if o.IsBid() {
			bidsAtPrice = append(bidsAtPrice, o)
		}
	}
	require.Len(t, bidsAtPrice, 3)
	assert.Equal(t, int64(1001), bidsAtPrice[0].OrderID)
	assert.Equal(t, int64(1002), bidsAtPrice[1].OrderID)
	assert.Equal(t, int64(1003), bidsAtPrice[2].OrderID)

	byID := map[int64]*order.Order{}
	for _, o := range bidsAtPrice {
		byID[o.OrderID] = o
	}
	require.Contains(t, byID, int64(1001))
	require.Contains(t, byID, int64(1002))
	require.Contains(t, byID, int64(1003))
	assert.Equal(t, int64(100), byID[1001].RemainingQty)
}

func TestBook_RemoveExpiredGTD(t *testing.T) {
	b := New()
	t0 := time.Now()

	ask := newOrder(3001, 1, order.Ask, "152.00", 100, t0)
	ask.TimeInForce = order.GTD
	ask.ExpirationTS = t0.Add(time.Hour)
	b.Insert(ask)

	removedBeforeExpiry := b.RemoveExpiredGTD(t0.Add(30 * time.Minute))
	assert.Empty(t, removedBeforeExpiry)

	_, lastTradeExists := b.LastTrade()
	assert.False(t, lastTradeExists)

	removed := b.RemoveExpiredGTD(t0.Add(2 * time.Hour))
	require.Len(t, removed, 1)
	assert.Equal(t, int64(3001), removed[0].OrderID)

	snap := b.Snapshot()
	assert.Empty(t, snap.Orders)
}

func TestBook_Match_IncompatibleTopOfBook(t *testing.T) {
	b := New()
	now := time.Now()

	bidA := newOrder(1, 1, order.Bid, "100.00", 100, now)
	askB := newOrder(2, 2, order.Ask, "100.00", 100, now)
	b.Insert(bidA)
	b.Insert(askB)

	trades := b.Match(now.Add(time.Second))

	assert.Empty(t, trades)
	assert.Equal(t, int64(100), bidA.RemainingQty)
	assert.Equal(t, int64(100), askB.RemainingQty)
}

func TestBook_Match_NeverLeavesACrossedBook(t *testing.T) {
	b := New()
	now := time.Now()

	b.Insert(newOrder(1, 1, order.Bid, "155.00", 300, now))
	b.Insert(newOrder(2, 1, order.Ask, "148.00", 500, now))

	b.Match(now.Add(time.Second))

	_, bidLvl, hasBid := bestLevel(b.bids, true)
	_, askLvl, hasAsk := bestLevel(b.asks, false)
	if hasBid && hasAsk {
		assert.True(t, bidLvl.price.LessThan(askLvl.price))
	}
}
