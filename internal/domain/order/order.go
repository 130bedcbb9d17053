package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenmarkets/matching-core/internal/domain/instrument"
)

// Side is the direction of a resting order.
type Side string

const (
	// Bid is a buy-side resting order.
	Bid Side = "BID"
	// Ask is a sell-side resting order.
	Ask Side = "ASK"
)

// LimitType distinguishes priced orders from unpriced ones. It is carried
// for routing fidelity; neither validation nor the matching sweep inspects it.
type LimitType string

const (
	// Limit is a priced order.
	Limit LimitType = "LIMIT"
	// None is an unpriced order.
	None LimitType = "NONE"
)

// TimeInForce controls when a resting order expires.
type TimeInForce string

const (
	// Day orders expire at the engine's daily reset.
	Day TimeInForce = "DAY"
	// GTD orders expire at a caller-supplied timestamp.
	GTD TimeInForce = "GTD"
)

// Order is a single buy or sell instruction routed to one instrument.
type Order struct {
	OrderID int64
	FirmID  int64

	MarketCode   string
	Currency     string
	InstrumentID int64

	Side      Side
	Price     decimal.Decimal
	LimitType LimitType

	OriginalQty  int64
	RemainingQty int64

	PriorityTS   time.Time
	TimeInForce  TimeInForce
	ExpirationTS time.Time
}

// RoutingKey returns the (instrument_id, market_code, currency) triple used
// both for instrument lookup and for the matching sweep's compatibility check.
func (o *Order) RoutingKey() instrument.Key {
	return instrument.Key{
		InstrumentID: o.InstrumentID,
		MarketCode:   o.MarketCode,
		Currency:     o.Currency,
	}
}

// IsBid reports whether the order rests on the bid side.
func (o *Order) IsBid() bool {
	return o.Side == Bid
}

// IsAsk reports whether the order rests on the ask side.
func (o *Order) IsAsk() bool {
	return o.Side == Ask
}

// IsFilled reports whether the order has no quantity left to match.
func (o *Order) IsFilled() bool {
	return o.RemainingQty == 0
}

// CompatibleWith reports whether two orders share the same routing triple
// and may therefore be matched against each other.
func (o *Order) CompatibleWith(other *Order) bool {
	return o.RoutingKey() == other.RoutingKey()
}

// IsExpired reports whether a GTD order's expiration has elapsed as of now.
// DAY orders are never expired by this check; their expiry is tied to the
// engine's daily reset instead.
func (o *Order) IsExpired(now time.Time) bool {
	return o.TimeInForce == GTD && !o.ExpirationTS.After(now)
}
