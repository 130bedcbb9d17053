package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is an immutable execution record produced by a matching sweep.
type Trade struct {
	TradeID int64

	BuyOrderID  int64
	SellOrderID int64

	MarketCode string
	Currency   string

	Price    decimal.Decimal
	Quantity int64

	Timestamp time.Time
}

// Notional returns the trade's cash value (quantity x price).
func (t Trade) Notional() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}
