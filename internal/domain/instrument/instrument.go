package instrument

import (
	"github.com/shopspring/decimal"
)

// State is the lifecycle state of an instrument. State transitions are out
// of scope for this package; an instrument is immutable once registered.
type State string

const (
	// StateActive marks an instrument open for trading.
	StateActive State = "ACTIVE"
	// StateInactive marks an instrument temporarily withdrawn from trading.
	StateInactive State = "INACTIVE"
	// StateSuspended marks an instrument halted by the venue.
	StateSuspended State = "SUSPENDED"
	// StateDelisted marks an instrument permanently removed from trading.
	StateDelisted State = "DELISTED"
)

// maxNameLength bounds the display name the way the source's fixed 50-byte
// buffer did; here it is just a validated upper bound on a Go string.
const maxNameLength = 50

// Key is the composite identity of an instrument: (instrument_id,
// market_code, currency). Two instruments with the same Key are the same
// instrument as far as the registry and the order book are concerned.
type Key struct {
	InstrumentID int64
	MarketCode   string
	Currency     string
}

// Instrument is a tradable venue record, identified by Key.
type Instrument struct {
	Key

	Name           string
	IssueNumber    int64
	State          State
	ReferencePrice decimal.Decimal
	TradingGroupID int64
	LotSize        int64
	PriceDecimal   int32
	FirmID         int64
}

// New constructs an Instrument, truncating Name to the maximum bounded
// length on construction so later callers never have to re-check it.
func New(key Key, name string, lotSize int64, priceDecimal int32) *Instrument {
	runes := []rune(name)
	if len(runes) > maxNameLength {
		runes = runes[:maxNameLength]
	}

	return &Instrument{
		Key:          key,
		Name:         string(runes),
		State:        StateActive,
		LotSize:      lotSize,
		PriceDecimal: priceDecimal,
	}
}

// Tick returns the instrument's smallest price increment, 10^-PriceDecimal.
func (i *Instrument) Tick() decimal.Decimal {
	return decimal.New(1, -i.PriceDecimal)
}
