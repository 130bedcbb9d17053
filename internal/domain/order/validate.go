package order

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/lumenmarkets/matching-core/internal/domain/instrument"
	coreerrors "github.com/lumenmarkets/matching-core/pkg/errors"
)

// Validate runs both order validators against inst and returns every
// failure aggregated into one error, or nil if the order may be accepted.
func (o *Order) Validate(inst *instrument.Instrument, priceEpsilon float64) error {
	var err error

	if e := o.validatePrice(inst, priceEpsilon); e != nil {
		err = multierr.Append(err, e)
	}
	if e := o.validateQuantity(inst); e != nil {
		err = multierr.Append(err, e)
	}

	return err
}

// validatePrice checks that Price is strictly positive and lies on the
// instrument's tick grid within priceEpsilon.
func (o *Order) validatePrice(inst *instrument.Instrument, priceEpsilon float64) error {
	price, _ := o.Price.Float64()

	if price <= 0 {
		return coreerrors.NewErrorDetails(
			"price must be strictly positive",
			string(coreerrors.InvalidPrice),
			"price",
		)
	}

	precisionFactor := math.Pow(10, float64(inst.PriceDecimal))
	multiplied := price * precisionFactor
	rounded := math.Round(multiplied)

	if math.Abs(multiplied-rounded) > priceEpsilon {
		return coreerrors.NewErrorDetails(
			fmt.Sprintf("price %s is not a multiple of the instrument's tick (price_decimal=%d)", o.Price.String(), inst.PriceDecimal),
			string(coreerrors.InvalidPrice),
			"price",
		)
	}

	return nil
}

// validateQuantity checks that OriginalQty is strictly positive and an
// integer multiple of the instrument's lot size.
func (o *Order) validateQuantity(inst *instrument.Instrument) error {
	if o.OriginalQty <= 0 {
		return coreerrors.NewErrorDetails(
			"quantity must be strictly positive",
			string(coreerrors.InvalidQuantity),
			"original_qty",
		)
	}

	if inst.LotSize <= 0 || o.OriginalQty%inst.LotSize != 0 {
		return coreerrors.NewErrorDetails(
			fmt.Sprintf("quantity %d is not a multiple of the instrument's lot size (%d)", o.OriginalQty, inst.LotSize),
			string(coreerrors.InvalidQuantity),
			"original_qty",
		)
	}

	return nil
}
