package coin

import (
	"fmt"

	"github.com/govalues/decimal"
)

// scale returns the number of fractional digits allowed in denomination d.
func (d Denom) scale() int {
	if d == Major {
		return majorScale
	}
	return 0
}

// NewFromDecimal returns an amount with the specified fixed-point value
// and denomination. Trailing zeros are removed from the magnitude.
// See also method [Amount.Decimal].
//
// NewFromDecimal returns an error if:
//   - the denomination is not [Major] or [Minor];
//   - the value has more significant fractional digits than the
//     denomination allows (6 for Major, 0 for Minor).
func NewFromDecimal(d decimal.Decimal, denom Denom) (Amount, error) {
	if !denom.valid() {
		return Amount{}, fmt.Errorf("converting %v: %w: %v", d, ErrInvalidDenomination, denom)
	}
	if d.MinScale() > denom.scale() {
		return Amount{}, fmt.Errorf("converting %v: %w: %v allows at most %v fractional digits", d, ErrMalformedAmount, denom, denom.scale())
	}
	return Amount{value: d.Trim(0).String(), denom: denom}, nil
}

// Decimal returns the magnitude as a fixed-point decimal, zero-padded to
// the scale of its denomination.
// See also constructor [NewFromDecimal].
//
// Decimal returns an error if:
//   - the magnitude is malformed ([ErrMalformedAmount]);
//   - the magnitude needs more than [decimal.MaxPrec] digits ([ErrAmountOutOfRange]).
func (a Amount) Decimal() (decimal.Decimal, error) {
	if _, err := a.parse(); err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", a, err)
	}
	d, err := decimal.Parse(a.value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w: %v", a, ErrAmountOutOfRange, err)
	}
	scale := a.denom.scale()
	d = d.Pad(scale)
	if d.Scale() < scale {
		return decimal.Decimal{}, fmt.Errorf("converting %v: padding amount: %w", a, ErrAmountOutOfRange)
	}
	return d, nil
}
