package coin

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

// MaxContractAmount is the largest magnitude a [ContractCoin] can carry.
// The value is ((2^128)-1) = 340282366920938463463374607431768211455.
var MaxContractAmount = sdkmath.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// ContractCoin is the amount representation used by smart contracts:
// an unsigned 128-bit integer magnitude paired with the ticker form of
// the denomination.
// The magnitude is serialized to JSON as a decimal string.
type ContractCoin struct {
	Amount sdkmath.Uint `json:"amount"`
	Denom  string       `json:"denom"`
}

// ToContract converts the amount to its contract representation.
// The magnitude is taken as is, without scale conversion, so a major
// amount must already be a whole number.
//
// ToContract returns an error if:
//   - the magnitude is not a decimal number ([ErrMalformedAmount]);
//   - the magnitude is negative, fractional or greater than
//     [MaxContractAmount] ([ErrAmountOutOfRange]).
func (t Ticker) ToContract(a Amount) (ContractCoin, error) {
	u, err := parseUint128(a.value)
	if err != nil {
		return ContractCoin{}, fmt.Errorf("converting %v to %T: %w", a, ContractCoin{}, err)
	}
	return ContractCoin{Amount: u, Denom: t.FormatDenom(a.denom)}, nil
}

// FromContract converts a contract representation to an amount.
//
// FromContract returns an error if:
//   - the denomination is not recognized ([ErrInvalidDenomination]);
//   - the magnitude is greater than [MaxContractAmount] ([ErrAmountOutOfRange]).
func (t Ticker) FromContract(c ContractCoin) (Amount, error) {
	d, err := t.ParseDenom(c.Denom)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %T to %T: %w", c, Amount{}, err)
	}
	// zero value of sdkmath.Uint carries a nil big.Int
	if c.Amount == (sdkmath.Uint{}) {
		return Amount{value: "0", denom: d}, nil
	}
	if c.Amount.GT(MaxContractAmount) {
		return Amount{}, fmt.Errorf("converting %T to %T: %w: %v exceeds %v", c, Amount{}, ErrAmountOutOfRange, c.Amount, MaxContractAmount)
	}
	return Amount{value: c.Amount.String(), denom: d}, nil
}

// parseUint128 parses s as an unsigned integer not greater than [MaxContractAmount].
func parseUint128(s string) (sdkmath.Uint, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		// A valid decimal that is not an integer is out of range rather than malformed.
		if _, err := decimal.NewFromString(s); err == nil {
			return sdkmath.Uint{}, fmt.Errorf("%w: %q is not an unsigned integer", ErrAmountOutOfRange, s)
		}
		return sdkmath.Uint{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	if b.Sign() < 0 {
		return sdkmath.Uint{}, fmt.Errorf("%w: %q is negative", ErrAmountOutOfRange, s)
	}
	if b.BitLen() > 128 {
		return sdkmath.Uint{}, fmt.Errorf("%w: %q exceeds %v", ErrAmountOutOfRange, s, MaxContractAmount)
	}
	return sdkmath.NewUintFromBigInt(b), nil
}
