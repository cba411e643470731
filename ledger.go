package coin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// LedgerCoin is the amount representation used by the blockchain ledger:
// an arbitrary-precision signed decimal magnitude paired with the ticker
// form of the denomination.
type LedgerCoin struct {
	Amount decimal.Decimal `json:"amount"`
	Denom  string          `json:"denom"`
}

// ToLedger converts the amount to its ledger representation.
// The magnitude is taken as is, without scale conversion.
//
// ToLedger returns an error wrapping [ErrMalformedAmount] if the magnitude
// is not a decimal number.
func (t Ticker) ToLedger(a Amount) (LedgerCoin, error) {
	d, err := decimal.NewFromString(a.value)
	if err != nil {
		return LedgerCoin{}, fmt.Errorf("converting %v to %T: %w: %q", a, LedgerCoin{}, ErrMalformedAmount, a.value)
	}
	return LedgerCoin{Amount: d, Denom: t.FormatDenom(a.denom)}, nil
}

// FromLedger converts a ledger representation to an amount.
//
// FromLedger returns an error if:
//   - the denomination is not recognized ([ErrInvalidDenomination]);
//   - the magnitude has more than 84 digits before or after the decimal
//     point ([ErrAmountOutOfRange]).
func (t Ticker) FromLedger(c LedgerCoin) (Amount, error) {
	d, err := t.ParseDenom(c.Denom)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %T to %T: %w", c, Amount{}, err)
	}
	v := c.Amount
	if v.IsZero() {
		v = decimal.Zero
	}
	if err := checkDigits(v); err != nil {
		return Amount{}, fmt.Errorf("converting %T to %T: %w", c, Amount{}, err)
	}
	return Amount{value: v.String(), denom: d}, nil
}

// gasPriceRegexp matches a decimal immediately followed by a denomination.
var gasPriceRegexp = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?|\.[0-9]+)([a-zA-Z][a-zA-Z0-9/:._-]*)$`)

// ParseGasPrice converts a ledger gas price string, such as "0.025unym",
// to an amount.
// Surrounding whitespace is ignored.
//
// Minor gas prices are often fractional. Such amounts are returned as is,
// but [Amount.ToMajor], [Amount.Add] and the other operations that
// validate the magnitude reject them with [ErrMalformedAmount].
// Use the [LedgerCoin] form to work with them.
//
// ParseGasPrice returns an error if:
//   - the string is not a decimal followed by a denomination ([ErrMalformedAmount]);
//   - the denomination is not recognized ([ErrInvalidDenomination]).
func (t Ticker) ParseGasPrice(s string) (Amount, error) {
	m := gasPriceRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Amount{}, fmt.Errorf("parsing gas price %q: %w", s, ErrMalformedAmount)
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return Amount{}, fmt.Errorf("parsing gas price %q: %w", s, ErrMalformedAmount)
	}
	return t.FromLedger(LedgerCoin{Amount: d, Denom: m[2]})
}
