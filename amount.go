package coin

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrMalformedAmount is returned when a magnitude is not a valid decimal
	// number for its denomination.
	ErrMalformedAmount = errors.New("malformed amount")
	// ErrAmountOutOfRange is returned when a magnitude does not fit the target encoding.
	ErrAmountOutOfRange = errors.New("amount out of range")
	// ErrArithmeticOverflow is returned when a sum or difference does not fit
	// into a 256-bit signed integer of minor units.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// Quantity is the set of types an [Amount] can be constructed from.
// Values are converted to their decimal string form with [fmt.Sprint].
// For wide integers, use [NewFromStringer].
type Quantity interface {
	~string | ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Amount type represents a quantity of the token in one of its denominations.
// The magnitude is kept as a decimal string and parsed only by operations that
// need its numeric value, so constructors never fail.
// Its zero value has an empty (malformed) magnitude in [Major].
// Amount is designed to be safe for concurrent use by multiple goroutines.
type Amount struct {
	value string // decimal magnitude
	denom Denom
}

// NewMajor returns an amount of v in the major denomination.
// The magnitude is not validated.
func NewMajor[T Quantity](v T) Amount {
	return New(v, Major)
}

// NewMinor returns an amount of v in the minor denomination.
// The magnitude is not validated.
func NewMinor[T Quantity](v T) Amount {
	return New(v, Minor)
}

// New returns an amount of v in denomination d.
// The magnitude is not validated.
func New[T Quantity](v T, d Denom) Amount {
	return Amount{value: fmt.Sprint(v), denom: d}
}

// NewFromStringer returns an amount in denomination d whose magnitude is
// the String form of v.
// It accepts wide integer types such as [*big.Int], [sdkmath.Int] and
// [sdkmath.Uint], whose String methods render decimal digits.
// The magnitude is not validated.
func NewFromStringer(v fmt.Stringer, d Denom) Amount {
	return Amount{value: v.String(), denom: d}
}

// Magnitude returns the decimal string of the amount.
func (a Amount) Magnitude() string {
	return a.value
}

// Denom returns the denomination of the amount.
func (a Amount) Denom() Denom {
	return a.denom
}

// maxDigits bounds the digits on either side of the decimal point:
// 78 integer digits of minor units (10^78 > 2^256) plus the major scale.
const maxDigits = 78 + majorScale

// checkDigits returns an error if d has more than [maxDigits] digits
// before or after the decimal point once its exponent is expanded.
// Zero values must be normalized by the caller.
func checkDigits(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	exp := int64(d.Exponent())
	if exp < -maxDigits {
		return fmt.Errorf("%w: more than %v fractional digits", ErrAmountOutOfRange, maxDigits)
	}
	digits := int64(len(new(big.Int).Abs(d.Coefficient()).String()))
	if digits+exp > maxDigits {
		return fmt.Errorf("%w: more than %v integer digits", ErrAmountOutOfRange, maxDigits)
	}
	return nil
}

// parse returns the numeric value of the magnitude, checked against the
// digit bound and the fractional-digit rule of its denomination.
func (a Amount) parse() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(a.value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedAmount, a.value)
	}
	if d.IsZero() {
		// "0e20000000" must not be expanded
		d = decimal.Zero
	}
	if err := checkDigits(d); err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %q: %w", a.value, err)
	}
	switch a.denom {
	case Minor:
		if !d.IsInteger() {
			return decimal.Decimal{}, fmt.Errorf("%w: minor amount %q is not an integer", ErrMalformedAmount, a.value)
		}
	case Major:
		if !d.Truncate(majorScale).Equal(d) {
			return decimal.Decimal{}, fmt.Errorf("%w: major amount %q has more than %v fractional digits", ErrMalformedAmount, a.value, majorScale)
		}
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidDenomination, a.denom)
	}
	return d, nil
}

// ToMajor returns the amount converted to the major denomination.
// An amount already in [Major] is returned unchanged.
// The conversion is exact: the magnitude is divided by [MinorInMajor]
// using decimal arithmetic.
//
// ToMajor returns an error if:
//   - the minor magnitude is not an integer ([ErrMalformedAmount]);
//   - the magnitude has more than 84 digits before or after the decimal
//     point ([ErrAmountOutOfRange]).
func (a Amount) ToMajor() (Amount, error) {
	if a.denom == Major {
		return a, nil
	}
	d, err := a.parse()
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v to %v: %w", a, Major, err)
	}
	return Amount{value: d.Shift(-majorScale).String(), denom: Major}, nil
}

// ToMinor returns the amount converted to the minor denomination.
// An amount already in [Minor] is returned unchanged.
//
// ToMinor returns an error if:
//   - the major magnitude is not a decimal number with at most 6 fractional
//     digits ([ErrMalformedAmount]);
//   - the magnitude has more than 84 digits before or after the decimal
//     point ([ErrAmountOutOfRange]).
func (a Amount) ToMinor() (Amount, error) {
	if a.denom == Minor {
		return a, nil
	}
	d, err := a.parse()
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v to %v: %w", a, Minor, err)
	}
	return Amount{value: d.Shift(majorScale).String(), denom: Minor}, nil
}

// MinorUnits returns the amount as an integer number of minor units.
//
// MinorUnits returns an error if the magnitude is malformed or if the result
// does not fit into a 256-bit signed integer.
func (a Amount) MinorUnits() (sdkmath.Int, error) {
	d, err := a.parse()
	if err != nil {
		return sdkmath.Int{}, err
	}
	if a.denom == Major {
		d = d.Shift(majorScale)
	}
	// 10^78 > 2^256
	if !d.IsZero() && d.Exponent() > 78 {
		return sdkmath.Int{}, fmt.Errorf("%w: %q exceeds %v bits", ErrArithmeticOverflow, a.value, sdkmath.MaxBitLen)
	}
	b := d.BigInt()
	if b.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, fmt.Errorf("%w: %q exceeds %v bits", ErrArithmeticOverflow, a.value, sdkmath.MaxBitLen)
	}
	return sdkmath.NewIntFromBigInt(b), nil
}

// newFromMinorUnits returns units rendered in denomination d.
func newFromMinorUnits(units sdkmath.Int, d Denom) Amount {
	if d == Major {
		return Amount{value: decimal.NewFromBigInt(units.BigInt(), -majorScale).String(), denom: Major}
	}
	return Amount{value: units.String(), denom: Minor}
}

// Add returns the sum of amounts a and b.
// The operands may have different denominations; the result always has
// the denomination of a:
//
//	Minor 1 + Major 1 = Minor 1000001
//	Major 1 + Minor 1 = Major 1.000001
//
// Add returns an error if:
//   - any of the magnitudes is malformed;
//   - the sum does not fit into a 256-bit signed integer of minor units.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	x, y, err := a.operands(b)
	if err != nil {
		return Amount{}, err
	}
	z, err := x.SafeAdd(y)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrArithmeticOverflow, err)
	}
	return newFromMinorUnits(z, a.denom), nil
}

// Sub returns the difference between amounts a and b.
// The result has the denomination of a and may be negative.
//
// Sub returns an error if:
//   - any of the magnitudes is malformed;
//   - the difference does not fit into a 256-bit signed integer of minor units.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	x, y, err := a.operands(b)
	if err != nil {
		return Amount{}, err
	}
	z, err := x.SafeSub(y)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrArithmeticOverflow, err)
	}
	return newFromMinorUnits(z, a.denom), nil
}

func (a Amount) operands(b Amount) (x, y sdkmath.Int, err error) {
	x, err = a.MinorUnits()
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	y, err = b.MinorUnits()
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return x, y, nil
}

// Cmp compares amounts by value, regardless of their denominations, and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Cmp returns an error if any of the magnitudes is malformed.
func (a Amount) Cmp(b Amount) (int, error) {
	x, y, err := a.operands(b)
	if err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, err)
	}
	return x.BigInt().Cmp(y.BigInt()), nil
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
//
// Sign returns an error if the magnitude is malformed.
func (a Amount) Sign() (int, error) {
	d, err := a.parse()
	if err != nil {
		return 0, err
	}
	return d.Sign(), nil
}

// String implements the [fmt.Stringer] interface and returns the magnitude
// followed by the variant name of the denomination, e.g. "1.5 Major".
// See also method [Ticker.FormatAmount].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return a.value + " " + a.denom.String()
}

// FormatAmount returns the magnitude followed by the ticker form of
// the denomination, e.g. "1.5 nym".
func (t Ticker) FormatAmount(a Amount) string {
	return a.value + " " + t.FormatDenom(a.denom)
}

// amountRecord is the serialized form of an amount.
type amountRecord struct {
	Amount string `json:"amount" msgpack:"amount"`
	Denom  Denom  `json:"denom" msgpack:"denom"`
}

// amountInput tracks which fields of a serialized amount are present.
type amountInput struct {
	Amount *string `json:"amount" msgpack:"amount"`
	Denom  *Denom  `json:"denom" msgpack:"denom"`
}

func (in amountInput) amount() (Amount, error) {
	switch {
	case in.Amount == nil:
		return Amount{}, fmt.Errorf("%w: missing field \"amount\"", ErrMalformedAmount)
	case in.Denom == nil:
		return Amount{}, fmt.Errorf("%w: missing field \"denom\"", ErrInvalidDenomination)
	}
	return Amount{value: *in.Amount, denom: *in.Denom}, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// The input must be an object of the form
//
//	{"amount": "1.5", "denom": "Major"}
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	var in amountInput
	if err := json.Unmarshal(text, &in); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	c, err := in.amount()
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	*a = c
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountRecord{Amount: a.value, Denom: a.denom})
}

// EncodeMsgpack implements the [msgpack.CustomEncoder] interface.
// The amount is encoded as a map with the same keys as its JSON form.
func (a Amount) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(amountRecord{Amount: a.value, Denom: a.denom})
}

// DecodeMsgpack implements the [msgpack.CustomDecoder] interface.
func (a *Amount) DecodeMsgpack(dec *msgpack.Decoder) error {
	var in amountInput
	if err := dec.Decode(&in); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	c, err := in.amount()
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	*a = c
	return nil
}
