package coin

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
)

// Denom type represents one of the two scales of the token.
// The zero value is [Major].
//
// Denom has two textual forms that must not be mixed up:
//   - the variant name ("Major", "Minor") returned by [Denom.String] and used
//     by all serialization methods;
//   - the ticker form ("nym", "unym") produced by [Ticker.FormatDenom] and
//     used when talking to ledgers and contracts.
type Denom uint8

const (
	Major Denom = iota // human-facing unit, 6 fractional digits
	Minor              // smallest indivisible unit
)

// MinorInMajor is the number of minor units in one major unit.
const MinorInMajor = 1_000_000

// majorScale is the number of fractional digits of a major amount.
const majorScale = 6

// ErrInvalidDenomination is returned when a string does not name a denomination.
var ErrInvalidDenomination = errors.New("invalid denomination")

// ParseDenomName converts a variant name to denomination.
// Only the exact names "Major" and "Minor" are accepted.
// To parse a ticker form, use [Ticker.ParseDenom].
func ParseDenomName(name string) (Denom, error) {
	switch name {
	case "Major":
		return Major, nil
	case "Minor":
		return Minor, nil
	default:
		return Major, fmt.Errorf("%w: %q", ErrInvalidDenomination, name)
	}
}

// String implements the [fmt.Stringer] interface and returns the variant name.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Denom) String() string {
	switch d {
	case Major:
		return "Major"
	case Minor:
		return "Minor"
	default:
		return fmt.Sprintf("Denom(%d)", uint8(d))
	}
}

func (d Denom) valid() bool {
	return d == Major || d == Minor
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (d *Denom) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return fmt.Errorf("unmarshaling %T: %w: %s", Major, ErrInvalidDenomination, text)
	}
	var err error
	*d, err = ParseDenomName(string(text[1 : len(text)-1]))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Major, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (d Denom) MarshalJSON() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("marshaling %v: %w", d, ErrInvalidDenomination)
	}
	text := make([]byte, 0, 7)
	text = append(text, '"')
	text = append(text, d.String()...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Denom) UnmarshalText(text []byte) error {
	var err error
	*d, err = ParseDenomName(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Major, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Denom) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("marshaling %v: %w", d, ErrInvalidDenomination)
	}
	return []byte(d.String()), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (d *Denom) UnmarshalBinary(data []byte) error {
	return d.UnmarshalText(data)
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (d Denom) MarshalBinary() ([]byte, error) {
	return d.MarshalText()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (d *Denom) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 2:
		*d, err = parseBSONString(data)
	case 10:
		// null, do nothing
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Major, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (d Denom) MarshalBSONValue() (typ byte, data []byte, err error) {
	if !d.valid() {
		return 0, nil, fmt.Errorf("marshaling %v: %w", d, ErrInvalidDenomination)
	}
	return 2, bsonString(d.String()), nil
}

// parseBSONString parses a little-endian BSON string to denomination.
func parseBSONString(data []byte) (Denom, error) {
	if len(data) < 4 {
		return Major, fmt.Errorf("%w: invalid data length %v", ErrInvalidDenomination, len(data))
	}
	u := uint32(data[0])
	u |= uint32(data[1]) << 8
	u |= uint32(data[2]) << 16
	u |= uint32(data[3]) << 24
	l := int(int32(u)) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Major, fmt.Errorf("%w: invalid string length %v", ErrInvalidDenomination, l)
	}
	if data[l+4-1] != 0 {
		return Major, fmt.Errorf("%w: invalid null terminator %v", ErrInvalidDenomination, data[l+4-1])
	}
	return ParseDenomName(string(data[4 : l+4-1]))
}

// bsonString returns s encoded as a little-endian BSON string.
func bsonString(s string) []byte {
	l := len(s) + 1
	data := make([]byte, 4+l)
	data[0] = byte(l)
	data[1] = byte(l >> 8)
	data[2] = byte(l >> 16)
	data[3] = byte(l >> 24)
	copy(data[4:], s)
	data[4+l-1] = 0
	return data
}

// EncodeMsgpack implements the [msgpack.CustomEncoder] interface.
func (d Denom) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !d.valid() {
		return fmt.Errorf("marshaling %v: %w", d, ErrInvalidDenomination)
	}
	return enc.EncodeString(d.String())
}

// DecodeMsgpack implements the [msgpack.CustomDecoder] interface.
func (d *Denom) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Major, err)
	}
	*d, err = ParseDenomName(s)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Major, err)
	}
	return nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Denom) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = ParseDenomName(value)
	case []byte:
		*d, err = ParseDenomName(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values", Major)
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Major, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Denom) Value() (driver.Value, error) {
	if !d.valid() {
		return nil, fmt.Errorf("converting %v: %w", d, ErrInvalidDenomination)
	}
	return d.String(), nil
}

// Ticker holds the configured ticker symbol of the token, such as "unym".
// The symbol names the minor denomination; the major denomination is the
// same symbol with its first character removed.
// The zero value is not usable; create tickers with [NewTicker].
type Ticker struct {
	minor string
	major string
}

// NewTicker returns a ticker for the given minor-denomination symbol.
//
// NewTicker returns an error if the symbol has fewer than two characters
// or is not valid UTF-8.
func NewTicker(symbol string) (Ticker, error) {
	if !utf8.ValidString(symbol) || utf8.RuneCountInString(symbol) < 2 {
		return Ticker{}, fmt.Errorf("ticker symbol %q must have at least 2 characters", symbol)
	}
	_, n := utf8.DecodeRuneInString(symbol)
	return Ticker{minor: symbol, major: symbol[n:]}, nil
}

// MustNewTicker is like [NewTicker] but panics if the symbol is not valid.
// It simplifies safe initialization of global variables holding tickers.
func MustNewTicker(symbol string) Ticker {
	t, err := NewTicker(symbol)
	if err != nil {
		panic(fmt.Sprintf("NewTicker(%q) failed: %v", symbol, err))
	}
	return t
}

// Minor returns the ticker form of the minor denomination, e.g. "unym".
func (t Ticker) Minor() string {
	return t.minor
}

// Major returns the ticker form of the major denomination, e.g. "nym".
func (t Ticker) Major() string {
	return t.major
}

// ParseDenom converts a ticker form to denomination.
// The match is case-insensitive and accepts the following inputs:
//
//	unym, minor  -> Minor
//	nym,  major  -> Major
//
// ParseDenom returns an error wrapping [ErrInvalidDenomination] for any other input.
func (t Ticker) ParseDenom(s string) (Denom, error) {
	switch {
	case t.minor != "" && strings.EqualFold(s, t.minor), strings.EqualFold(s, "minor"):
		return Minor, nil
	case t.major != "" && strings.EqualFold(s, t.major), strings.EqualFold(s, "major"):
		return Major, nil
	default:
		return Major, fmt.Errorf("%w: %q is not a valid denomination string", ErrInvalidDenomination, s)
	}
}

// FormatDenom returns the ticker form of the denomination.
// It is the inverse of [Ticker.ParseDenom].
// Invalid denominations are rendered by [Denom.String].
func (t Ticker) FormatDenom(d Denom) string {
	switch d {
	case Minor:
		return t.minor
	case Major:
		return t.major
	default:
		return d.String()
	}
}
