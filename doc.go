/*
Package coin implements amounts of a blockchain token in its two denominations.
It combines the [decimal] package of shopspring for exact scale conversion with
the [math] package of the Cosmos SDK for overflow-checked integer arithmetic.

# Features

  - Immutable amounts, safe for concurrent use by multiple goroutines
  - Exact conversion between the major and minor denominations
  - Addition and subtraction across denominations
  - Lossless conversion to and from contract and ledger coin representations

# Representation

An [Amount] consists of a decimal magnitude, kept as a string, and a [Denom].
The magnitude is validated only when an operation needs its numeric value,
so constructors never fail.
The [Major] denomination is the human-facing unit with 6 fractional digits.
The [Minor] denomination is the smallest indivisible unit:

	1 Major = 1000000 Minor

# Ticker

The textual form of a denomination depends on the ticker symbol of the token.
A [Ticker] is created from the minor symbol, such as "unym", and derives
the major symbol, "nym", by removing its first character.
Tickers are passed explicitly to every method that needs them.

Serialization never uses the ticker form: JSON, text, BSON, SQL and msgpack
codecs encode a Denom by its variant name, "Major" or "Minor".

# Operations

[Amount.Add] and [Amount.Sub] convert both operands to minor units,
compute the result and convert it back to the denomination of the left operand.
Results may be negative.

# External representations

A [ContractCoin] carries an unsigned 128-bit magnitude, as used by smart contracts.
A [LedgerCoin] carries an arbitrary-precision signed decimal magnitude, as used
by the ledger. Both carry the ticker form of the denomination.

# Errors

Operations return errors wrapping one of [ErrInvalidDenomination],
[ErrMalformedAmount], [ErrAmountOutOfRange] or [ErrArithmeticOverflow].
Only the Must* helpers panic.

[decimal]: https://pkg.go.dev/github.com/shopspring/decimal
[math]: https://pkg.go.dev/cosmossdk.io/math
*/
package coin
