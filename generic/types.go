/*
Package generic provides the shared building blocks of the asset engine.

PURPOSE:
  This package contains the domain-agnostic collaborators the depreciation
  core is built on: calendar dates with explicit absent-date conventions,
  decimal money amounts for reporting, error types, and the asset register
  contract.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A decimal money value (single currency, no conversion)
  - AssetID: Type-safe identifier for register entries
  - RoundValue: Half-up rounding of float64 results

DESIGN PRINCIPLES:
  1. The core computes in float64 so results match the accounting
     spreadsheets they are checked against, bit for bit.
  2. Anything leaving the engine (API, store) is a decimal.Decimal so
     sums across many assets do not drift.
  3. Absent values degrade to zero rather than failing.

USAGE:
  amount := generic.NewAmount(16666.666666666668)
  amount.Round(2).StringFixed(2) // "16666.67"

SEE ALSO:
  - time.go: TimePoint, YearOf, MonthOf
  - asset.go: Asset and store interfaces
  - depreciation/: The calculation core
*/
package generic

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Money value
// =============================================================================

type Amount struct {
	Value decimal.Decimal
}

func NewAmount(value float64) Amount {
	return Amount{Value: decimal.NewFromFloat(value)}
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func ZeroAmount() Amount { return Amount{Value: decimal.Zero} }

func (a Amount) Add(b Amount) Amount       { return Amount{Value: a.Value.Add(b.Value)} }
func (a Amount) Round(places int32) Amount { return Amount{Value: a.Value.Round(places)} }
func (a Amount) IsZero() bool              { return a.Value.IsZero() }
func (a Amount) Float64() float64          { return a.Value.InexactFloat64() }
func (a Amount) StringFixed(places int32) string {
	return a.Value.StringFixed(places)
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type AssetID string

// =============================================================================
// ROUNDING
// =============================================================================

// RoundValue rounds half away from zero to two decimals.
func RoundValue(value float64) float64 {
	return RoundValueScale(value, 2)
}

// RoundValueScale rounds half away from zero to scale decimals.
func RoundValueScale(value float64, scale int) float64 {
	s := math.Pow(10, float64(scale))
	return math.Round(value*s) / s
}
