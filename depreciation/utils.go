/*
Package depreciation implements straight-line, mid-year-convention
depreciation for a single asset evaluated against a single calendar year.

PURPOSE:
  Answers three questions for (asset, year):
  - How much depreciation expense is recognized during the year?
  - What is the net book value at the start of the year?
  - What is the net book value at the end of the year?

CONVENTIONS:
  - Straight line: cost / lifetime-in-years per full year.
  - Mid-year: the acquisition year is weighted by (13 - month) / 12, the
    final year by last-month / 12.
  - Sentinel lifetimes: 0 months and 11988 months (999 years) never
    depreciate. Expense is 0 and book value stays at cost.
  - Absent purchasing date: every figure is 0.
  - Inapplicable periods return 0, never an error, so callers can sum
    across many assets and years without special cases.

FILES:
  utils.go:       Arithmetic primitives
  calculation.go: Which primitive applies for a given year
  schedule.go:    Decimal figures, multi-year schedules, portfolio sums

All functions are pure and safe for concurrent use.
*/
package depreciation

import (
	"github.com/erebos/fixed-asset-engine/generic"
)

const (
	MonthsInYear        = 12
	MaxLifeTimeInYears  = 999
	MinLifeTimeInYears  = 0
	MaxLifeTimeInMonths = MaxLifeTimeInYears * MonthsInYear
	MinLifeTimeInMonths = MinLifeTimeInYears * MonthsInYear

	Zero = 0.0
)

// LifeTimeInYears converts months to (fractional) years.
func LifeTimeInYears(lifeTimeInMonths float64) float64 {
	return lifeTimeInMonths / MonthsInYear
}

// LastDepreciationYear returns the year of purchasingDate advanced by
// lifeTimeInMonths months, or 0 for an absent date. Callers holding a
// fractional month count truncate it toward zero with int().
func LastDepreciationYear(purchasingDate generic.TimePoint, lifeTimeInMonths int) int {
	if purchasingDate.IsZero() {
		return 0
	}
	return purchasingDate.AddMonths(lifeTimeInMonths).Year()
}

// LastDepreciationMonth is LastDepreciationYear for the month (1-12).
func LastDepreciationMonth(purchasingDate generic.TimePoint, lifeTimeInMonths int) int {
	if purchasingDate.IsZero() {
		return 0
	}
	return int(purchasingDate.AddMonths(lifeTimeInMonths).Month())
}

// StraightLineDepreciation is the expense of one full year.
// lifeTimeInYears must not be 0; IsMinOrMaxLifeTime guards this upstream.
func StraightLineDepreciation(purchaseAmount, lifeTimeInYears float64) float64 {
	return purchaseAmount / lifeTimeInYears
}

// MidYearFactor is the share of the acquisition year that is depreciated:
// 12/12 for January down to 1/12 for December.
func MidYearFactor(purchaseMonth float64) float64 {
	return (13 - purchaseMonth) / MonthsInYear
}

// IsMinOrMaxLifeTime reports whether the lifetime is one of the
// never-depreciates sentinels. Compared in whole months so no float
// equality is involved.
func IsMinOrMaxLifeTime(lifeTimeInMonths int) bool {
	return lifeTimeInMonths == MinLifeTimeInMonths || lifeTimeInMonths == MaxLifeTimeInMonths
}

// NetBookValue is the book value at the end of calculationYear:
//
//	cost - (midYearFactor(purchase month) + (year - purchase year)) * straightLine
//
// It does not check for an absent date. Called directly with one, it
// computes with year 0 and month 0 (factor 13/12); the Calculate* functions
// never let that happen.
func NetBookValue(calculationYear, lifeTimeInMonths int, purchasingDate generic.TimePoint, purchaseAmount float64) float64 {
	month := 0
	if !purchasingDate.IsZero() {
		month = generic.MustMonthOf(purchasingDate)
	}
	elapsed := float64(calculationYear - generic.YearOf(purchasingDate))
	rate := StraightLineDepreciation(purchaseAmount, LifeTimeInYears(float64(lifeTimeInMonths)))

	// The conversion keeps the product from being fused into the subtraction.
	accumulated := float64((MidYearFactor(float64(month)) + elapsed) * rate)
	return purchaseAmount - accumulated
}
