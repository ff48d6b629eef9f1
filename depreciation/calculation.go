package depreciation

import (
	"github.com/erebos/fixed-asset-engine/generic"
)

// lastYear is the year of the final depreciation month: the purchase month
// counts as the first of lifeTimeInMonths months.
func lastYear(purchasingDate generic.TimePoint, lifeTimeInMonths int) int {
	return LastDepreciationYear(purchasingDate, lifeTimeInMonths-1)
}

func straightLine(lifeTimeInMonths int, purchaseAmount float64) float64 {
	return StraightLineDepreciation(purchaseAmount, LifeTimeInYears(float64(lifeTimeInMonths)))
}

// CalculateDepreciationValue returns the expense recognized during
// calculationYear. Checks run in order; in an asset whose life is shorter
// than a year the acquisition-year branch wins over the final-year branch.
func CalculateDepreciationValue(lifeTimeInMonths int, purchasingDate generic.TimePoint, purchaseAmount float64, calculationYear int) float64 {
	if purchasingDate.IsZero() {
		return Zero
	}
	purchaseYear := purchasingDate.Year()

	switch {
	case IsMinOrMaxLifeTime(lifeTimeInMonths):
		return Zero
	case lastYear(purchasingDate, lifeTimeInMonths) < calculationYear:
		// fully depreciated before the year began
		return Zero
	case purchaseYear > calculationYear:
		return Zero
	case purchaseYear == calculationYear:
		return straightLine(lifeTimeInMonths, purchaseAmount) *
			MidYearFactor(float64(purchasingDate.Month()))
	case lastYear(purchasingDate, lifeTimeInMonths) == calculationYear:
		lastMonth := LastDepreciationMonth(purchasingDate, lifeTimeInMonths-1)
		return straightLine(lifeTimeInMonths, purchaseAmount) *
			(float64(lastMonth) / MonthsInYear)
	}
	return straightLine(lifeTimeInMonths, purchaseAmount)
}

// CalculateNetBookEndValue returns the book value at Dec 31 of calculationYear.
func CalculateNetBookEndValue(lifeTimeInMonths int, purchasingDate generic.TimePoint, purchaseAmount float64, calculationYear int) float64 {
	if purchasingDate.IsZero() {
		return Zero
	}

	switch {
	case purchasingDate.Year() > calculationYear:
		return Zero
	case IsMinOrMaxLifeTime(lifeTimeInMonths):
		return purchaseAmount
	case lastYear(purchasingDate, lifeTimeInMonths) < calculationYear+1:
		return Zero
	}
	return NetBookValue(calculationYear, lifeTimeInMonths, purchasingDate, purchaseAmount)
}

// CalculateNetBookBeginValue returns the book value at Jan 1 of
// calculationYear, which is the end value of the year before. An asset
// bought during calculationYear has no opening value.
func CalculateNetBookBeginValue(lifeTimeInMonths int, purchasingDate generic.TimePoint, purchaseAmount float64, calculationYear int) float64 {
	if purchasingDate.IsZero() {
		return Zero
	}

	switch {
	case purchasingDate.Year() >= calculationYear:
		return Zero
	case IsMinOrMaxLifeTime(lifeTimeInMonths):
		return purchaseAmount
	case lastYear(purchasingDate, lifeTimeInMonths) < calculationYear:
		return Zero
	}
	return NetBookValue(calculationYear-1, lifeTimeInMonths, purchasingDate, purchaseAmount)
}
