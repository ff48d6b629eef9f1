package depreciation

import (
	"math"

	"github.com/erebos/fixed-asset-engine/generic"
)

// =============================================================================
// FIGURES - The three period quantities of one asset in one year
// =============================================================================

// Figures carries the yearly quantities as decimal amounts. Values are not
// rounded; round at the presentation edge.
type Figures struct {
	AssetID      generic.AssetID
	Year         int
	Depreciation generic.Amount
	NetBookBegin generic.Amount
	NetBookEnd   generic.Amount
}

// Evaluate computes the figures of asset for year.
func Evaluate(asset generic.Asset, year int) Figures {
	months, date, amount := asset.LifeTimeInMonths, asset.PurchasingDate, asset.PurchaseAmount
	return Figures{
		AssetID:      asset.ID,
		Year:         year,
		Depreciation: finiteAmount(CalculateDepreciationValue(months, date, amount, year)),
		NetBookBegin: finiteAmount(CalculateNetBookBeginValue(months, date, amount, year)),
		NetBookEnd:   finiteAmount(CalculateNetBookEndValue(months, date, amount, year)),
	}
}

// finiteAmount maps overflowed results to zero. Only assets that bypassed
// Asset.Validate can produce them.
func finiteAmount(v float64) generic.Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return generic.ZeroAmount()
	}
	return generic.NewAmount(v)
}

// Closing turns the figures into a year-end snapshot record.
func (f Figures) Closing() generic.Closing {
	return generic.Closing{
		AssetID:      f.AssetID,
		Year:         f.Year,
		Depreciation: f.Depreciation,
		NetBookBegin: f.NetBookBegin,
		NetBookEnd:   f.NetBookEnd,
	}
}

// =============================================================================
// SCHEDULE - Every year the asset is on the books
// =============================================================================

// Range returns the first and last year in which the asset has figures worth
// reporting. ok is false for an absent purchasing date. Sentinel assets only
// report their acquisition year since nothing ever changes afterwards.
func Range(asset generic.Asset) (first, last int, ok bool) {
	if !asset.HasPurchasingDate() {
		return 0, 0, false
	}
	first = asset.PurchasingDate.Year()
	if IsMinOrMaxLifeTime(asset.LifeTimeInMonths) {
		return first, first, true
	}
	last = lastYear(asset.PurchasingDate, asset.LifeTimeInMonths)
	if last < first {
		last = first
	}
	return first, last, true
}

// Schedule returns the figures of every year from acquisition to the final
// depreciation year.
func Schedule(asset generic.Asset) []Figures {
	first, last, ok := Range(asset)
	if !ok {
		return nil
	}
	rows := make([]Figures, 0, last-first+1)
	for year := first; year <= last; year++ {
		rows = append(rows, Evaluate(asset, year))
	}
	return rows
}

// TotalDepreciation sums the expense column of a schedule. For a regular
// asset this adds back up to the purchase amount.
func TotalDepreciation(rows []Figures) generic.Amount {
	total := generic.ZeroAmount()
	for _, r := range rows {
		total = total.Add(r.Depreciation)
	}
	return total
}

// =============================================================================
// PORTFOLIO - Aggregation across assets
// =============================================================================

// Summary sums the figures of many assets for one year.
type Summary struct {
	Year         int
	AssetCount   int
	Depreciation generic.Amount
	NetBookBegin generic.Amount
	NetBookEnd   generic.Amount
}

// Summarize evaluates every asset for year and adds up the results.
func Summarize(assets []generic.Asset, year int) Summary {
	s := Summary{
		Year:         year,
		AssetCount:   len(assets),
		Depreciation: generic.ZeroAmount(),
		NetBookBegin: generic.ZeroAmount(),
		NetBookEnd:   generic.ZeroAmount(),
	}
	for _, a := range assets {
		f := Evaluate(a, year)
		s.Depreciation = s.Depreciation.Add(f.Depreciation)
		s.NetBookBegin = s.NetBookBegin.Add(f.NetBookBegin)
		s.NetBookEnd = s.NetBookEnd.Add(f.NetBookEnd)
	}
	return s
}
