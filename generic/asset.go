package generic

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// ASSET - A single register entry
// =============================================================================

// Asset is everything a depreciation query needs to know about one item.
//
// LifeTimeInMonths of 0 or 11988 (999 years) marks an asset that never
// depreciates: land, or items deliberately kept out of the schedule.
// A zero PurchasingDate is an absent date; all derived figures are 0.
type Asset struct {
	ID               AssetID
	Name             string
	Category         string
	LifeTimeInMonths int
	PurchasingDate   TimePoint
	PurchaseAmount   float64
	CreatedAt        time.Time
}

// Register limits. 999 years is the never-depreciates sentinel, so no
// longer lifetime is meaningful.
const (
	MaxLifeTimeInMonths = 999 * 12
	MaxPurchaseAmount   = 1e15
)

// Validate checks the only constraints the register enforces.
// The calculation core itself accepts anything.
func (a Asset) Validate() error {
	if a.LifeTimeInMonths < 0 || a.LifeTimeInMonths > MaxLifeTimeInMonths {
		return &ValidationError{
			Field:   "lifetime_months",
			Message: fmt.Sprintf("must be between 0 and %d", MaxLifeTimeInMonths),
			Err:     ErrInvalidLifetime,
		}
	}
	if math.IsNaN(a.PurchaseAmount) || a.PurchaseAmount < 0 || a.PurchaseAmount > MaxPurchaseAmount {
		return &ValidationError{
			Field:   "purchase_amount",
			Message: fmt.Sprintf("must be between 0 and %.0f", MaxPurchaseAmount),
			Err:     ErrInvalidAmount,
		}
	}
	return nil
}

// HasPurchasingDate reports whether the asset carries a purchase date.
func (a Asset) HasPurchasingDate() bool { return !a.PurchasingDate.IsZero() }

// =============================================================================
// PERIOD CLOSING - Persisted year-end figures
// =============================================================================

// Closing freezes the figures of one asset for one year, so reports stay
// stable even if the asset definition is corrected later.
type Closing struct {
	ID           string
	AssetID      AssetID
	Year         int
	Depreciation Amount
	NetBookBegin Amount
	NetBookEnd   Amount
	ClosedAt     time.Time
}
