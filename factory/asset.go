/*
Package factory provides JSON to Go asset conversion.

PURPOSE:
  Converts JSON asset definitions into generic.Asset values. Asset
  registers are usually exported from spreadsheets or ERP systems, so the
  factory accepts what those exports contain: dates in either English
  (yyyy-MM-dd) or German (dd.MM.yyyy) notation, lifetimes in months or
  years, and a category that can supply the lifetime on its own.

JSON SCHEMA:
  {
    "id": "cnc-01",
    "name": "CNC milling machine",
    "category": "machinery",
    "lifetime_months": 120,
    "purchasing_date": "01.03.2011",
    "purchase_amount": 200000
  }

LIFETIME RESOLUTION (first match wins):
  1. lifetime_months
  2. lifetime_years * 12 (fractional months truncate)
  3. the category's default lifetime
  4. ErrInvalidLifetime

KEY FEATURES:
  - Generates a UUID when id is empty
  - Empty purchasing_date is an absent date, not an error
  - Validates the resulting asset

USAGE:
  f := factory.NewAssetFactory()
  asset, err := f.ParseAsset(jsonString)

  // From a preset
  asset, err := f.ParseAsset(factory.LandJSON("plot-7", "Plot 7", "2011-03-01", 50000))

SEE ALSO:
  - generic/asset.go: Asset type definition
  - depreciation/: What happens to the asset next
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/erebos/fixed-asset-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// AssetJSON is the JSON representation of an asset.
type AssetJSON struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	LifeTimeMonths *int     `json:"lifetime_months,omitempty"`
	LifeTimeYears  *float64 `json:"lifetime_years,omitempty"`
	PurchasingDate string   `json:"purchasing_date,omitempty"`
	PurchaseAmount float64  `json:"purchase_amount"`
}

// =============================================================================
// CATEGORIES
// =============================================================================

// Category is a named default useful life.
type Category struct {
	Name             string
	LifeTimeInMonths int
}

const (
	CategoryLand            = "land"
	CategoryPerpetual       = "perpetual"
	CategoryBuilding        = "building"
	CategoryMachinery       = "machinery"
	CategoryVehicle         = "vehicle"
	CategoryOfficeEquipment = "office_equipment"
	CategoryITHardware      = "it_hardware"
)

// DefaultCategories maps category names to useful lives.
// Land and perpetual items use the never-depreciates sentinels.
var DefaultCategories = map[string]Category{
	CategoryLand:            {Name: CategoryLand, LifeTimeInMonths: 0},
	CategoryPerpetual:       {Name: CategoryPerpetual, LifeTimeInMonths: 999 * 12},
	CategoryBuilding:        {Name: CategoryBuilding, LifeTimeInMonths: 50 * 12},
	CategoryMachinery:       {Name: CategoryMachinery, LifeTimeInMonths: 10 * 12},
	CategoryVehicle:         {Name: CategoryVehicle, LifeTimeInMonths: 6 * 12},
	CategoryOfficeEquipment: {Name: CategoryOfficeEquipment, LifeTimeInMonths: 13 * 12},
	CategoryITHardware:      {Name: CategoryITHardware, LifeTimeInMonths: 3 * 12},
}

// =============================================================================
// ASSET FACTORY
// =============================================================================

// AssetFactory converts JSON assets to Go structs.
type AssetFactory struct {
	Categories map[string]Category
}

// NewAssetFactory creates a factory with the default categories.
func NewAssetFactory() *AssetFactory {
	return &AssetFactory{Categories: DefaultCategories}
}

// ParseAsset parses a JSON string into an Asset.
func (f *AssetFactory) ParseAsset(jsonStr string) (*generic.Asset, error) {
	var aj AssetJSON
	if err := json.Unmarshal([]byte(jsonStr), &aj); err != nil {
		return nil, fmt.Errorf("failed to parse asset JSON: %w", err)
	}
	return f.FromJSON(aj)
}

// FromJSON converts AssetJSON to a validated generic.Asset.
func (f *AssetFactory) FromJSON(aj AssetJSON) (*generic.Asset, error) {
	id := aj.ID
	if id == "" {
		id = uuid.NewString()
	}

	var purchased generic.TimePoint
	if aj.PurchasingDate != "" {
		var err error
		if purchased, err = generic.ParseDate(aj.PurchasingDate); err != nil {
			return nil, fmt.Errorf("asset %s: %w", id, err)
		}
	}

	months, err := f.lifeTime(aj)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, err)
	}

	asset := &generic.Asset{
		ID:               generic.AssetID(id),
		Name:             aj.Name,
		Category:         aj.Category,
		LifeTimeInMonths: months,
		PurchasingDate:   purchased,
		PurchaseAmount:   aj.PurchaseAmount,
	}
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, err)
	}
	return asset, nil
}

func (f *AssetFactory) lifeTime(aj AssetJSON) (int, error) {
	switch {
	case aj.LifeTimeMonths != nil:
		return *aj.LifeTimeMonths, nil
	case aj.LifeTimeYears != nil:
		return int(*aj.LifeTimeYears * 12), nil
	}
	if c, ok := f.Categories[aj.Category]; ok {
		return c.LifeTimeInMonths, nil
	}
	return 0, &generic.ValidationError{
		Field:   "lifetime_months",
		Message: fmt.Sprintf("no lifetime given and unknown category %q", aj.Category),
		Err:     generic.ErrInvalidLifetime,
	}
}

// ToJSON converts an Asset back to its JSON form. Lifetime is always
// written in months.
func (f *AssetFactory) ToJSON(a generic.Asset) AssetJSON {
	months := a.LifeTimeInMonths
	return AssetJSON{
		ID:             string(a.ID),
		Name:           a.Name,
		Category:       a.Category,
		LifeTimeMonths: &months,
		PurchasingDate: generic.FormatDate(a.PurchasingDate),
		PurchaseAmount: a.PurchaseAmount,
	}
}
