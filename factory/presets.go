package factory

import "encoding/json"

// =============================================================================
// PRESETS - Ready-made JSON for common asset kinds
// =============================================================================

// LandJSON returns an asset that never depreciates.
func LandJSON(id, name, purchasingDate string, amount float64) string {
	return presetJSON(map[string]interface{}{
		"id":              id,
		"name":            name,
		"category":        CategoryLand,
		"purchasing_date": purchasingDate,
		"purchase_amount": amount,
	})
}

// EquipmentJSON returns a straight-line asset with an explicit lifetime.
func EquipmentJSON(id, name, purchasingDate string, amount float64, lifeTimeMonths int) string {
	return presetJSON(map[string]interface{}{
		"id":              id,
		"name":            name,
		"category":        CategoryMachinery,
		"lifetime_months": lifeTimeMonths,
		"purchasing_date": purchasingDate,
		"purchase_amount": amount,
	})
}

func presetJSON(pj map[string]interface{}) string {
	b, _ := json.MarshalIndent(pj, "", "  ")
	return string(b)
}
