/*
scenarios.go - Demo registers for testing and demonstrations

PURPOSE:
	Populates the register with assets that exercise specific branches of
	the depreciation rules, so the API can be explored without typing
	asset definitions by hand.

AVAILABLE SCENARIOS:

	reference-sheet:    The 10-year machine fixtures the engine is checked against
	land-and-buildings: Sentinel lifetimes that never depreciate
	mixed-register:     German and English dates, category defaults, an undated asset

HOW SCENARIOS WORK:
 1. Reset the register (assets and closings)
 2. Parse each asset through the factory (same path as POST /api/assets)
 3. Save

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "reference-sheet"}

NOTE:

	Scenarios reset the register. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Asset endpoints
  - factory/presets.go: JSON presets used below
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/erebos/fixed-asset-engine/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "reference-sheet",
		Name:        "Reference Sheet",
		Description: "Four 200000 machines with a 10-year life bought in 2011, 2012, 2020 and 2022",
	},
	{
		ID:          "land-and-buildings",
		Name:        "Land and Buildings",
		Description: "Land (0 years) and a perpetual item (999 years) next to a regular building",
	},
	{
		ID:          "mixed-register",
		Name:        "Mixed Register",
		Description: "Category defaults, German dates and an asset without purchasing date",
	},
}

var scenarioAssets = map[string][]string{
	"reference-sheet": {
		factory.EquipmentJSON("machine-2011", "Machine 2011", "2011-03-01", 200000, 120),
		factory.EquipmentJSON("machine-2012", "Machine 2012", "2012-10-01", 200000, 120),
		factory.EquipmentJSON("machine-2020", "Machine 2020", "2020-05-01", 200000, 120),
		factory.EquipmentJSON("machine-2022", "Machine 2022", "2022-03-01", 200000, 120),
	},
	"land-and-buildings": {
		factory.LandJSON("plot-7", "Plot 7", "2011-03-01", 200000),
		`{"id": "monument", "name": "Listed monument", "category": "perpetual", "purchasing_date": "1998-06-15", "purchase_amount": 750000}`,
		`{"id": "warehouse", "name": "Warehouse", "category": "building", "purchasing_date": "2015-01-01", "purchase_amount": 1200000}`,
	},
	"mixed-register": {
		`{"id": "van-1", "name": "Delivery van", "category": "vehicle", "purchasing_date": "15.07.2021", "purchase_amount": 42000}`,
		`{"id": "laptops", "name": "Laptop batch", "category": "it_hardware", "purchasing_date": "2023-11-02", "purchase_amount": 18000}`,
		`{"id": "desks", "name": "Desks", "lifetime_years": 13, "purchasing_date": "1.2.2019", "purchase_amount": 9100}`,
		`{"id": "undated", "name": "Undated import", "lifetime_months": 60, "purchase_amount": 5000}`,
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario resets the register and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, ok := scenarioAssets[req.ScenarioID]; !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err := h.loadScenario(r.Context(), req.ScenarioID); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetRegister clears all assets and closings.
func (h *Handler) ResetRegister(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset register", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADER
// =============================================================================

func (h *Handler) loadScenario(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	h.currentScenario = ""

	now := h.Now().UTC()
	for _, js := range scenarioAssets[id] {
		asset, err := h.AssetFactory.ParseAsset(js)
		if err != nil {
			return err
		}
		asset.CreatedAt = now
		if err := h.Store.SaveAsset(ctx, *asset); err != nil {
			return fmt.Errorf("save %s: %w", asset.ID, err)
		}
	}

	h.currentScenario = id
	log.Printf("[Scenarios] Loaded %s (%d assets)", id, len(scenarioAssets[id]))
	return nil
}

// Preload loads a scenario outside of a request, e.g. on startup.
func (h *Handler) Preload(ctx context.Context, id string) error {
	if _, ok := scenarioAssets[id]; !ok {
		return fmt.Errorf("unknown scenario %q", id)
	}
	return h.loadScenario(ctx, id)
}
