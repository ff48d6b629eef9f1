/*
handlers.go - HTTP API handlers for the fixed asset register

PURPOSE:
  Exposes the depreciation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Assets:
    GET    /api/assets                      List all assets
    POST   /api/assets                      Register asset (factory.AssetJSON)
    GET    /api/assets/{id}                 Get asset details
    DELETE /api/assets/{id}                 Remove asset and its closings

  Figures:
    GET    /api/assets/{id}/figures?year=   Depreciation and book values for a year
    GET    /api/assets/{id}/schedule        Every year from acquisition to final year
    POST   /api/assets/{id}/closings?year=  Freeze a year's figures
    GET    /api/assets/{id}/closings        List frozen years

  Portfolio:
    GET    /api/portfolio/summary?year=     Totals across the register

  Stateless:
    POST   /api/calculate                   Figures for an asset not in the register

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Asset not found
  - 409: Conflict (duplicate asset, year already closed)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo registers
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/erebos/fixed-asset-engine/depreciation"
	"github.com/erebos/fixed-asset-engine/factory"
	"github.com/erebos/fixed-asset-engine/generic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        generic.Store
	AssetFactory *factory.AssetFactory

	// Now is the clock used when a year parameter is omitted.
	Now func() time.Time

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store generic.Store) *Handler {
	return &Handler{
		Store:        store,
		AssetFactory: factory.NewAssetFactory(),
		Now:          time.Now,
	}
}

// =============================================================================
// ASSET HANDLERS
// =============================================================================

// ListAssets returns all assets.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Store.ListAssets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	dtos := make([]AssetDTO, len(assets))
	for i, a := range assets {
		dtos[i] = toAssetDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAsset returns a single asset.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, ok := h.loadAsset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// CreateAsset registers an asset. The id must not exist yet.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req factory.AssetJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	asset, err := h.AssetFactory.FromJSON(req)
	if err != nil {
		writeDomainError(w, "Invalid asset", err)
		return
	}

	asset.CreatedAt = h.Now().UTC()
	if err := h.Store.CreateAsset(r.Context(), *asset); err != nil {
		if generic.IsConflict(err) {
			writeDomainError(w, "Asset already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save asset", err)
		return
	}

	log.Printf("[Assets] Registered %s (%s), %d months", asset.ID, asset.Name, asset.LifeTimeInMonths)
	writeJSON(w, http.StatusCreated, toAssetDTO(*asset))
}

// DeleteAsset removes an asset.
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	asset, ok := h.loadAsset(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteAsset(r.Context(), asset.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete asset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// FIGURES HANDLERS
// =============================================================================

// GetFigures returns the three period quantities for ?year= (default: current year).
func (h *Handler) GetFigures(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		writeDomainError(w, "Invalid year", err)
		return
	}
	asset, ok := h.loadAsset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toFiguresDTO(depreciation.Evaluate(*asset, year)))
}

// GetSchedule returns the full depreciation schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	asset, ok := h.loadAsset(w, r)
	if !ok {
		return
	}

	rows := depreciation.Schedule(*asset)
	dto := ScheduleDTO{
		Asset:             toAssetDTO(*asset),
		Years:             make([]FiguresDTO, len(rows)),
		TotalDepreciation: money(depreciation.TotalDepreciation(rows)),
	}
	if first, last, ok := depreciation.Range(*asset); ok {
		dto.FirstYear, dto.LastYear = first, last
	}
	for i, f := range rows {
		dto.Years[i] = toFiguresDTO(f)
	}
	writeJSON(w, http.StatusOK, dto)
}

// CloseYear freezes the figures of ?year= for the asset.
func (h *Handler) CloseYear(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		writeDomainError(w, "Invalid year", err)
		return
	}
	asset, ok := h.loadAsset(w, r)
	if !ok {
		return
	}

	closing := depreciation.Evaluate(*asset, year).Closing()
	closing.ID = uuid.NewString()
	closing.ClosedAt = h.Now().UTC()

	if err := h.Store.SaveClosing(r.Context(), closing); err != nil {
		writeDomainError(w, "Failed to close year", err)
		return
	}

	log.Printf("[Closings] Closed %s for %s: end value %s", generic.YearPeriod(year), asset.ID, money(closing.NetBookEnd))
	writeJSON(w, http.StatusCreated, toClosingDTO(closing))
}

// ListClosings returns frozen years for the asset.
func (h *Handler) ListClosings(w http.ResponseWriter, r *http.Request) {
	asset, ok := h.loadAsset(w, r)
	if !ok {
		return
	}

	closings, err := h.Store.ListClosings(r.Context(), asset.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list closings", err)
		return
	}
	dtos := make([]ClosingDTO, len(closings))
	for i, c := range closings {
		dtos[i] = toClosingDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PORTFOLIO HANDLERS
// =============================================================================

// GetPortfolioSummary sums figures across every registered asset.
func (h *Handler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		writeDomainError(w, "Invalid year", err)
		return
	}

	assets, err := h.Store.ListAssets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(depreciation.Summarize(assets, year)))
}

// Calculate evaluates an ad-hoc asset without storing it.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Year < 1 {
		writeDomainError(w, "Invalid year", fmt.Errorf("year %d: %w", req.Year, generic.ErrInvalidYear))
		return
	}

	asset, err := h.AssetFactory.FromJSON(req.Asset)
	if err != nil {
		writeDomainError(w, "Invalid asset", err)
		return
	}
	writeJSON(w, http.StatusOK, toFiguresDTO(depreciation.Evaluate(*asset, req.Year)))
}

// =============================================================================
// HELPERS
// =============================================================================

// loadAsset resolves {id} and writes a 404 when it does not exist.
func (h *Handler) loadAsset(w http.ResponseWriter, r *http.Request) (*generic.Asset, bool) {
	id := generic.AssetID(chi.URLParam(r, "id"))

	asset, err := h.Store.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load asset", err)
		return nil, false
	}
	if asset == nil {
		writeDomainError(w, "Asset not found", fmt.Errorf("%s: %w", id, generic.ErrAssetNotFound))
		return nil, false
	}
	return asset, true
}

func (h *Handler) yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return h.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		return 0, fmt.Errorf("year %q: %w", raw, generic.ErrInvalidYear)
	}
	return year, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status from the error category.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		var verr *generic.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, message, err)
			return
		}
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
