/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Asset registration (validation, duplicates, category defaults)
- Figures, schedule and portfolio endpoints
- Year closings (write once, 404 for unknown assets)
- Stateless calculation
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erebos/fixed-asset-engine/factory"
	"github.com/erebos/fixed-asset-engine/generic/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	h := NewHandler(store.NewMemory())
	h.Now = func() time.Time { return time.Date(2022, time.June, 30, 12, 0, 0, 0, time.UTC) }
	return h, NewRouter(h, []string{"*"})
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createMachine(t *testing.T, router http.Handler, id, date string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/assets", factory.EquipmentJSON(id, "Machine "+id, date, 200000, 120))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// =============================================================================
// ASSETS
// =============================================================================

func TestCreateAsset(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/assets",
		`{"id": "van-1", "name": "Delivery van", "category": "vehicle", "purchasing_date": "15.07.2021", "purchase_amount": 42000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	dto := decode[AssetDTO](t, rec)
	assert.Equal(t, "van-1", dto.ID)
	assert.Equal(t, 72, dto.LifeTimeInMonths)
	assert.Equal(t, "2021-07-15", dto.PurchasingDate)
	assert.False(t, dto.NeverDepreciates)
	assert.Equal(t, "2022-06-30T12:00:00Z", dto.CreatedAt)

	rec = do(t, router, http.MethodGet, "/api/assets/van-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delivery van", decode[AssetDTO](t, rec).Name)
}

func TestCreateAsset_Land(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/assets", factory.LandJSON("plot", "Plot", "2011-03-01", 200000))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode[AssetDTO](t, rec).NeverDepreciates)
}

func TestCreateAsset_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"name": `, http.StatusBadRequest},
		{"missing name", `{"lifetime_months": 12}`, http.StatusBadRequest},
		{"bad date", `{"name": "x", "lifetime_months": 12, "purchasing_date": "2021-02-31"}`, http.StatusBadRequest},
		{"no lifetime", `{"name": "x", "category": "spaceship"}`, http.StatusBadRequest},
		{"negative lifetime", `{"name": "x", "lifetime_months": -1}`, http.StatusBadRequest},
		{"negative amount", `{"name": "x", "lifetime_months": 12, "purchase_amount": -5}`, http.StatusBadRequest},
		{"lifetime above 999 years", `{"name": "x", "lifetime_months": 120000000}`, http.StatusBadRequest},
		{"oversized amount", `{"name": "x", "lifetime_months": 1, "purchase_amount": 1e308}`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, router := newTestServer(t)
			rec := do(t, router, http.MethodPost, "/api/assets", tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, rec).Error)
		})
	}
}

func TestCreateAsset_Duplicate(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m1", "2020-05-01")

	rec := do(t, router, http.MethodPost, "/api/assets", factory.EquipmentJSON("m1", "Again", "2020-05-01", 1, 12))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAsset_ConcurrentDuplicates(t *testing.T) {
	// GIVEN: Many simultaneous registrations of the same id
	h, router := newTestServer(t)

	const n = 20
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := factory.EquipmentJSON("m1", fmt.Sprintf("Machine %d", i), "2020-05-01", 200000, 120)
			codes[i] = do(t, router, http.MethodPost, "/api/assets", body).Code
		}(i)
	}
	wg.Wait()

	// THEN: Exactly one wins and the rest conflict
	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		default:
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, created)

	assets, err := h.Store.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestListAndDeleteAssets(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "b", "2020-05-01")
	createMachine(t, router, "a", "2022-03-01")

	rec := do(t, router, http.MethodGet, "/api/assets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]AssetDTO](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	rec = do(t, router, http.MethodDelete, "/api/assets/a", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/assets/a", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/assets/a", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// FIGURES
// =============================================================================

func TestGetFigures(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m2020", "2020-05-01")

	rec := do(t, router, http.MethodGet, "/api/assets/m2020/figures?year=2022", "")
	require.Equal(t, http.StatusOK, rec.Code)

	f := decode[FiguresDTO](t, rec)
	assert.Equal(t, 2022, f.Year)
	assert.Equal(t, "2022-01-01", f.PeriodStart)
	assert.Equal(t, "2022-12-31", f.PeriodEnd)
	assert.Equal(t, "20000.00", f.Depreciation)
	assert.Equal(t, "166666.67", f.NetBookBegin)
	assert.Equal(t, "146666.67", f.NetBookEnd)
}

func TestGetFigures_DefaultsToCurrentYear(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m2022", "2022-03-01")

	rec := do(t, router, http.MethodGet, "/api/assets/m2022/figures", "")
	require.Equal(t, http.StatusOK, rec.Code)

	f := decode[FiguresDTO](t, rec)
	assert.Equal(t, 2022, f.Year)
	assert.Equal(t, "16666.67", f.Depreciation)
	assert.Equal(t, "0.00", f.NetBookBegin)
}

func TestGetFigures_InvalidYear(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m", "2020-05-01")

	for _, year := range []string{"abc", "0", "-4"} {
		rec := do(t, router, http.MethodGet, "/api/assets/m/figures?year="+year, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, year)
	}
}

func TestGetSchedule(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m2012", "2012-10-01")

	rec := do(t, router, http.MethodGet, "/api/assets/m2012/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)

	s := decode[ScheduleDTO](t, rec)
	assert.Equal(t, 2012, s.FirstYear)
	assert.Equal(t, 2022, s.LastYear)
	require.Len(t, s.Years, 11)
	assert.Equal(t, "5000.00", s.Years[0].Depreciation)
	assert.Equal(t, "15000.00", s.Years[10].Depreciation)
	assert.Equal(t, "0.00", s.Years[10].NetBookEnd)
	assert.Equal(t, "200000.00", s.TotalDepreciation)
}

func TestGetSchedule_UndatedAsset(t *testing.T) {
	_, router := newTestServer(t)
	rec := do(t, router, http.MethodPost, "/api/assets", `{"id": "u", "name": "Undated", "lifetime_months": 60, "purchase_amount": 5000}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/assets/u/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)

	s := decode[ScheduleDTO](t, rec)
	assert.Empty(t, s.Years)
	assert.Zero(t, s.FirstYear)
	assert.Equal(t, "0.00", s.TotalDepreciation)
}

// =============================================================================
// CLOSINGS
// =============================================================================

func TestCloseYear(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m2020", "2020-05-01")

	rec := do(t, router, http.MethodPost, "/api/assets/m2020/closings?year=2022", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	c := decode[ClosingDTO](t, rec)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "146666.67", c.NetBookEnd)
	assert.Equal(t, "2022-12-31", c.PeriodEnd)
	assert.Equal(t, "2022-06-30T12:00:00Z", c.ClosedAt)

	// GIVEN: The year is already closed
	// THEN: Closing it again is a conflict
	rec = do(t, router, http.MethodPost, "/api/assets/m2020/closings?year=2022", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/assets/m2020/closings?year=2021", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/assets/m2020/closings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ClosingDTO](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, 2021, list[0].Year)
	assert.Equal(t, list[0].NetBookEnd, list[1].NetBookBegin)
}

func TestCloseYear_UnknownAsset(t *testing.T) {
	_, router := newTestServer(t)
	rec := do(t, router, http.MethodPost, "/api/assets/ghost/closings?year=2022", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// PORTFOLIO & CALCULATE
// =============================================================================

func TestGetPortfolioSummary(t *testing.T) {
	_, router := newTestServer(t)
	createMachine(t, router, "m2011", "2011-03-01")
	createMachine(t, router, "m2012", "2012-10-01")
	createMachine(t, router, "m2020", "2020-05-01")
	createMachine(t, router, "m2022", "2022-03-01")

	rec := do(t, router, http.MethodGet, "/api/portfolio/summary?year=2022", "")
	require.Equal(t, http.StatusOK, rec.Code)

	s := decode[SummaryDTO](t, rec)
	assert.Equal(t, 4, s.AssetCount)
	// 0 + 15000 + 20000 + 16666.67
	assert.Equal(t, "51666.67", s.Depreciation)
	// 0 + 15000 + 166666.67 + 0
	assert.Equal(t, "181666.67", s.NetBookBegin)
	// 0 + 0 + 146666.67 + 183333.33
	assert.Equal(t, "330000.00", s.NetBookEnd)
}

func TestCalculate(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/calculate",
		`{"asset": {"name": "Press", "lifetime_years": 10, "purchasing_date": "01.10.2012", "purchase_amount": 200000}, "year": 2022}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f := decode[FiguresDTO](t, rec)
	assert.Equal(t, "15000.00", f.Depreciation)
	assert.Equal(t, "15000.00", f.NetBookBegin)
	assert.Equal(t, "0.00", f.NetBookEnd)

	// Nothing is stored
	rec = do(t, router, http.MethodGet, "/api/assets", "")
	assert.Empty(t, decode[[]AssetDTO](t, rec))
}

func TestCalculate_Errors(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/calculate", `{"asset": {"name": "x", "lifetime_months": 12}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/calculate", `{"asset": {"name": "x"}, "year": 2022}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculate_YearMustBePositive(t *testing.T) {
	_, router := newTestServer(t)

	for _, year := range []int{0, -5} {
		body := fmt.Sprintf(`{"asset": {"name": "x", "lifetime_months": 120, "purchasing_date": "2020-05-01", "purchase_amount": 1000}, "year": %d}`, year)
		rec := do(t, router, http.MethodPost, "/api/calculate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "year %d", year)
	}
}
