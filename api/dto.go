/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts leave the API as decimal strings with two places ("16666.67").
  Unrounded values stay internal; closings persist the unrounded decimals.

TYPES:
  Asset:     AssetDTO (request body is factory.AssetJSON)
  Figures:   FiguresDTO, ScheduleDTO, SummaryDTO
  Closings:  ClosingDTO
  Calculate: CalculateRequest
  Scenarios: ScenarioDTO, LoadScenarioRequest

SEE ALSO:
  - handlers.go: Uses these types
  - factory/asset.go: AssetJSON type
*/
package api

import (
	"time"

	"github.com/erebos/fixed-asset-engine/depreciation"
	"github.com/erebos/fixed-asset-engine/factory"
	"github.com/erebos/fixed-asset-engine/generic"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AssetDTO represents an asset in API responses.
type AssetDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category,omitempty"`
	LifeTimeInMonths int     `json:"lifetime_months"`
	NeverDepreciates bool    `json:"never_depreciates"`
	PurchasingDate   string  `json:"purchasing_date,omitempty"`
	PurchaseAmount   float64 `json:"purchase_amount"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// FiguresDTO is one asset-year. The period is the calendar year the
// figures were evaluated against.
type FiguresDTO struct {
	AssetID      string `json:"asset_id,omitempty"`
	Year         int    `json:"year"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	Depreciation string `json:"depreciation"`
	NetBookBegin string `json:"net_book_begin"`
	NetBookEnd   string `json:"net_book_end"`
}

// ScheduleDTO is every year of one asset.
type ScheduleDTO struct {
	Asset             AssetDTO     `json:"asset"`
	FirstYear         int          `json:"first_year,omitempty"`
	LastYear          int          `json:"last_year,omitempty"`
	Years             []FiguresDTO `json:"years"`
	TotalDepreciation string       `json:"total_depreciation"`
}

// SummaryDTO aggregates the register for a year.
type SummaryDTO struct {
	Year         int    `json:"year"`
	AssetCount   int    `json:"asset_count"`
	Depreciation string `json:"depreciation"`
	NetBookBegin string `json:"net_book_begin"`
	NetBookEnd   string `json:"net_book_end"`
}

// ClosingDTO is a persisted year-end snapshot.
type ClosingDTO struct {
	ID string `json:"id"`
	FiguresDTO
	ClosedAt string `json:"closed_at"`
}

// CalculateRequest evaluates an asset that is not in the register.
type CalculateRequest struct {
	Asset factory.AssetJSON `json:"asset"`
	Year  int               `json:"year"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ScenarioDTO describes a demo register.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo register.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(a generic.Amount) string { return a.Round(2).StringFixed(2) }

func toAssetDTO(a generic.Asset) AssetDTO {
	dto := AssetDTO{
		ID:               string(a.ID),
		Name:             a.Name,
		Category:         a.Category,
		LifeTimeInMonths: a.LifeTimeInMonths,
		NeverDepreciates: depreciation.IsMinOrMaxLifeTime(a.LifeTimeInMonths),
		PurchasingDate:   generic.FormatDate(a.PurchasingDate),
		PurchaseAmount:   a.PurchaseAmount,
	}
	if !a.CreatedAt.IsZero() {
		dto.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toFiguresDTO(f depreciation.Figures) FiguresDTO {
	period := generic.YearPeriod(f.Year)
	return FiguresDTO{
		AssetID:      string(f.AssetID),
		Year:         f.Year,
		PeriodStart:  generic.FormatDate(period.Start),
		PeriodEnd:    generic.FormatDate(period.End),
		Depreciation: money(f.Depreciation),
		NetBookBegin: money(f.NetBookBegin),
		NetBookEnd:   money(f.NetBookEnd),
	}
}

func toSummaryDTO(s depreciation.Summary) SummaryDTO {
	return SummaryDTO{
		Year:         s.Year,
		AssetCount:   s.AssetCount,
		Depreciation: money(s.Depreciation),
		NetBookBegin: money(s.NetBookBegin),
		NetBookEnd:   money(s.NetBookEnd),
	}
}

func toClosingDTO(c generic.Closing) ClosingDTO {
	return ClosingDTO{
		ID: c.ID,
		FiguresDTO: toFiguresDTO(depreciation.Figures{
			AssetID:      c.AssetID,
			Year:         c.Year,
			Depreciation: c.Depreciation,
			NetBookBegin: c.NetBookBegin,
			NetBookEnd:   c.NetBookEnd,
		}),
		ClosedAt: c.ClosedAt.Format(time.RFC3339),
	}
}
