/*
errors.go - Centralized error types for the asset engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculation core never returns errors: inapplicable periods are
  zero-valued results. Errors only appear at the edges - date access,
  date parsing, asset validation and the register.

ERROR CATEGORIES:
  1. Date errors - Absent date accessed, unparseable date strings
  2. Validation errors - Asset definitions that cannot be depreciated
  3. Store errors - Register lookups and conflicts

USAGE:
  if errors.Is(err, generic.ErrMissingDate) {
      // caller passed an asset without a purchasing date
  }

SEE ALSO:
  - time.go: MonthOf, ParseDate
  - asset.go: Asset.Validate
  - store/sqlite/sqlite.go: Maps constraint violations to these errors
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingDate is returned when the month of an absent date is requested.
	ErrMissingDate = errors.New("date is required")

	// ErrDateParsing is returned when a date string matches no supported pattern.
	ErrDateParsing = errors.New("date parsing failed")

	// ErrAssetNotFound is returned when a referenced asset doesn't exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrDuplicateAsset is returned when an asset ID is already registered.
	ErrDuplicateAsset = errors.New("asset already exists")

	// ErrClosingExists is returned when a year has already been closed for an asset.
	ErrClosingExists = errors.New("period already closed")

	// ErrInvalidLifetime is returned for useful lives outside 0..999 years.
	ErrInvalidLifetime = errors.New("invalid lifetime")

	// ErrInvalidAmount is returned for negative, non-finite or oversized purchase amounts.
	ErrInvalidAmount = errors.New("invalid purchase amount")

	// ErrInvalidYear is returned when a calculation year is missing or malformed.
	ErrInvalidYear = errors.New("invalid calculation year")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DateParsingError carries the offending input.
type DateParsingError struct {
	Input  string
	Reason string
}

func (e *DateParsingError) Error() string {
	return fmt.Sprintf("cannot parse date %q: %s", e.Input, e.Reason)
}

func (e *DateParsingError) Unwrap() error {
	return ErrDateParsing
}

// ValidationError names the asset field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error // one of the sentinels above
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrDateParsing) ||
		errors.Is(err, ErrInvalidLifetime) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidYear)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}

// IsConflict returns true if the write collided with existing state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateAsset) ||
		errors.Is(err, ErrClosingExists)
}
