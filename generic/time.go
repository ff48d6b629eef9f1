package generic

import (
	"fmt"
	"regexp"
	"time"
)

// =============================================================================
// TIME POINT - Calendar date abstraction used by every calculation
// =============================================================================

// TimePoint is a calendar date at day precision. The zero value is an
// ABSENT date: it has no year and no month, and every calculation built on
// it degrades to zero.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func FromTime(t time.Time) TimePoint {
	if t.IsZero() {
		return TimePoint{}
	}
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// Equal compares calendar days, ignoring time of day and location.
func (tp TimePoint) Equal(other TimePoint) bool {
	return tp.Year() == other.Year() && tp.Month() == other.Month() && tp.Day() == other.Day()
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// AddMonths moves the date by n calendar months. The day of month is clamped
// to the length of the target month, so Jan 31 + 1 month is Feb 28 (or 29)
// where time.AddDate would give Mar 3. An absent date stays absent.
func (tp TimePoint) AddMonths(n int) TimePoint {
	if tp.IsZero() {
		return tp
	}
	total := tp.Time.Year()*12 + int(tp.Time.Month()-1) + n
	year, month := floorDiv(total, 12), time.Month(floorMod(total, 12)+1)

	day := tp.Time.Day()
	if last := EndOfMonth(year, month).Day(); day > last {
		day = last
	}
	return NewTimePoint(year, month, day)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int { return a - floorDiv(a, b)*b }

// Properties
func (tp TimePoint) Year() int         { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month { return tp.Time.Month() }
func (tp TimePoint) Day() int          { return tp.Time.Day() }
func (tp TimePoint) IsZero() bool      { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	return FormatDate(tp)
}

// =============================================================================
// ACCESSORS - Absent-date conventions
// =============================================================================

// YearOf returns the calendar year, or 0 for an absent date.
func YearOf(tp TimePoint) int {
	if tp.IsZero() {
		return 0
	}
	return tp.Year()
}

// MonthOf returns the month index (1-12). Unlike YearOf it does not degrade:
// an absent date is ErrMissingDate.
func MonthOf(tp TimePoint) (int, error) {
	if tp.IsZero() {
		return 0, ErrMissingDate
	}
	return int(tp.Month()), nil
}

// MustMonthOf is MonthOf for callers that have already ruled out an absent date.
func MustMonthOf(tp TimePoint) int {
	m, err := MonthOf(tp)
	if err != nil {
		panic(err)
	}
	return m
}

// =============================================================================
// DATE STRINGS
// =============================================================================

const (
	EnglishDatePattern = "yyyy-MM-dd"
	GermanDatePattern  = "dd.MM.yyyy"
)

var (
	reDateEN = regexp.MustCompile(`^(19|20)\d\d-(0[1-9]|1[012]|[1-9])-(0[1-9]|[12][0-9]|3[01]|[1-9])$`)
	reDateDE = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01]|[1-9])\.(0[1-9]|1[012]|[1-9])\.(19|20)\d\d$`)

	layouts = map[string]string{
		EnglishDatePattern: "2006-1-2",
		GermanDatePattern:  "2.1.2006",
	}
)

// DatePattern detects which supported pattern a date string is written in.
func DatePattern(s string) (string, error) {
	switch {
	case reDateEN.MatchString(s):
		return EnglishDatePattern, nil
	case reDateDE.MatchString(s):
		return GermanDatePattern, nil
	}
	return "", &DateParsingError{Input: s, Reason: "date format does not match requirements"}
}

// ParseDate parses s with automatic pattern detection.
func ParseDate(s string) (TimePoint, error) {
	pattern, err := DatePattern(s)
	if err != nil {
		return TimePoint{}, err
	}
	return ParseDateWithPattern(s, pattern)
}

// ParseDateWithPattern parses s with one of EnglishDatePattern or GermanDatePattern.
func ParseDateWithPattern(s, pattern string) (TimePoint, error) {
	layout, ok := layouts[pattern]
	if !ok {
		return TimePoint{}, &DateParsingError{Input: s, Reason: fmt.Sprintf("unsupported pattern %q", pattern)}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimePoint{}, &DateParsingError{Input: s, Reason: err.Error()}
	}
	return FromTime(t), nil
}

// FormatDate renders a date in the English pattern. Absent dates render empty.
func FormatDate(tp TimePoint) string {
	if tp.IsZero() {
		return ""
	}
	return tp.Time.Format("2006-01-02")
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfYear(year int) TimePoint { return NewTimePoint(year, time.January, 1) }
func EndOfYear(year int) TimePoint   { return NewTimePoint(year, time.December, 31) }
func EndOfMonth(year int, month time.Month) TimePoint {
	return NewTimePoint(year, month+1, 0)
}
