package generic

// =============================================================================
// PERIOD - The fiscal year a calculation is evaluated against
// =============================================================================

// Period is a closed date range [Start, End].
// Depreciation works on calendar years only, so YearPeriod is the only
// way to build one.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// YearPeriod returns Jan 1 - Dec 31 of the given year.
func YearPeriod(year int) Period {
	return Period{Start: StartOfYear(year), End: EndOfYear(year)}
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
