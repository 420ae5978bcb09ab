package engine

import (
	"strconv"
	"strings"
)

// =============================================================================
// TIME ARITHMETIC - Clock parsing and duration math (minute granularity)
// =============================================================================

// MinutesPerDay bounds every per-day computation.
const MinutesPerDay = 1440

// ParseClock parses "HH:MM" into minutes since midnight.
// Empty or malformed values report ok=false and contribute zero duration;
// they are never an error.
func ParseClock(clock string) (int, bool) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, false
	}
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// ClockDuration returns the minutes between two clock values.
// When end < start the span wraps past midnight: (1440-start)+end.
// A missing endpoint contributes zero.
func ClockDuration(start, end string) int {
	s, ok := ParseClock(start)
	if !ok {
		return 0
	}
	e, ok := ParseClock(end)
	if !ok {
		return 0
	}
	if e < s {
		return (MinutesPerDay - s) + e
	}
	return e - s
}

// HoursFromMinutes converts whole minutes to fractional hours.
func HoursFromMinutes(minutes int) float64 { return float64(minutes) / 60.0 }

// clockSpan is a parsed [start,end) span in absolute minutes; end may exceed
// MinutesPerDay when the span wraps past midnight.
type clockSpan struct {
	start int
	end   int
}

// parseSpan parses a clock pair into a span. ok=false when either endpoint
// is missing or the span is empty.
func parseSpan(start, end string) (clockSpan, bool) {
	s, okS := ParseClock(start)
	e, okE := ParseClock(end)
	if !okS || !okE {
		return clockSpan{}, false
	}
	if e < s {
		e += MinutesPerDay
	}
	if e == s {
		return clockSpan{}, false
	}
	return clockSpan{start: s, end: e}, true
}

// minutes returns the span length.
func (sp clockSpan) minutes() int { return sp.end - sp.start }

// overlap returns how many minutes of the span fall inside [from,to) on the
// plain (non-wrapped) clock. Wrapped spans are checked on both days.
func (sp clockSpan) overlap(from, to int) int {
	total := 0
	for _, base := range []int{0, MinutesPerDay} {
		lo := max(sp.start, from+base)
		hi := min(sp.end, to+base)
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}
