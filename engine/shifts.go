/*
shifts.go - Duration aggregation across a day's shift records

PURPOSE:
  Sums work and travel durations across the primary shift and any additional
  shift records, and across standby intervention records. Also classifies
  travel legs as "external" vs "internal" for the alternate allowance policy,
  and derives inter-shift breaks for automatic meal inference.

FALLBACK:
  When the shift list is absent entirely the aggregator falls back to the
  legacy flat single-shift fields older records stored. Same for
  interventions.

EXTERNAL VS INTERNAL TRAVEL:
  The first outbound leg of the day and the last return leg of the day are
  "external" (home <-> site); every other leg is "internal" (between sites).
*/
package engine

import "sort"

// ShiftTotals are the summed minute durations for one day.
type ShiftTotals struct {
	WorkMinutes   int
	TravelMinutes int

	// Work minutes falling in the 22:00-06:00 window, for the night bonus.
	NightWorkMinutes int

	ExternalTravelMinutes int
	InternalTravelMinutes int
}

// WorkHours returns summed work duration in hours.
func (t ShiftTotals) WorkHours() float64 { return HoursFromMinutes(t.WorkMinutes) }

// TravelHours returns summed travel duration in hours.
func (t ShiftTotals) TravelHours() float64 { return HoursFromMinutes(t.TravelMinutes) }

// DayHours returns worked plus traveled hours.
func (t ShiftTotals) DayHours() float64 { return HoursFromMinutes(t.WorkMinutes + t.TravelMinutes) }

// effectiveShifts returns the shift list, or the legacy single shift when the
// list form is absent.
func effectiveShifts(shifts []Shift, legacy Shift) []Shift {
	if len(shifts) > 0 {
		return shifts
	}
	if !legacy.IsZero() {
		return []Shift{legacy}
	}
	return nil
}

// AggregateShifts sums the entry's shift durations. Missing or malformed
// clock fields contribute zero, never an error.
func AggregateShifts(entry WorkEntry) ShiftTotals {
	var t ShiftTotals
	shifts := effectiveShifts(entry.Shifts, entry.Legacy)

	for _, sh := range shifts {
		for _, pair := range [][2]string{
			{sh.Work1Start, sh.Work1End},
			{sh.Work2Start, sh.Work2End},
		} {
			sp, ok := parseSpan(pair[0], pair[1])
			if !ok {
				continue
			}
			t.WorkMinutes += sp.minutes()
			t.NightWorkMinutes += sp.overlap(bandNightStart, MinutesPerDay) + sp.overlap(0, bandDayStart)
		}
		t.TravelMinutes += ClockDuration(sh.TravelOutStart, sh.TravelOutEnd)
		t.TravelMinutes += ClockDuration(sh.TravelReturnStart, sh.TravelReturnEnd)
	}

	t.ExternalTravelMinutes, t.InternalTravelMinutes = splitTravel(shifts)
	return t
}

// AggregateInterventions sums standby work and travel durations across the
// intervention records.
func AggregateInterventions(entry WorkEntry) (workMinutes, travelMinutes int) {
	for _, iv := range effectiveShifts(entry.Interventions, entry.LegacyIntervention) {
		workMinutes += ClockDuration(iv.Work1Start, iv.Work1End)
		workMinutes += ClockDuration(iv.Work2Start, iv.Work2End)
		travelMinutes += ClockDuration(iv.TravelOutStart, iv.TravelOutEnd)
		travelMinutes += ClockDuration(iv.TravelReturnStart, iv.TravelReturnEnd)
	}
	return workMinutes, travelMinutes
}

// splitTravel classifies travel legs: first outbound + last return are
// external, every other recorded leg is internal.
func splitTravel(shifts []Shift) (external, internal int) {
	type leg struct {
		minutes  int
		outbound bool
	}
	var legs []leg
	for _, sh := range shifts {
		if d := ClockDuration(sh.TravelOutStart, sh.TravelOutEnd); d > 0 {
			legs = append(legs, leg{minutes: d, outbound: true})
		}
		if d := ClockDuration(sh.TravelReturnStart, sh.TravelReturnEnd); d > 0 {
			legs = append(legs, leg{minutes: d, outbound: false})
		}
	}

	firstOut, lastRet := -1, -1
	for i, l := range legs {
		if l.outbound && firstOut == -1 {
			firstOut = i
		}
		if !l.outbound {
			lastRet = i
		}
	}
	for i, l := range legs {
		if i == firstOut || i == lastRet {
			external += l.minutes
		} else {
			internal += l.minutes
		}
	}
	return external, internal
}

// =============================================================================
// BREAK DETECTION - Gaps between work periods, for meal inference
// =============================================================================

// Break is a gap between two consecutive work periods.
type Break struct {
	Start   int // minutes since midnight
	End     int
	Minutes int
}

// minBreakMinutes is the threshold below which a gap is not a meal break.
const minBreakMinutes = 60

// DetectBreaks sorts all work periods of the day by start time and reports
// the gaps between them that are at least an hour long.
func DetectBreaks(entry WorkEntry) []Break {
	var spans []clockSpan
	for _, sh := range effectiveShifts(entry.Shifts, entry.Legacy) {
		for _, pair := range [][2]string{
			{sh.Work1Start, sh.Work1End},
			{sh.Work2Start, sh.Work2End},
		} {
			if sp, ok := parseSpan(pair[0], pair[1]); ok {
				spans = append(spans, sp)
			}
		}
	}
	if len(spans) < 2 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var breaks []Break
	for i := 1; i < len(spans); i++ {
		gap := spans[i].start - spans[i-1].end
		if gap >= minBreakMinutes {
			breaks = append(breaks, Break{
				Start:   spans[i-1].end % MinutesPerDay,
				End:     spans[i].start % MinutesPerDay,
				Minutes: gap,
			})
		}
	}
	return breaks
}

// breakOverlapsWindow reports whether any detected break overlaps the
// configured meal window.
func breakOverlapsWindow(breaks []Break, windowStart, windowEnd string) bool {
	ws, okS := ParseClock(windowStart)
	we, okE := ParseClock(windowEnd)
	if !okS || !okE || we <= ws {
		return false
	}
	for _, br := range breaks {
		sp := clockSpan{start: br.Start, end: br.Start + br.Minutes}
		if sp.overlap(ws, we) > 0 {
			return true
		}
	}
	return false
}
