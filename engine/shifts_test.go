package engine

import "testing"

func TestAggregateShiftsAcrossRecords(t *testing.T) {
	// GIVEN: a primary shift with two work periods and travel, plus an
	// additional shift record
	entry := WorkEntry{
		Shifts: []Shift{
			{
				TravelOutStart: "07:00", TravelOutEnd: "08:00",
				Work1Start: "08:00", Work1End: "12:00",
				Work2Start: "13:00", Work2End: "17:00",
				TravelReturnStart: "17:00", TravelReturnEnd: "17:30",
			},
			{
				Work1Start: "18:00", Work1End: "19:00",
			},
		},
	}

	totals := AggregateShifts(entry)
	if totals.WorkMinutes != 9*60 {
		t.Errorf("work minutes = %d, want %d", totals.WorkMinutes, 9*60)
	}
	if totals.TravelMinutes != 90 {
		t.Errorf("travel minutes = %d, want 90", totals.TravelMinutes)
	}
}

func TestAggregateShiftsLegacyFallback(t *testing.T) {
	// GIVEN: no shift list, only the legacy flat fields
	entry := WorkEntry{
		Legacy: Shift{Work1Start: "09:00", Work1End: "17:00"},
	}
	if got := AggregateShifts(entry).WorkMinutes; got != 8*60 {
		t.Errorf("legacy work minutes = %d, want %d", got, 8*60)
	}

	// WHEN: the list form is present, legacy is ignored
	entry.Shifts = []Shift{{Work1Start: "08:00", Work1End: "12:00"}}
	if got := AggregateShifts(entry).WorkMinutes; got != 4*60 {
		t.Errorf("list work minutes = %d, want %d", got, 4*60)
	}
}

func TestAggregateShiftsNightMinutes(t *testing.T) {
	entry := WorkEntry{
		Shifts: []Shift{{Work1Start: "21:00", Work1End: "02:00"}},
	}
	totals := AggregateShifts(entry)
	if totals.WorkMinutes != 5*60 {
		t.Errorf("work minutes = %d, want %d", totals.WorkMinutes, 5*60)
	}
	// 22:00-02:00 falls inside the night window
	if totals.NightWorkMinutes != 4*60 {
		t.Errorf("night minutes = %d, want %d", totals.NightWorkMinutes, 4*60)
	}
}

func TestSplitTravelExternalInternal(t *testing.T) {
	// GIVEN: two shifts, each with outbound and return travel
	shifts := []Shift{
		{
			TravelOutStart: "07:00", TravelOutEnd: "08:00", // first outbound -> external
			TravelReturnStart: "12:00", TravelReturnEnd: "12:30", // internal
		},
		{
			TravelOutStart: "13:00", TravelOutEnd: "13:20", // internal
			TravelReturnStart: "18:00", TravelReturnEnd: "19:00", // last return -> external
		},
	}

	external, internal := splitTravel(shifts)
	if external != 120 {
		t.Errorf("external minutes = %d, want 120", external)
	}
	if internal != 50 {
		t.Errorf("internal minutes = %d, want 50", internal)
	}
}

func TestAggregateInterventions(t *testing.T) {
	entry := WorkEntry{
		Interventions: []Shift{
			{
				TravelOutStart: "22:00", TravelOutEnd: "22:30",
				Work1Start: "22:30", Work1End: "23:45",
			},
			{Work1Start: "03:00", Work1End: "04:00"},
		},
	}
	work, travel := AggregateInterventions(entry)
	if work != 135 {
		t.Errorf("standby work minutes = %d, want 135", work)
	}
	if travel != 30 {
		t.Errorf("standby travel minutes = %d, want 30", travel)
	}
}

func TestDetectBreaks(t *testing.T) {
	// GIVEN: morning and afternoon periods with a 90 minute lunch gap, plus
	// a short 15 minute pause that must not count
	entry := WorkEntry{
		Shifts: []Shift{
			{
				Work1Start: "08:00", Work1End: "12:00",
				Work2Start: "13:30", Work2End: "17:00",
			},
			{Work1Start: "17:15", Work1End: "18:00"},
		},
	}

	breaks := DetectBreaks(entry)
	if len(breaks) != 1 {
		t.Fatalf("breaks = %d, want 1", len(breaks))
	}
	if breaks[0].Minutes != 90 || breaks[0].Start != 12*60 {
		t.Errorf("break = %+v, want 90 minutes from 12:00", breaks[0])
	}

	if !breakOverlapsWindow(breaks, "12:00", "14:30") {
		t.Error("lunch window should overlap the detected break")
	}
	if breakOverlapsWindow(breaks, "19:00", "21:30") {
		t.Error("dinner window should not overlap the detected break")
	}
}

func TestDetectBreaksSinglePeriod(t *testing.T) {
	entry := WorkEntry{Shifts: []Shift{{Work1Start: "08:00", Work1End: "17:00"}}}
	if breaks := DetectBreaks(entry); len(breaks) != 0 {
		t.Errorf("single period yielded %d breaks", len(breaks))
	}
}
