package engine

import (
	"testing"
	"time"
)

// fixedHolidayCal marks a single date as a holiday.
type fixedHolidayCal struct{ date time.Time }

func (c fixedHolidayCal) IsHoliday(d time.Time) bool {
	return d.Year() == c.date.Year() && d.Month() == c.date.Month() && d.Day() == c.date.Day()
}

func TestClassifyDay(t *testing.T) {
	s := DefaultSettings()

	// GIVEN: a plain Wednesday
	facts := ClassifyDay(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), s, NoHolidays{})
	if facts.IsSaturday || facts.IsSunday || facts.IsHoliday || facts.IsRestDay || facts.IsSpecialDay {
		t.Errorf("weekday misclassified: %+v", facts)
	}

	// GIVEN: a Sunday
	facts = ClassifyDay(time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC), s, NoHolidays{})
	if !facts.IsSunday || !facts.IsRestDay || !facts.IsSpecialDay {
		t.Errorf("sunday misclassified: %+v", facts)
	}

	// GIVEN: a Saturday without the saturday-as-rest switch
	sat := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	facts = ClassifyDay(sat, s, NoHolidays{})
	if !facts.IsSaturday || facts.IsRestDay || !facts.IsSpecialDay {
		t.Errorf("saturday misclassified: %+v", facts)
	}

	// WHEN: saturday is treated as rest
	s.Standby.SaturdayAsRest = true
	facts = ClassifyDay(sat, s, NoHolidays{})
	if !facts.IsRestDay {
		t.Error("saturday should be a rest day under saturday-as-rest")
	}

	// GIVEN: a weekday holiday
	hol := time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC) // a Friday
	facts = ClassifyDay(hol, DefaultSettings(), fixedHolidayCal{date: hol})
	if !facts.IsHoliday || !facts.IsRestDay || !facts.IsSpecialDay {
		t.Errorf("holiday misclassified: %+v", facts)
	}
}

func TestParseDayTypeFallsBackToWorkday(t *testing.T) {
	if got := ParseDayType("galactic_holiday"); got != DayWorkday {
		t.Errorf("unknown day type = %q, want workday", got)
	}
	if got := ParseDayType("vacation"); got != DayVacation {
		t.Errorf("vacation = %q", got)
	}
}

func TestResolveDayKind(t *testing.T) {
	weekday := DayFacts{}
	special := DayFacts{IsSunday: true, IsSpecialDay: true}

	if kind := ResolveDayKind(WorkEntry{DayType: DaySick}, special); kind != KindFixed {
		t.Errorf("sick day kind = %q, want fixed", kind)
	}
	if kind := ResolveDayKind(WorkEntry{DayType: DayWorkday}, special); kind != KindSpecial {
		t.Errorf("worked sunday kind = %q, want special", kind)
	}
	if kind := ResolveDayKind(WorkEntry{DayType: DayWorkday}, weekday); kind != KindOrdinary {
		t.Errorf("weekday kind = %q, want ordinary", kind)
	}
}

func TestResolveStandbyActive(t *testing.T) {
	date := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	selected := DefaultSettings()
	selected.Standby.Calendar["2025-03-12"] = true
	unselected := DefaultSettings()

	cases := []struct {
		name     string
		override Tristate
		settings Settings
		want     bool
	}{
		{"manual activation beats unselected calendar", TriActivated, unselected, true},
		{"manual deactivation beats selected calendar", TriDeactivated, selected, false},
		{"unset follows selected calendar", TriUnset, selected, true},
		{"unset follows unselected calendar", TriUnset, unselected, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry := WorkEntry{Date: date, StandbyOverride: c.override}
			if got := ResolveStandbyActive(entry, c.settings, date); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}
