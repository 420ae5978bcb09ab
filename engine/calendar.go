package engine

import "time"

// =============================================================================
// HOLIDAY CALENDAR - External lookup collaborator
// =============================================================================

// HolidayCalendar answers whether a date is a public holiday. It is consulted
// exactly once per day classification.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

// NoHolidays is the no-op calendar used when no lookup is wired.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(time.Time) bool { return false }

// =============================================================================
// DAY CLASSIFICATION
// =============================================================================

// DayFacts are the calendar-derived facts for one date.
type DayFacts struct {
	IsSaturday bool
	IsSunday   bool
	IsHoliday  bool

	// IsRestDay = Sunday || holiday || (Saturday && SaturdayAsRest).
	IsRestDay bool

	// IsSpecialDay = Saturday || Sunday || holiday. Special days get the
	// uniform flat day-multiplier treatment.
	IsSpecialDay bool
}

// ClassifyDay resolves the calendar facts for a date. cal may be nil.
func ClassifyDay(date time.Time, s Settings, cal HolidayCalendar) DayFacts {
	wd := date.Weekday()
	f := DayFacts{
		IsSaturday: wd == time.Saturday,
		IsSunday:   wd == time.Sunday,
	}
	if cal != nil {
		f.IsHoliday = cal.IsHoliday(date)
	}
	f.IsRestDay = f.IsSunday || f.IsHoliday || (f.IsSaturday && s.Standby.SaturdayAsRest)
	f.IsSpecialDay = f.IsSaturday || f.IsSunday || f.IsHoliday
	return f
}

// =============================================================================
// DAY KIND - Tagged classification computed once per Compute call
// =============================================================================

// DayKind collapses day-type and calendar facts into the single branch the
// earnings computation follows.
type DayKind string

const (
	// KindFixed: a non-workday day type (vacation, sick, permit,
	// compensatory rest). Pays the flat daily rate, everything else zero.
	KindFixed DayKind = "fixed"

	// KindSpecial: a worked Saturday/Sunday/holiday. One flat day-multiplier
	// on every worked and traveled hour.
	KindSpecial DayKind = "special"

	// KindOrdinary: a regular worked weekday.
	KindOrdinary DayKind = "ordinary"
)

// ResolveDayKind classifies the entry. Exhaustive: every entry maps to
// exactly one kind.
func ResolveDayKind(entry WorkEntry, facts DayFacts) DayKind {
	if entry.DayType.IsFixed() {
		return KindFixed
	}
	if facts.IsSpecialDay {
		return KindSpecial
	}
	return KindOrdinary
}

// =============================================================================
// STANDBY ACTIVATION - One pure function, used everywhere
// =============================================================================

// ResolveStandbyActive decides whether the entry's date is an active standby
// day: manual activation wins, then manual deactivation, then the
// settings-level calendar selection.
func ResolveStandbyActive(entry WorkEntry, s Settings, date time.Time) bool {
	switch entry.StandbyOverride {
	case TriActivated:
		return true
	case TriDeactivated:
		return false
	}
	return s.Standby.Calendar[date.Format("2006-01-02")]
}
