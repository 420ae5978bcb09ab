/*
Package engine implements the payroll calculation core.

PURPOSE:
  Computes a fully itemized daily earnings breakdown from a recorded work
  day and a labor-agreement rate schedule: ordinary pay, overtime, travel
  pay, on-call ("standby") intervention pay, daily indemnities and
  meal/travel allowances.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkEntry: one recorded day (shifts, interventions, flags)
  - Shift: a travel-out / work / work / travel-return block of clock pairs
  - Breakdown: the itemized output, freshly allocated on every call
  - Tristate: manual override flags (activated / deactivated / unset)

DESIGN PRINCIPLES:
  1. Purity: Compute is (WorkEntry, Settings) -> *Breakdown with no I/O,
     no shared state and no mutation of its inputs.
  2. Precision: money uses decimal.Decimal, never float64.
  3. Tolerance: missing clock fields contribute zero, unknown enum values
     fall back to safe defaults. The engine never panics on bad input.
  4. Determinism: identical inputs yield a deep-equal Breakdown.

SEE ALSO:
  - settings.go: rate schedule and documented defaults
  - earnings.go: the central computation
  - record/normalize.go: the boundary that builds WorkEntry values
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY TYPE - What kind of day the entry records
// =============================================================================

type DayType string

const (
	DayWorkday          DayType = "workday"
	DayVacation         DayType = "vacation"
	DaySick             DayType = "sick"
	DayPermit           DayType = "permit"
	DayCompensatoryRest DayType = "compensatory_rest"
)

// ParseDayType maps a stored value onto a known day type.
// Unrecognized values fall back to DayWorkday rather than erroring.
func ParseDayType(s string) DayType {
	switch DayType(s) {
	case DayVacation, DaySick, DayPermit, DayCompensatoryRest, DayWorkday:
		return DayType(s)
	default:
		return DayWorkday
	}
}

// IsFixed reports whether the day type short-circuits to a flat daily rate.
func (d DayType) IsFixed() bool { return d != DayWorkday }

// CompletionType tops up a short working day to a full one.
type CompletionType string

const (
	CompletionNone     CompletionType = ""
	CompletionVacation CompletionType = "vacation"
	CompletionPermit   CompletionType = "permit"
	CompletionSick     CompletionType = "sick"
	CompletionRest     CompletionType = "rest"
)

// =============================================================================
// TRISTATE - Manual override flags
// =============================================================================

// Tristate models a per-entry manual switch that may be left unset.
// An explicit value always beats whatever the settings would decide.
type Tristate int

const (
	TriUnset Tristate = iota
	TriActivated
	TriDeactivated
)

// =============================================================================
// SHIFT - One block of clock pairs ("HH:MM", empty when unrecorded)
// =============================================================================

// Shift is one travel/work block. StandbyIntervention records share the
// identical shape, so interventions reuse this type.
type Shift struct {
	TravelOutStart    string
	TravelOutEnd      string
	Work1Start        string
	Work1End          string
	Work2Start        string
	Work2End          string
	TravelReturnStart string
	TravelReturnEnd   string
}

// IsZero reports whether no clock field is recorded.
func (s Shift) IsZero() bool {
	return s.TravelOutStart == "" && s.TravelOutEnd == "" &&
		s.Work1Start == "" && s.Work1End == "" &&
		s.Work2Start == "" && s.Work2End == "" &&
		s.TravelReturnStart == "" && s.TravelReturnEnd == ""
}

// =============================================================================
// WORK ENTRY - One recorded day (input, never mutated by the engine)
// =============================================================================

type WorkEntry struct {
	Date    time.Time
	DayType DayType

	// Shift list; the first element is the primary shift. When the list is
	// absent entirely, Legacy carries the flat single-shift fields older
	// records stored.
	Shifts []Shift
	Legacy Shift

	// Standby interventions, same shape and same legacy fallback.
	Interventions      []Shift
	LegacyIntervention Shift

	// Manual overrides. Explicit values beat the settings-level calendar
	// and the global travel-allowance switch respectively.
	StandbyOverride         Tristate
	TravelAllowanceOverride Tristate

	// Per-entry travel-allowance fraction: 0.5 or 1.0 (0 means unset -> 1.0).
	TravelAllowancePercent float64

	LunchVoucher  bool
	DinnerVoucher bool
	LunchCash     decimal.Decimal
	DinnerCash    decimal.Decimal

	CompletionType CompletionType
}

// =============================================================================
// STANDBY TIME BANDS
// =============================================================================

// StandbyBand classifies each intervention minute by absolute hour and day
// classification. Band keys are stable output-contract names.
type StandbyBand string

const (
	BandOrdinary      StandbyBand = "ordinary"       // 06:00-20:00
	BandEvening       StandbyBand = "evening"        // 20:00-22:00
	BandNight         StandbyBand = "night"          // 22:00-06:00
	BandSaturday      StandbyBand = "saturday"
	BandSaturdayNight StandbyBand = "saturday_night"
	BandHoliday       StandbyBand = "holiday"
	BandNightHoliday  StandbyBand = "night_holiday"
)

// AllStandbyBands lists every band key in a stable order.
var AllStandbyBands = []StandbyBand{
	BandOrdinary, BandEvening, BandNight,
	BandSaturday, BandSaturdayNight,
	BandHoliday, BandNightHoliday,
}

// =============================================================================
// BREAKDOWN - Itemized output, freshly allocated per Compute call
// =============================================================================

// OrdinaryBreakdown itemizes the non-standby part of the day.
// Category fields are a stable contract: presentation collaborators address
// them individually by name.
type OrdinaryBreakdown struct {
	WorkedHours   float64
	OvertimeHours float64
	TravelHours   float64
	NightHours    float64

	RegularEarnings  decimal.Decimal
	OvertimeEarnings decimal.Decimal
	TravelEarnings   decimal.Decimal
	BonusEarnings    decimal.Decimal

	Total decimal.Decimal
}

// StandbyBreakdown itemizes on-call intervention pay by time band.
type StandbyBreakdown struct {
	WorkHours   map[StandbyBand]float64
	TravelHours map[StandbyBand]float64
	Earnings    map[StandbyBand]decimal.Decimal

	DailyIndemnity decimal.Decimal
	TotalEarnings  decimal.Decimal
}

// Allowances groups the flat per-day amounts. Meal is tracked here but by
// design excluded from the taxable TotalEarnings.
type Allowances struct {
	Travel  decimal.Decimal
	Meal    decimal.Decimal
	Standby decimal.Decimal
}

// DayDetails carries the calendar facts and partial-day info the breakdown
// was computed under.
type DayDetails struct {
	Facts          DayFacts
	Kind           DayKind
	CompletionType CompletionType
	DeemedFullDay  bool    // completion type topped a short day up to full rate
	ShortfallHours float64 // hours missing from the standard day, 0 when complete
}

type Breakdown struct {
	Ordinary   OrdinaryBreakdown
	Standby    StandbyBreakdown
	Allowances Allowances

	// TotalEarnings == Ordinary.Total + Allowances.Travel + Standby.TotalEarnings.
	// Meal allowance is excluded by design.
	TotalEarnings decimal.Decimal

	Details DayDetails
}

func newBreakdown() *Breakdown {
	b := &Breakdown{}
	b.Standby.WorkHours = make(map[StandbyBand]float64)
	b.Standby.TravelHours = make(map[StandbyBand]float64)
	b.Standby.Earnings = make(map[StandbyBand]decimal.Decimal)
	return b
}
