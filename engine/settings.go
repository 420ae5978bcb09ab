/*
settings.go - Rate schedule, policies and documented defaults

PURPOSE:
  Holds every configurable knob of the labor-agreement rate schedule and the
  canonical default for each of them. Callers merge partial settings against
  the defaults at the boundary; the engine never keeps hidden global state.

MERGE RULE:
  Merge(s) fills every zero-valued field and every absent nested section with
  its documented default. It is idempotent, so Compute applies it defensively
  on each call: the engine must not fail when a nested section is missing.

DOCUMENTED DEFAULTS (currency units):
  Base hourly rate   16.41
  Daily rate        109.19
  Standby indemnity   4.22 weekday-16h / 7.03 weekday-24h / 10.63 rest day
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// TRAVEL POLICY - Mutually exclusive travel computation policies
// =============================================================================

type TravelPolicy string

const (
	// TravelPolicyDefault folds excess hours into ordinary pay at base rate
	// and delegates travel classification to the external/internal split for
	// allowance purposes.
	TravelPolicyDefault TravelPolicy = "default"

	// TravelPolicySeparate always pays travel at base x travel rate; work
	// hours alone decide the daily-rate threshold.
	TravelPolicySeparate TravelPolicy = "separate"

	// TravelPolicyExcessAsTravel sums work+travel; hours past the standard
	// day are paid at the travel rate.
	TravelPolicyExcessAsTravel TravelPolicy = "excess_as_travel"

	// TravelPolicyExcessAsOvertime sums work+travel; hours past the standard
	// day are paid at the overtime multiplier.
	TravelPolicyExcessAsOvertime TravelPolicy = "excess_as_overtime"
)

// =============================================================================
// RATE TABLES
// =============================================================================

// RateTable is the ordinary-path multiplier table, keyed by the overtime /
// evening / night / Saturday / holiday axes the agreement distinguishes.
type RateTable struct {
	Overtime        decimal.Decimal // day overtime
	OvertimeNight   decimal.Decimal
	OvertimeHoliday decimal.Decimal // also Sunday
	Evening         decimal.Decimal // until 22:00
	Night           decimal.Decimal // after 22:00
	NightHoliday    decimal.Decimal
	Holiday         decimal.Decimal // also Sunday
	Saturday        decimal.Decimal
}

// StandbyRateTable prices intervention minutes by time band. Work minutes
// have an overtime variant per band; travel minutes are priced by time of
// day only and have no overtime variant at all.
type StandbyRateTable struct {
	Work         map[StandbyBand]decimal.Decimal
	WorkOvertime map[StandbyBand]decimal.Decimal

	TravelOrdinary decimal.Decimal
	TravelEvening  decimal.Decimal
	TravelNight    decimal.Decimal
}

// =============================================================================
// NESTED SETTINGS SECTIONS
// =============================================================================

type StandbyAllowanceType string

const (
	Standby16h StandbyAllowanceType = "16h"
	Standby24h StandbyAllowanceType = "24h"
)

type StandbySettings struct {
	Enabled       bool
	AllowanceType StandbyAllowanceType

	// Custom indemnity amounts; zero means "use the documented default".
	CustomWeekday16 decimal.Decimal
	CustomWeekday24 decimal.Decimal
	CustomRestDay   decimal.Decimal

	// Saturday counts as a rest day for classification and indemnity.
	SaturdayAsRest bool

	// Calendar of dates ("2006-01-02") selected as standby days. Per-entry
	// manual overrides always beat this map.
	Calendar map[string]bool
}

type TravelAllowanceSettings struct {
	Enabled     bool
	DailyAmount decimal.Decimal

	// Computation-mode flags (the original exposes these as switches).
	Always               bool
	FullDayOnly          bool
	WithTravelOnly       bool
	AlsoOnStandby        bool
	ProportionalCCNL     bool // highest priority amount rule
	HalfAllowanceHalfDay bool
	FullAllowanceHalfDay bool

	ApplyOnSpecialDays bool
}

type MealSettings struct {
	LunchVoucherAmount  decimal.Decimal
	DinnerVoucherAmount decimal.Decimal

	// Cash paid in addition to a voucher (additive, not exclusive).
	LunchCashAmount  decimal.Decimal
	DinnerCashAmount decimal.Decimal

	// Infer vouchers from inter-shift breaks overlapping the meal windows.
	AutoFromBreaks bool

	LunchWindowStart  string
	LunchWindowEnd    string
	DinnerWindowStart string
	DinnerWindowEnd   string
}

type NetSettings struct {
	// Empirical net/gross ratio derived from a real payslip. When positive
	// it beats every other method.
	PayslipNetRatio decimal.Decimal

	// Detailed progressive-bracket model (contributions + income brackets).
	UseBrackets bool

	// Flat quick-rate fallback: deductions = gross x rate.
	QuickDeductionRate decimal.Decimal
}

// =============================================================================
// SETTINGS
// =============================================================================

type Settings struct {
	BaseHourlyRate   decimal.Decimal
	DailyRate        decimal.Decimal
	StandardDayHours float64

	Rates        RateTable
	StandbyRates StandbyRateTable

	// Travel hours pay base x this rate under the separate/excess policies.
	TravelCompensationRate decimal.Decimal
	TravelPolicy           TravelPolicy

	Standby         StandbySettings
	TravelAllowance TravelAllowanceSettings
	Meals           MealSettings
	Net             NetSettings
}

// Documented standby indemnity defaults.
var (
	DefaultIndemnityWeekday16 = decimal.NewFromFloat(4.22)
	DefaultIndemnityWeekday24 = decimal.NewFromFloat(7.03)
	DefaultIndemnityRestDay   = decimal.NewFromFloat(10.63)
)

// DefaultSettings returns the canonical default rate schedule. Every value
// here is a documented default, not an arbitrary zero.
func DefaultSettings() Settings {
	return Settings{
		BaseHourlyRate:   decimal.NewFromFloat(16.41),
		DailyRate:        decimal.NewFromFloat(109.19),
		StandardDayHours: 8,

		Rates: RateTable{
			Overtime:        decimal.NewFromFloat(1.15),
			OvertimeNight:   decimal.NewFromFloat(1.35),
			OvertimeHoliday: decimal.NewFromFloat(1.50),
			Evening:         decimal.NewFromFloat(1.20),
			Night:           decimal.NewFromFloat(1.25),
			NightHoliday:    decimal.NewFromFloat(1.35),
			Holiday:         decimal.NewFromFloat(1.30),
			Saturday:        decimal.NewFromFloat(1.25),
		},

		StandbyRates: StandbyRateTable{
			Work: map[StandbyBand]decimal.Decimal{
				BandOrdinary:      decimal.NewFromInt(1),
				BandEvening:       decimal.NewFromFloat(1.20),
				BandNight:         decimal.NewFromFloat(1.25),
				BandSaturday:      decimal.NewFromFloat(1.25),
				BandSaturdayNight: decimal.NewFromFloat(1.30),
				BandHoliday:       decimal.NewFromFloat(1.30),
				BandNightHoliday:  decimal.NewFromFloat(1.35),
			},
			WorkOvertime: map[StandbyBand]decimal.Decimal{
				BandOrdinary:      decimal.NewFromFloat(1.15),
				BandEvening:       decimal.NewFromFloat(1.30),
				BandNight:         decimal.NewFromFloat(1.35),
				BandSaturday:      decimal.NewFromFloat(1.40),
				BandSaturdayNight: decimal.NewFromFloat(1.45),
				BandHoliday:       decimal.NewFromFloat(1.50),
				BandNightHoliday:  decimal.NewFromFloat(1.55),
			},
			TravelOrdinary: decimal.NewFromInt(1),
			TravelEvening:  decimal.NewFromFloat(1.25),
			TravelNight:    decimal.NewFromFloat(1.25),
		},

		TravelCompensationRate: decimal.NewFromInt(1),
		TravelPolicy:           TravelPolicyDefault,

		Standby: StandbySettings{
			Enabled:       true,
			AllowanceType: Standby16h,
			Calendar:      map[string]bool{},
		},

		TravelAllowance: TravelAllowanceSettings{
			Enabled:     false,
			DailyAmount: decimal.NewFromFloat(46.48),
		},

		Meals: MealSettings{
			LunchVoucherAmount:  decimal.NewFromFloat(8.00),
			DinnerVoucherAmount: decimal.NewFromFloat(8.00),
			AutoFromBreaks:      false,
			LunchWindowStart:    "12:00",
			LunchWindowEnd:      "14:30",
			DinnerWindowStart:   "19:00",
			DinnerWindowEnd:     "21:30",
		},

		Net: NetSettings{
			UseBrackets:        true,
			QuickDeductionRate: decimal.NewFromFloat(0.25),
		},
	}
}

// Merge fills every zero-valued field of s with its documented default.
// Absent nested sections therefore never fail a computation. Idempotent.
func Merge(s Settings) Settings {
	d := DefaultSettings()

	if s.BaseHourlyRate.IsZero() {
		s.BaseHourlyRate = d.BaseHourlyRate
	}
	if s.DailyRate.IsZero() {
		s.DailyRate = d.DailyRate
	}
	if s.StandardDayHours <= 0 {
		s.StandardDayHours = d.StandardDayHours
	}
	if s.TravelCompensationRate.IsZero() {
		s.TravelCompensationRate = d.TravelCompensationRate
	}
	switch s.TravelPolicy {
	case TravelPolicySeparate, TravelPolicyExcessAsTravel, TravelPolicyExcessAsOvertime, TravelPolicyDefault:
	default:
		s.TravelPolicy = TravelPolicyDefault
	}

	s.Rates = mergeRateTable(s.Rates, d.Rates)
	s.StandbyRates = mergeStandbyRates(s.StandbyRates, d.StandbyRates)

	if s.Standby.AllowanceType != Standby24h {
		s.Standby.AllowanceType = Standby16h
	}
	if s.Standby.Calendar == nil {
		s.Standby.Calendar = map[string]bool{}
	}

	if s.TravelAllowance.DailyAmount.IsZero() {
		s.TravelAllowance.DailyAmount = d.TravelAllowance.DailyAmount
	}

	m := &s.Meals
	dm := d.Meals
	if m.LunchVoucherAmount.IsZero() {
		m.LunchVoucherAmount = dm.LunchVoucherAmount
	}
	if m.DinnerVoucherAmount.IsZero() {
		m.DinnerVoucherAmount = dm.DinnerVoucherAmount
	}
	if m.LunchWindowStart == "" {
		m.LunchWindowStart = dm.LunchWindowStart
	}
	if m.LunchWindowEnd == "" {
		m.LunchWindowEnd = dm.LunchWindowEnd
	}
	if m.DinnerWindowStart == "" {
		m.DinnerWindowStart = dm.DinnerWindowStart
	}
	if m.DinnerWindowEnd == "" {
		m.DinnerWindowEnd = dm.DinnerWindowEnd
	}

	if s.Net.QuickDeductionRate.IsZero() {
		s.Net.QuickDeductionRate = d.Net.QuickDeductionRate
	}

	return s
}

func mergeRateTable(t, d RateTable) RateTable {
	pick := func(v, def decimal.Decimal) decimal.Decimal {
		if v.IsZero() {
			return def
		}
		return v
	}
	return RateTable{
		Overtime:        pick(t.Overtime, d.Overtime),
		OvertimeNight:   pick(t.OvertimeNight, d.OvertimeNight),
		OvertimeHoliday: pick(t.OvertimeHoliday, d.OvertimeHoliday),
		Evening:         pick(t.Evening, d.Evening),
		Night:           pick(t.Night, d.Night),
		NightHoliday:    pick(t.NightHoliday, d.NightHoliday),
		Holiday:         pick(t.Holiday, d.Holiday),
		Saturday:        pick(t.Saturday, d.Saturday),
	}
}

func mergeStandbyRates(t, d StandbyRateTable) StandbyRateTable {
	// Fresh maps: Merge must not mutate the caller's settings.
	t.Work = mergeBandMap(t.Work, d.Work)
	t.WorkOvertime = mergeBandMap(t.WorkOvertime, d.WorkOvertime)
	if t.TravelOrdinary.IsZero() {
		t.TravelOrdinary = d.TravelOrdinary
	}
	if t.TravelEvening.IsZero() {
		t.TravelEvening = d.TravelEvening
	}
	if t.TravelNight.IsZero() {
		t.TravelNight = d.TravelNight
	}
	return t
}

func mergeBandMap(m, d map[StandbyBand]decimal.Decimal) map[StandbyBand]decimal.Decimal {
	out := make(map[StandbyBand]decimal.Decimal, len(d))
	for band, def := range d {
		if v, ok := m[band]; ok && !v.IsZero() {
			out[band] = v
			continue
		}
		out[band] = def
	}
	return out
}
