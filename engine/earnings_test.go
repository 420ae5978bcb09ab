package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func weekdayDate() time.Time { return time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC) } // Wednesday
func sundayDate() time.Time  { return time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC) }
func saturdayDate() time.Time {
	return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
}

func fullDayEntry(date time.Time) WorkEntry {
	return WorkEntry{
		Date:    date,
		DayType: DayWorkday,
		Shifts: []Shift{{
			Work1Start: "08:00", Work1End: "12:00",
			Work2Start: "13:00", Work2End: "17:00",
		}},
	}
}

func workEntry(date time.Time, start, end string) WorkEntry {
	return WorkEntry{
		Date:    date,
		DayType: DayWorkday,
		Shifts:  []Shift{{Work1Start: start, Work1End: end}},
	}
}

func moneyEq(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	require.InDelta(t, want, got.InexactFloat64(), 0.005, "got %s", got)
}

// =============================================================================
// FIXED DAYS
// =============================================================================

func TestFixedDayPaysFlatDailyRate(t *testing.T) {
	eng := New(nil)
	s := DefaultSettings()

	for _, dayType := range []DayType{DayVacation, DaySick, DayPermit, DayCompensatoryRest} {
		// GIVEN: a non-workday entry that even carries recorded shifts
		entry := fullDayEntry(weekdayDate())
		entry.DayType = dayType
		entry.LunchVoucher = true

		b := eng.Compute(entry, s)

		// THEN: flat daily rate, every itemized category zero
		require.True(t, b.TotalEarnings.Equal(s.DailyRate), "%s: total %s", dayType, b.TotalEarnings)
		require.Zero(t, b.Ordinary.WorkedHours)
		require.Zero(t, b.Ordinary.OvertimeHours)
		require.True(t, b.Ordinary.RegularEarnings.IsZero())
		require.True(t, b.Standby.TotalEarnings.IsZero())
		require.True(t, b.Allowances.Travel.IsZero())
		require.True(t, b.Allowances.Meal.IsZero())
		require.Equal(t, KindFixed, b.Details.Kind)
	}
}

// =============================================================================
// ORDINARY WEEKDAYS
// =============================================================================

func TestStandardEightHourDay(t *testing.T) {
	// GIVEN: weekday, 08:00-12:00 and 13:00-17:00, no travel, no standby
	eng := New(nil)
	b := eng.Compute(fullDayEntry(weekdayDate()), DefaultSettings())

	// THEN: exactly the daily rate, no overtime
	moneyEq(t, 109.19, b.Ordinary.Total)
	require.Zero(t, b.Ordinary.OvertimeHours)
	moneyEq(t, 109.19, b.TotalEarnings)
}

func TestShortDayPaysProportionalDailyRate(t *testing.T) {
	eng := New(nil)
	b := eng.Compute(workEntry(weekdayDate(), "08:00", "12:00"), DefaultSettings())

	// 4/8 of the daily rate
	moneyEq(t, 54.595, b.Ordinary.Total)
	require.InDelta(t, 4.0, b.Details.ShortfallHours, 1e-9)
	require.False(t, b.Details.DeemedFullDay)
}

func TestCompletionTypeForcesFullDailyRate(t *testing.T) {
	// GIVEN: a 4h day explicitly completed with vacation hours
	entry := workEntry(weekdayDate(), "08:00", "12:00")
	entry.CompletionType = CompletionVacation

	b := New(nil).Compute(entry, DefaultSettings())

	moneyEq(t, 109.19, b.Ordinary.Total)
	require.True(t, b.Details.DeemedFullDay)
}

func TestWorkedHoursMonotonicity(t *testing.T) {
	// On a short ordinary day, more work never means less pay.
	eng := New(nil)
	s := DefaultSettings()

	prev := decimal.Zero
	for _, end := range []string{"11:00", "12:00", "13:00", "14:00"} {
		b := eng.Compute(workEntry(weekdayDate(), "08:00", end), s)
		require.True(t, b.Ordinary.Total.GreaterThanOrEqual(prev),
			"total decreased at end %s: %s < %s", end, b.Ordinary.Total, prev)
		prev = b.Ordinary.Total
	}
}

func TestNightWorkBonus(t *testing.T) {
	// GIVEN: 20:00-00:00 on a weekday; two of the four hours are night
	b := New(nil).Compute(workEntry(weekdayDate(), "20:00", "00:00"), DefaultSettings())

	require.InDelta(t, 2.0, b.Ordinary.NightHours, 1e-9)
	// bonus = 2h x 16.41 x (1.25 - 1)
	moneyEq(t, 8.205, b.Ordinary.BonusEarnings)
	// proportional half day + bonus
	moneyEq(t, 54.595+8.205, b.Ordinary.Total)
}

// =============================================================================
// TRAVEL POLICIES
// =============================================================================

func travelEntry(workEnd string) WorkEntry {
	return WorkEntry{
		Date:    weekdayDate(),
		DayType: DayWorkday,
		Shifts: []Shift{{
			TravelOutStart: "06:00", TravelOutEnd: "07:00",
			Work1Start: "07:00", Work1End: workEnd,
			TravelReturnStart: workEnd, TravelReturnEnd: addHour(workEnd),
		}},
	}
}

func addHour(clock string) string {
	m, _ := ParseClock(clock)
	m = (m + 60) % MinutesPerDay
	return time.Date(2000, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}

func TestTravelPolicySeparate(t *testing.T) {
	s := DefaultSettings()
	s.TravelPolicy = TravelPolicySeparate

	// work 07:00-16:00 (9h), travel 2h
	b := New(nil).Compute(travelEntry("16:00"), s)

	moneyEq(t, 109.19, b.Ordinary.RegularEarnings)
	require.InDelta(t, 1.0, b.Ordinary.OvertimeHours, 1e-9)
	moneyEq(t, 18.8715, b.Ordinary.OvertimeEarnings) // 1h x 16.41 x 1.15
	moneyEq(t, 32.82, b.Ordinary.TravelEarnings)     // 2h x 16.41 x 1.0
}

func TestTravelPolicyExcessAsTravel(t *testing.T) {
	s := DefaultSettings()
	s.TravelPolicy = TravelPolicyExcessAsTravel

	// work 7h + travel 2h = 9h, 1h excess at travel rate
	b := New(nil).Compute(travelEntry("14:00"), s)

	moneyEq(t, 109.19, b.Ordinary.RegularEarnings)
	moneyEq(t, 16.41, b.Ordinary.TravelEarnings)
	require.Zero(t, b.Ordinary.OvertimeHours)
}

func TestTravelPolicyExcessAsOvertime(t *testing.T) {
	s := DefaultSettings()
	s.TravelPolicy = TravelPolicyExcessAsOvertime

	b := New(nil).Compute(travelEntry("14:00"), s)

	moneyEq(t, 109.19, b.Ordinary.RegularEarnings)
	require.InDelta(t, 1.0, b.Ordinary.OvertimeHours, 1e-9)
	moneyEq(t, 18.8715, b.Ordinary.OvertimeEarnings)
	require.True(t, b.Ordinary.TravelEarnings.IsZero())
}

func TestTravelPolicyDefaultFoldsExcessAtBaseRate(t *testing.T) {
	b := New(nil).Compute(travelEntry("14:00"), DefaultSettings())

	// daily rate + 1h excess at plain base rate
	moneyEq(t, 109.19+16.41, b.Ordinary.RegularEarnings)
	require.True(t, b.Ordinary.OvertimeEarnings.IsZero())
	require.True(t, b.Ordinary.TravelEarnings.IsZero())
}

// =============================================================================
// SPECIAL DAYS
// =============================================================================

func TestSundayFlatMultiplier(t *testing.T) {
	// GIVEN: Sunday, work 08:00-14:00 (6h), holiday multiplier 1.3
	b := New(nil).Compute(workEntry(sundayDate(), "08:00", "14:00"), DefaultSettings())

	// 6 x 16.41 x 1.3 ~= 128.00
	moneyEq(t, 128.00, b.Ordinary.Total)
	require.Equal(t, KindSpecial, b.Details.Kind)
}

func TestSpecialDayIgnoresEightHourThreshold(t *testing.T) {
	// GIVEN: a 10h Saturday; no overtime split, no daily-rate lump
	b := New(nil).Compute(workEntry(saturdayDate(), "07:00", "17:00"), DefaultSettings())

	// 10 x 16.41 x 1.25
	moneyEq(t, 205.125, b.Ordinary.Total)
	require.Zero(t, b.Ordinary.OvertimeHours)
}

// =============================================================================
// STANDBY INTERVENTIONS
// =============================================================================

func TestStandbyNightPromotionAfterFullDay(t *testing.T) {
	// GIVEN: a weekday with 8 ordinary hours and a 23:00-01:00 intervention
	entry := fullDayEntry(weekdayDate())
	entry.Interventions = []Shift{{Work1Start: "23:00", Work1End: "01:00"}}

	b := New(nil).Compute(entry, DefaultSettings())

	// THEN: 2h in the night band, promoted to the overtime variant (1.35)
	require.InDelta(t, 2.0, b.Standby.WorkHours[BandNight], 1e-9)
	moneyEq(t, 44.307, b.Standby.Earnings[BandNight]) // 2 x 16.41 x 1.35
}

func TestStandbyNightWithoutPromotion(t *testing.T) {
	// GIVEN: the same intervention with only 4 ordinary hours
	entry := workEntry(weekdayDate(), "08:00", "12:00")
	entry.Interventions = []Shift{{Work1Start: "23:00", Work1End: "01:00"}}

	b := New(nil).Compute(entry, DefaultSettings())

	moneyEq(t, 41.025, b.Standby.Earnings[BandNight]) // 2 x 16.41 x 1.25
}

func TestStandbyTravelNeverPromoted(t *testing.T) {
	// GIVEN: a full 8h ordinary day and a night travel segment
	entry := fullDayEntry(weekdayDate())
	entry.Interventions = []Shift{{TravelOutStart: "23:00", TravelOutEnd: "01:00"}}

	b := New(nil).Compute(entry, DefaultSettings())

	// THEN: plain night travel multiplier, promotion never applies
	require.InDelta(t, 2.0, b.Standby.TravelHours[BandNight], 1e-9)
	moneyEq(t, 41.025, b.Standby.Earnings[BandNight]) // 2 x 16.41 x 1.25
}

func TestStandbyIndemnityPrecedence(t *testing.T) {
	eng := New(nil)

	// Calendar-selected but manually deactivated: no indemnity.
	s := DefaultSettings()
	s.Standby.Calendar["2025-03-12"] = true
	entry := fullDayEntry(weekdayDate())
	entry.StandbyOverride = TriDeactivated
	b := eng.Compute(entry, s)
	require.True(t, b.Standby.DailyIndemnity.IsZero())

	// Not calendar-selected but manually activated: indemnity paid.
	entry.StandbyOverride = TriActivated
	b = eng.Compute(entry, DefaultSettings())
	moneyEq(t, 4.22, b.Standby.DailyIndemnity)
	moneyEq(t, 4.22, b.Allowances.Standby)
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestTotalExcludesMealAllowance(t *testing.T) {
	entry := fullDayEntry(weekdayDate())
	entry.LunchVoucher = true
	entry.StandbyOverride = TriActivated
	entry.Interventions = []Shift{{Work1Start: "21:00", Work1End: "22:00"}}

	s := DefaultSettings()
	s.TravelAllowance.Enabled = true
	s.TravelAllowance.Always = true

	b := New(nil).Compute(entry, s)

	require.True(t, b.Allowances.Meal.IsPositive())
	want := b.Ordinary.Total.Add(b.Allowances.Travel).Add(b.Standby.TotalEarnings)
	require.True(t, b.TotalEarnings.Equal(want),
		"total %s != ordinary %s + travel %s + standby %s",
		b.TotalEarnings, b.Ordinary.Total, b.Allowances.Travel, b.Standby.TotalEarnings)
}

func TestComputeIsDeterministic(t *testing.T) {
	entry := fullDayEntry(weekdayDate())
	entry.Interventions = []Shift{{Work1Start: "23:00", Work1End: "01:00"}}
	entry.LunchVoucher = true
	s := DefaultSettings()
	s.TravelAllowance.Enabled = true

	eng := New(nil)
	first := eng.Compute(entry, s)
	second := eng.Compute(entry, s)

	require.Equal(t, first, second)
}

func TestAllHoursNonNegative(t *testing.T) {
	// Malformed and missing clocks contribute zero, never negative values.
	entry := WorkEntry{
		Date:    weekdayDate(),
		DayType: DayWorkday,
		Shifts: []Shift{{
			Work1Start: "garbage", Work1End: "12:00",
			Work2Start: "13:00", // missing end
		}},
		Interventions: []Shift{{Work1Start: "", Work1End: ""}},
	}

	b := New(nil).Compute(entry, DefaultSettings())

	require.GreaterOrEqual(t, b.Ordinary.WorkedHours, 0.0)
	require.GreaterOrEqual(t, b.Ordinary.TravelHours, 0.0)
	for band, h := range b.Standby.WorkHours {
		require.GreaterOrEqual(t, h, 0.0, "band %s", band)
	}
}

func TestComputeWithEmptySettings(t *testing.T) {
	// A zero Settings value must not fail: defaults are merged per call.
	b := New(nil).Compute(fullDayEntry(weekdayDate()), Settings{})
	moneyEq(t, 109.19, b.Ordinary.Total)
}
