/*
rates.go - Pay multiplier resolution

PURPOSE:
  Resolves the correct pay multiplier for ordinary hours (overtime / night /
  holiday / Sunday axes, strict precedence) and for standby intervention
  minutes (7-way time-band classification).

ORDINARY PRECEDENCE (highest wins):
  overtime+night > overtime+(holiday|Sunday) > overtime
  > night+holiday > night > (holiday|Sunday) > base rate

STANDBY BANDS:
  Each intervention minute lands in exactly one band by absolute hour and
  day classification: ordinary 06-20, evening 20-22, night 22-06, and the
  Saturday / Saturday-night / holiday / night-holiday day variants.

PROMOTION RULE:
  Standby WORK minutes are promoted to the band's overtime variant once the
  day's ordinary (non-standby) hours have reached the standard day.
  Standby TRAVEL minutes are priced by time of day only and are NEVER
  promoted, regardless of how many ordinary hours the day carries.
*/
package engine

import "github.com/shopspring/decimal"

var decimalOne = decimal.NewFromInt(1)

// OrdinaryMultiplier resolves the ordinary-path multiplier under the strict
// precedence chain. Sunday counts as holiday for rate purposes.
func OrdinaryMultiplier(rt RateTable, overtime, night, holiday, sunday bool) decimal.Decimal {
	festive := holiday || sunday
	switch {
	case overtime && night:
		return rt.OvertimeNight
	case overtime && festive:
		return rt.OvertimeHoliday
	case overtime:
		return rt.Overtime
	case night && festive:
		return rt.NightHoliday
	case night:
		return rt.Night
	case festive:
		return rt.Holiday
	default:
		return decimalOne
	}
}

// =============================================================================
// STANDBY BAND CLASSIFICATION
// =============================================================================

const (
	bandDayStart     = 6 * 60  // 06:00
	bandEveningStart = 20 * 60 // 20:00
	bandNightStart   = 22 * 60 // 22:00
)

// isNightMinute reports whether a time-of-day minute falls in 22:00-06:00.
func isNightMinute(tod int) bool { return tod >= bandNightStart || tod < bandDayStart }

// ClassifyStandbyMinute places a time-of-day minute into its band, given the
// day classification of the entry's date.
func ClassifyStandbyMinute(tod int, facts DayFacts) StandbyBand {
	night := isNightMinute(tod)
	switch {
	case facts.IsSunday || facts.IsHoliday:
		if night {
			return BandNightHoliday
		}
		return BandHoliday
	case facts.IsSaturday:
		if night {
			return BandSaturdayNight
		}
		return BandSaturday
	case night:
		return BandNight
	case tod >= bandEveningStart:
		return BandEvening
	default:
		return BandOrdinary
	}
}

// TravelBand classifies a standby travel minute by time of day only; the day
// classification is deliberately ignored.
func TravelBand(tod int) StandbyBand {
	switch {
	case isNightMinute(tod):
		return BandNight
	case tod >= bandEveningStart:
		return BandEvening
	default:
		return BandOrdinary
	}
}

// StandbyWorkMultiplier prices a standby work band, promoted to the overtime
// variant when the day's ordinary hours already filled the standard day.
func StandbyWorkMultiplier(rt StandbyRateTable, band StandbyBand, overtime bool) decimal.Decimal {
	table := rt.Work
	if overtime {
		table = rt.WorkOvertime
	}
	if m, ok := table[band]; ok {
		return m
	}
	return decimalOne
}

// StandbyTravelMultiplier prices a standby travel band. Only the three
// time-of-day bands are reachable here.
func StandbyTravelMultiplier(rt StandbyRateTable, band StandbyBand) decimal.Decimal {
	switch band {
	case BandEvening:
		return rt.TravelEvening
	case BandNight:
		return rt.TravelNight
	default:
		return rt.TravelOrdinary
	}
}

// bandBoundaries are the time-of-day minutes where a band can change.
var bandBoundaries = []int{bandDayStart, bandEveningStart, bandNightStart, MinutesPerDay}

// splitSpanByBand walks a span and reports the minutes falling in each
// band-homogeneous segment. Spans wrapping past midnight keep the entry
// day's classification for the post-midnight minutes.
func splitSpanByBand(sp clockSpan, classify func(tod int) StandbyBand, visit func(band StandbyBand, minutes int)) {
	t := sp.start
	for t < sp.end {
		tod := t % MinutesPerDay
		next := MinutesPerDay
		for _, b := range bandBoundaries {
			if b > tod {
				next = b
				break
			}
		}
		segEnd := min(sp.end, t+(next-tod))
		visit(classify(tod), segEnd-t)
		t = segEnd
	}
}
