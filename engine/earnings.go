/*
earnings.go - The central earnings computation

PURPOSE:
  Orchestrates classification, aggregation, rate resolution and allowance
  resolution into the per-day Breakdown. Pure: no I/O, no shared state,
  deterministic for identical inputs.

BRANCHES (one per entry, resolved once):
  Fixed day     day type != workday: flat daily rate, all itemization zero.
  Special day   worked Saturday/Sunday/holiday: one flat day-multiplier on
                every worked and traveled hour; no 8h split, no daily-rate
                lump.
  Ordinary day  the configured travel policy decides how travel and excess
                hours are paid; an explicit completion type always tops a
                short day up to the full daily rate.

  Standby interventions are always computed on working days; the flat daily
  indemnity is added only when ResolveStandbyActive says the day is an
  active standby day.
*/
package engine

import "github.com/shopspring/decimal"

// Engine computes daily earnings breakdowns. It holds only the holiday
// calendar collaborator; all other inputs arrive per call.
type Engine struct {
	calendar HolidayCalendar
}

// New creates an engine. A nil calendar means no holidays.
func New(calendar HolidayCalendar) *Engine {
	if calendar == nil {
		calendar = NoHolidays{}
	}
	return &Engine{calendar: calendar}
}

// Compute produces a freshly allocated Breakdown for one recorded day.
// Settings are merged against the documented defaults first, so absent
// nested sections never fail.
func (e *Engine) Compute(entry WorkEntry, settings Settings) *Breakdown {
	s := Merge(settings)
	facts := ClassifyDay(entry.Date, s, e.calendar)
	kind := ResolveDayKind(entry, facts)

	b := newBreakdown()
	b.Details.Facts = facts
	b.Details.Kind = kind
	b.Details.CompletionType = entry.CompletionType

	if kind == KindFixed {
		// Flat daily rate, everything else zeroed.
		b.Ordinary.Total = s.DailyRate
		b.TotalEarnings = s.DailyRate
		return b
	}

	totals := AggregateShifts(entry)

	switch kind {
	case KindSpecial:
		e.computeSpecialDay(b, facts, totals, s)
	default:
		e.computeOrdinaryDay(b, entry, facts, totals, s)
	}

	// Standby interventions are always computed on working days; only the
	// indemnity is gated by standby activation.
	promoted := totals.WorkHours() >= s.StandardDayHours
	standbyTotal := e.computeStandby(b, entry, facts, s, promoted)

	if s.Standby.Enabled && ResolveStandbyActive(entry, s, entry.Date) {
		b.Standby.DailyIndemnity = StandbyIndemnity(facts, s)
	}
	b.Standby.TotalEarnings = standbyTotal.Add(b.Standby.DailyIndemnity)
	b.Allowances.Standby = b.Standby.DailyIndemnity

	standbyWorkHours := 0.0
	for _, h := range b.Standby.WorkHours {
		standbyWorkHours += h
	}
	b.Allowances.Travel = TravelAllowance(entry, facts, totals, standbyWorkHours, s)
	b.Allowances.Meal = MealAllowance(entry, DetectBreaks(entry), s)

	b.TotalEarnings = b.Ordinary.Total.
		Add(b.Allowances.Travel).
		Add(b.Standby.TotalEarnings)
	return b
}

// =============================================================================
// SPECIAL DAY - Flat day-multiplier on every worked and traveled hour
// =============================================================================

func (e *Engine) computeSpecialDay(b *Breakdown, facts DayFacts, totals ShiftTotals, s Settings) {
	mult := s.Rates.Saturday
	if facts.IsSunday || facts.IsHoliday {
		mult = s.Rates.Holiday
	}
	rate := s.BaseHourlyRate.Mul(mult)

	workHours := totals.WorkHours()
	travelHours := totals.TravelHours()

	b.Ordinary.WorkedHours = workHours
	b.Ordinary.TravelHours = travelHours
	b.Ordinary.RegularEarnings = decimal.NewFromFloat(workHours).Mul(rate)
	b.Ordinary.TravelEarnings = decimal.NewFromFloat(travelHours).Mul(rate)
	b.Ordinary.Total = b.Ordinary.RegularEarnings.Add(b.Ordinary.TravelEarnings)
}

// =============================================================================
// ORDINARY WEEKDAY - Travel-policy branch plus night bonus
// =============================================================================

func (e *Engine) computeOrdinaryDay(b *Breakdown, entry WorkEntry, facts DayFacts, totals ShiftTotals, s Settings) {
	base := s.BaseHourlyRate
	std := s.StandardDayHours

	workHours := totals.WorkHours()
	travelHours := totals.TravelHours()
	b.Ordinary.WorkedHours = workHours
	b.Ordinary.TravelHours = travelHours

	switch s.TravelPolicy {
	case TravelPolicySeparate:
		// Travel always at base x travel rate; work alone decides the
		// daily-rate threshold.
		b.Ordinary.TravelEarnings = decimal.NewFromFloat(travelHours).Mul(base).Mul(s.TravelCompensationRate)
		if workHours >= std {
			b.Ordinary.RegularEarnings = s.DailyRate
			excess := workHours - std
			b.Ordinary.OvertimeHours = excess
			b.Ordinary.OvertimeEarnings = decimal.NewFromFloat(excess).Mul(base).Mul(s.Rates.Overtime)
		} else {
			b.Ordinary.RegularEarnings = e.partialDailyRate(b, entry, workHours, s)
		}

	case TravelPolicyExcessAsTravel:
		sum := workHours + travelHours
		if sum >= std {
			b.Ordinary.RegularEarnings = s.DailyRate
			excess := sum - std
			b.Ordinary.TravelEarnings = decimal.NewFromFloat(excess).Mul(base).Mul(s.TravelCompensationRate)
		} else {
			b.Ordinary.RegularEarnings = e.partialDailyRate(b, entry, sum, s)
		}

	case TravelPolicyExcessAsOvertime:
		sum := workHours + travelHours
		if sum >= std {
			b.Ordinary.RegularEarnings = s.DailyRate
			excess := sum - std
			b.Ordinary.OvertimeHours = excess
			b.Ordinary.OvertimeEarnings = decimal.NewFromFloat(excess).Mul(base).Mul(s.Rates.Overtime)
		} else {
			b.Ordinary.RegularEarnings = e.partialDailyRate(b, entry, sum, s)
		}

	default: // TravelPolicyDefault
		// Excess folds into ordinary pay at base rate; the external/internal
		// travel split only affects allowance activation.
		sum := workHours + travelHours
		if sum >= std {
			excess := sum - std
			b.Ordinary.RegularEarnings = s.DailyRate.Add(decimal.NewFromFloat(excess).Mul(base))
		} else {
			b.Ordinary.RegularEarnings = e.partialDailyRate(b, entry, sum, s)
		}
	}

	// Ordinary bonus: night hours are topped up by the difference between
	// the resolved bonus rate and the base rate.
	if totals.NightWorkMinutes > 0 {
		nightHours := HoursFromMinutes(totals.NightWorkMinutes)
		mult := OrdinaryMultiplier(s.Rates, false, true, facts.IsHoliday, facts.IsSunday)
		b.Ordinary.NightHours = nightHours
		b.Ordinary.BonusEarnings = decimal.NewFromFloat(nightHours).Mul(base).Mul(mult.Sub(decimalOne))
	}

	b.Ordinary.Total = b.Ordinary.RegularEarnings.
		Add(b.Ordinary.OvertimeEarnings).
		Add(b.Ordinary.TravelEarnings).
		Add(b.Ordinary.BonusEarnings)
}

// partialDailyRate pays a short day: proportional to the qualifying hours,
// unless an explicit completion type tops the day up to the full rate.
// The denominator is the fixed positive standard day, so no division-by-zero
// path exists.
func (e *Engine) partialDailyRate(b *Breakdown, entry WorkEntry, qualifyingHours float64, s Settings) decimal.Decimal {
	std := s.StandardDayHours
	b.Details.ShortfallHours = std - qualifyingHours

	if entry.CompletionType != CompletionNone {
		// An explicit completion type always forces full daily-rate payment.
		b.Details.DeemedFullDay = true
		return s.DailyRate
	}
	return s.DailyRate.Mul(decimal.NewFromFloat(qualifyingHours / std))
}

// =============================================================================
// STANDBY INTERVENTIONS - Time-band hours and pay
// =============================================================================

// computeStandby fills the band maps and returns the band earnings total
// (excluding the indemnity). Work minutes are promoted to the overtime
// variant when promoted is true; travel minutes never are.
func (e *Engine) computeStandby(b *Breakdown, entry WorkEntry, facts DayFacts, s Settings, promoted bool) decimal.Decimal {
	base := s.BaseHourlyRate
	total := decimal.Zero

	addEarnings := func(band StandbyBand, hours float64, mult decimal.Decimal) {
		earned := decimal.NewFromFloat(hours).Mul(base).Mul(mult)
		b.Standby.Earnings[band] = b.Standby.Earnings[band].Add(earned)
		total = total.Add(earned)
	}

	for _, iv := range effectiveShifts(entry.Interventions, entry.LegacyIntervention) {
		for _, pair := range [][2]string{
			{iv.Work1Start, iv.Work1End},
			{iv.Work2Start, iv.Work2End},
		} {
			sp, ok := parseSpan(pair[0], pair[1])
			if !ok {
				continue
			}
			splitSpanByBand(sp, func(tod int) StandbyBand {
				return ClassifyStandbyMinute(tod, facts)
			}, func(band StandbyBand, minutes int) {
				hours := HoursFromMinutes(minutes)
				b.Standby.WorkHours[band] += hours
				addEarnings(band, hours, StandbyWorkMultiplier(s.StandbyRates, band, promoted))
			})
		}

		for _, pair := range [][2]string{
			{iv.TravelOutStart, iv.TravelOutEnd},
			{iv.TravelReturnStart, iv.TravelReturnEnd},
		} {
			sp, ok := parseSpan(pair[0], pair[1])
			if !ok {
				continue
			}
			splitSpanByBand(sp, TravelBand, func(band StandbyBand, minutes int) {
				hours := HoursFromMinutes(minutes)
				b.Standby.TravelHours[band] += hours
				addEarnings(band, hours, StandbyTravelMultiplier(s.StandbyRates, band))
			})
		}
	}

	return total
}
