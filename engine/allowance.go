/*
allowance.go - Daily indemnities and allowances

PURPOSE:
  Resolves the three flat per-day amounts: the standby daily indemnity, the
  travel allowance (four computation modes) and the meal allowance.

TRAVEL ALLOWANCE RESOLUTION:
  Gate:   enabled (or manually activated), amount > 0, and not a special day
          unless apply-on-special-days is set or a manual override is present.
  Mode:   Always / full-day-only / with-travel / also-on-standby, with a
          plain any-hours default.
  Amount: Proportional-CCNL beats everything: amount x min(1, effective/8)
          with the per-entry percent forced to 1 (never applied twice).
          Half-allowance-half-day halves short days; full-allowance-half-day
          pays in full regardless. The per-entry percent (0.5 / 1.0) applies
          last, except under Proportional-CCNL.
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// STANDBY INDEMNITY
// =============================================================================

// StandbyIndemnity resolves the flat daily indemnity from rest-day status and
// the configured 16h/24h allowance type. A custom configured amount beats the
// documented default.
func StandbyIndemnity(facts DayFacts, s Settings) decimal.Decimal {
	if facts.IsRestDay {
		if s.Standby.CustomRestDay.IsPositive() {
			return s.Standby.CustomRestDay
		}
		return DefaultIndemnityRestDay
	}
	if s.Standby.AllowanceType == Standby24h {
		if s.Standby.CustomWeekday24.IsPositive() {
			return s.Standby.CustomWeekday24
		}
		return DefaultIndemnityWeekday24
	}
	if s.Standby.CustomWeekday16.IsPositive() {
		return s.Standby.CustomWeekday16
	}
	return DefaultIndemnityWeekday16
}

// =============================================================================
// TRAVEL ALLOWANCE
// =============================================================================

// TravelAllowance computes the per-day travel allowance.
// standbyWorkHours extends the effective-hours base under Proportional-CCNL
// and the also-on-standby activation mode.
func TravelAllowance(entry WorkEntry, facts DayFacts, totals ShiftTotals, standbyWorkHours float64, s Settings) decimal.Decimal {
	ta := s.TravelAllowance
	forced := entry.TravelAllowanceOverride == TriActivated

	if entry.TravelAllowanceOverride == TriDeactivated {
		return decimal.Zero
	}
	if !ta.Enabled && !forced {
		return decimal.Zero
	}
	if !ta.DailyAmount.IsPositive() {
		return decimal.Zero
	}
	if facts.IsSpecialDay && !ta.ApplyOnSpecialDays && !forced {
		return decimal.Zero
	}

	dayHours := totals.DayHours()
	std := s.StandardDayHours

	active := forced
	if !active {
		switch {
		case ta.Always:
			active = dayHours > 0
		case ta.FullDayOnly:
			active = dayHours >= std
		case ta.WithTravelOnly:
			active = travelHoursForActivation(totals, s) > 0
		default:
			active = dayHours > 0
		}
		if !active && ta.AlsoOnStandby && standbyWorkHours > 0 {
			active = true
		}
	}
	if !active {
		return decimal.Zero
	}

	percent := entry.TravelAllowancePercent
	if percent <= 0 {
		percent = 1
	}

	if ta.ProportionalCCNL {
		effective := dayHours + standbyWorkHours
		fraction := effective / std
		if fraction > 1 {
			fraction = 1
		}
		// Percent forced to 1.0: the proportion already scales the amount.
		return ta.DailyAmount.Mul(decimal.NewFromFloat(fraction))
	}

	amount := ta.DailyAmount
	if ta.HalfAllowanceHalfDay && dayHours < std {
		amount = amount.Div(decimal.NewFromInt(2))
	}
	// FullAllowanceHalfDay keeps the full amount regardless of day length.

	return amount.Mul(decimal.NewFromFloat(percent))
}

// travelHoursForActivation measures travel for the with-travel mode. Under
// the default policy only external legs (home <-> site) qualify.
func travelHoursForActivation(totals ShiftTotals, s Settings) float64 {
	if s.TravelPolicy == TravelPolicyDefault {
		return HoursFromMinutes(totals.ExternalTravelMinutes)
	}
	return totals.TravelHours()
}

// =============================================================================
// MEAL ALLOWANCE
// =============================================================================

// MealAllowance computes the per-day meal amount. Per meal: a manual cash
// amount is exclusive; otherwise a set voucher flag adds the configured
// voucher amount plus, when configured, an additive cash amount.
func MealAllowance(entry WorkEntry, breaks []Break, s Settings) decimal.Decimal {
	m := s.Meals
	total := decimal.Zero

	lunch := entry.LunchVoucher
	dinner := entry.DinnerVoucher
	if m.AutoFromBreaks {
		lunch = lunch || breakOverlapsWindow(breaks, m.LunchWindowStart, m.LunchWindowEnd)
		dinner = dinner || breakOverlapsWindow(breaks, m.DinnerWindowStart, m.DinnerWindowEnd)
	}

	total = total.Add(mealAmount(entry.LunchCash, lunch, m.LunchVoucherAmount, m.LunchCashAmount))
	total = total.Add(mealAmount(entry.DinnerCash, dinner, m.DinnerVoucherAmount, m.DinnerCashAmount))
	return total
}

func mealAmount(manualCash decimal.Decimal, voucher bool, voucherAmount, cashAmount decimal.Decimal) decimal.Decimal {
	if manualCash.IsPositive() {
		return manualCash
	}
	if !voucher {
		return decimal.Zero
	}
	return voucherAmount.Add(cashAmount)
}
