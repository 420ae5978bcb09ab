/*
Package monthly rolls daily breakdowns into monthly summaries.

PURPOSE:
  For each stored entry: normalize it at the record boundary, run the
  earnings engine, and accumulate categorized hour totals, qualifying
  day counts and monetary sums. The month closes with a net-pay estimate
  on the aggregated gross.

  Days are mutually independent; the aggregator processes them
  sequentially, which is plenty for a month of entries.
*/
package monthly

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/record"
)

// Summary is the monthly rollup.
type Summary struct {
	Year  int
	Month time.Month

	// Hours by category.
	WorkedHours        float64
	OvertimeHours      float64
	TravelHours        float64
	NightHours         float64
	StandbyWorkHours   float64
	StandbyTravelHours float64

	// Qualifying day counts.
	WeekdayDays         int
	WeekendHolidayDays  int
	FixedDays           int
	StandbyDays         int
	TravelAllowanceDays int
	MealVoucherDays     int
	MealCashDays        int

	// Monetary sums.
	OrdinaryEarnings decimal.Decimal
	StandbyEarnings  decimal.Decimal
	Indemnities      decimal.Decimal
	TravelAllowance  decimal.Decimal
	MealAllowance    decimal.Decimal
	Gross            decimal.Decimal

	Net engine.NetEstimate
}

// Aggregator normalizes stored entries and accumulates engine output.
type Aggregator struct {
	engine *engine.Engine
	log    *logrus.Logger
}

func New(eng *engine.Engine, log *logrus.Logger) *Aggregator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{engine: eng, log: log}
}

// Aggregate rolls a month of stored records into a Summary. Records outside
// the requested month are skipped.
func (a *Aggregator) Aggregate(year int, month time.Month, records []map[string]any, settings engine.Settings) Summary {
	s := engine.Merge(settings)
	sum := Summary{
		Year:             year,
		Month:            month,
		OrdinaryEarnings: decimal.Zero,
		StandbyEarnings:  decimal.Zero,
		Indemnities:      decimal.Zero,
		TravelAllowance:  decimal.Zero,
		MealAllowance:    decimal.Zero,
		Gross:            decimal.Zero,
	}

	for _, raw := range records {
		entry := record.Normalize(a.log, raw)
		if entry.Date.IsZero() {
			a.log.Warn("entry without a parsable date skipped")
			continue
		}
		if entry.Date.Year() != year || entry.Date.Month() != month {
			continue
		}

		b := a.engine.Compute(entry, s)
		a.accumulate(&sum, entry, b, s)
	}

	sum.Gross = sum.OrdinaryEarnings.Add(sum.TravelAllowance).Add(sum.StandbyEarnings)
	sum.Net = engine.EstimateNet(sum.Gross, s.Net)
	return sum
}

func (a *Aggregator) accumulate(sum *Summary, entry engine.WorkEntry, b *engine.Breakdown, s engine.Settings) {
	sum.WorkedHours += b.Ordinary.WorkedHours
	sum.OvertimeHours += b.Ordinary.OvertimeHours
	sum.TravelHours += b.Ordinary.TravelHours
	sum.NightHours += b.Ordinary.NightHours
	for _, h := range b.Standby.WorkHours {
		sum.StandbyWorkHours += h
	}
	for _, h := range b.Standby.TravelHours {
		sum.StandbyTravelHours += h
	}

	switch b.Details.Kind {
	case engine.KindFixed:
		sum.FixedDays++
	case engine.KindSpecial:
		if b.Ordinary.WorkedHours+b.Ordinary.TravelHours > 0 {
			sum.WeekendHolidayDays++
		}
	default:
		if b.Ordinary.WorkedHours+b.Ordinary.TravelHours > 0 {
			sum.WeekdayDays++
		}
	}

	if b.Details.Kind != engine.KindFixed && s.Standby.Enabled &&
		engine.ResolveStandbyActive(entry, s, entry.Date) {
		sum.StandbyDays++
	}
	if b.Allowances.Travel.IsPositive() {
		sum.TravelAllowanceDays++
	}
	if entry.LunchVoucher || entry.DinnerVoucher {
		sum.MealVoucherDays++
	}
	if entry.LunchCash.IsPositive() || entry.DinnerCash.IsPositive() {
		sum.MealCashDays++
	}

	sum.OrdinaryEarnings = sum.OrdinaryEarnings.Add(b.Ordinary.Total)
	sum.StandbyEarnings = sum.StandbyEarnings.Add(b.Standby.TotalEarnings)
	sum.Indemnities = sum.Indemnities.Add(b.Standby.DailyIndemnity)
	sum.TravelAllowance = sum.TravelAllowance.Add(b.Allowances.Travel)
	sum.MealAllowance = sum.MealAllowance.Add(b.Allowances.Meal)
}
