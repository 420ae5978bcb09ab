/*
dto.go - Wire representations of engine output

PURPOSE:
  The engine works in decimal.Decimal; the wire speaks plain JSON numbers
  rounded to cents. These DTOs are the stable output contract: every
  ordinary category and every standby band stays individually addressable
  by name for backward compatibility.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/monthly"
)

// =============================================================================
// REQUESTS
// =============================================================================

// ComputeRequest computes a breakdown for an inline raw record, optionally
// under inline settings instead of the stored ones.
type ComputeRequest struct {
	Entry    map[string]any   `json:"entry" validate:"required"`
	Settings *engine.Settings `json:"settings,omitempty"`
}

// EntryUpsertRequest stores a raw day record.
type EntryUpsertRequest struct {
	Payload map[string]any `json:"payload" validate:"required"`
}

// =============================================================================
// BREAKDOWN DTO
// =============================================================================

type OrdinaryDTO struct {
	WorkedHours   float64 `json:"workedHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TravelHours   float64 `json:"travelHours"`
	NightHours    float64 `json:"nightHours"`

	RegularEarnings  float64 `json:"regularEarnings"`
	OvertimeEarnings float64 `json:"overtimeEarnings"`
	TravelEarnings   float64 `json:"travelEarnings"`
	BonusEarnings    float64 `json:"bonusEarnings"`
	Total            float64 `json:"total"`
}

type StandbyDTO struct {
	WorkHours      map[string]float64 `json:"workHours"`
	TravelHours    map[string]float64 `json:"travelHours"`
	Earnings       map[string]float64 `json:"earnings"`
	DailyIndemnity float64            `json:"dailyIndemnity"`
	TotalEarnings  float64            `json:"totalEarnings"`
}

type AllowancesDTO struct {
	Travel  float64 `json:"travel"`
	Meal    float64 `json:"meal"`
	Standby float64 `json:"standby"`
}

type DetailsDTO struct {
	IsSaturday     bool    `json:"isSaturday"`
	IsSunday       bool    `json:"isSunday"`
	IsHoliday      bool    `json:"isHoliday"`
	IsRestDay      bool    `json:"isRestDay"`
	IsSpecialDay   bool    `json:"isSpecialDay"`
	Kind           string  `json:"kind"`
	CompletionType string  `json:"completionType,omitempty"`
	DeemedFullDay  bool    `json:"deemedFullDay"`
	ShortfallHours float64 `json:"shortfallHours"`
}

type BreakdownDTO struct {
	Ordinary      OrdinaryDTO   `json:"ordinary"`
	Standby       StandbyDTO    `json:"standby"`
	Allowances    AllowancesDTO `json:"allowances"`
	TotalEarnings float64       `json:"totalEarnings"`
	Details       DetailsDTO    `json:"details"`
}

func toBreakdownDTO(b *engine.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		Ordinary: OrdinaryDTO{
			WorkedHours:      b.Ordinary.WorkedHours,
			OvertimeHours:    b.Ordinary.OvertimeHours,
			TravelHours:      b.Ordinary.TravelHours,
			NightHours:       b.Ordinary.NightHours,
			RegularEarnings:  money(b.Ordinary.RegularEarnings),
			OvertimeEarnings: money(b.Ordinary.OvertimeEarnings),
			TravelEarnings:   money(b.Ordinary.TravelEarnings),
			BonusEarnings:    money(b.Ordinary.BonusEarnings),
			Total:            money(b.Ordinary.Total),
		},
		Standby: StandbyDTO{
			WorkHours:      bandHours(b.Standby.WorkHours),
			TravelHours:    bandHours(b.Standby.TravelHours),
			Earnings:       bandMoney(b.Standby.Earnings),
			DailyIndemnity: money(b.Standby.DailyIndemnity),
			TotalEarnings:  money(b.Standby.TotalEarnings),
		},
		Allowances: AllowancesDTO{
			Travel:  money(b.Allowances.Travel),
			Meal:    money(b.Allowances.Meal),
			Standby: money(b.Allowances.Standby),
		},
		TotalEarnings: money(b.TotalEarnings),
		Details: DetailsDTO{
			IsSaturday:     b.Details.Facts.IsSaturday,
			IsSunday:       b.Details.Facts.IsSunday,
			IsHoliday:      b.Details.Facts.IsHoliday,
			IsRestDay:      b.Details.Facts.IsRestDay,
			IsSpecialDay:   b.Details.Facts.IsSpecialDay,
			Kind:           string(b.Details.Kind),
			CompletionType: string(b.Details.CompletionType),
			DeemedFullDay:  b.Details.DeemedFullDay,
			ShortfallHours: b.Details.ShortfallHours,
		},
	}
}

// =============================================================================
// MONTHLY SUMMARY DTO
// =============================================================================

type MonthlySummaryDTO struct {
	Year  int    `json:"year"`
	Month string `json:"month"`

	WorkedHours        float64 `json:"workedHours"`
	OvertimeHours      float64 `json:"overtimeHours"`
	TravelHours        float64 `json:"travelHours"`
	NightHours         float64 `json:"nightHours"`
	StandbyWorkHours   float64 `json:"standbyWorkHours"`
	StandbyTravelHours float64 `json:"standbyTravelHours"`

	WeekdayDays         int `json:"weekdayDays"`
	WeekendHolidayDays  int `json:"weekendHolidayDays"`
	FixedDays           int `json:"fixedDays"`
	StandbyDays         int `json:"standbyDays"`
	TravelAllowanceDays int `json:"travelAllowanceDays"`
	MealVoucherDays     int `json:"mealVoucherDays"`
	MealCashDays        int `json:"mealCashDays"`

	OrdinaryEarnings float64 `json:"ordinaryEarnings"`
	StandbyEarnings  float64 `json:"standbyEarnings"`
	Indemnities      float64 `json:"indemnities"`
	TravelAllowance  float64 `json:"travelAllowance"`
	MealAllowance    float64 `json:"mealAllowance"`
	Gross            float64 `json:"gross"`

	Net           float64 `json:"net"`
	Deductions    float64 `json:"deductions"`
	EffectiveRate float64 `json:"effectiveRate"`
	NetMethod     string  `json:"netMethod"`
}

func toMonthlySummaryDTO(sum monthly.Summary) MonthlySummaryDTO {
	return MonthlySummaryDTO{
		Year:  sum.Year,
		Month: sum.Month.String(),

		WorkedHours:        sum.WorkedHours,
		OvertimeHours:      sum.OvertimeHours,
		TravelHours:        sum.TravelHours,
		NightHours:         sum.NightHours,
		StandbyWorkHours:   sum.StandbyWorkHours,
		StandbyTravelHours: sum.StandbyTravelHours,

		WeekdayDays:         sum.WeekdayDays,
		WeekendHolidayDays:  sum.WeekendHolidayDays,
		FixedDays:           sum.FixedDays,
		StandbyDays:         sum.StandbyDays,
		TravelAllowanceDays: sum.TravelAllowanceDays,
		MealVoucherDays:     sum.MealVoucherDays,
		MealCashDays:        sum.MealCashDays,

		OrdinaryEarnings: money(sum.OrdinaryEarnings),
		StandbyEarnings:  money(sum.StandbyEarnings),
		Indemnities:      money(sum.Indemnities),
		TravelAllowance:  money(sum.TravelAllowance),
		MealAllowance:    money(sum.MealAllowance),
		Gross:            money(sum.Gross),

		Net:           money(sum.Net.Net),
		Deductions:    money(sum.Net.Deductions),
		EffectiveRate: sum.Net.EffectiveRate.Round(4).InexactFloat64(),
		NetMethod:     string(sum.Net.Method),
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func money(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

func bandHours(m map[engine.StandbyBand]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for band, h := range m {
		out[string(band)] = h
	}
	return out
}

func bandMoney(m map[engine.StandbyBand]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for band, d := range m {
		out[string(band)] = money(d)
	}
	return out
}
