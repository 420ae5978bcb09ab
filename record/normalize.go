/*
Package record is the input normalization boundary.

PURPOSE:
  Stored day records come in two naming conventions (current camelCase and
  the legacy snake_case set) and may carry shift/intervention lists encoded
  as JSON arrays or as already-decoded values. Normalize resolves all of
  that once, at the boundary, onto the canonical engine.WorkEntry schema.
  The engine never sees raw records.

ERROR DESIGN:
  A malformed array-encoded list is logged and replaced with an empty list,
  never propagated. Missing optional fields are treated as absent/zero.
*/
package record

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/engine"
)

// Normalize maps a heterogeneous stored record onto the canonical WorkEntry.
// log may be nil; the standard logger is used then.
func Normalize(log *logrus.Logger, raw map[string]any) engine.WorkEntry {
	if log == nil {
		log = logrus.StandardLogger()
	}

	entry := engine.WorkEntry{
		Date:    parseDate(getString(raw, "date")),
		DayType: engine.ParseDayType(getString(raw, "dayType", "day_type")),

		Shifts:        decodeShifts(log, raw, "shifts"),
		Interventions: decodeShifts(log, raw, "interventions"),

		TravelAllowancePercent: getFloat(raw, "travelAllowancePercent", "travel_allowance_percent"),

		LunchVoucher:  boolValue(raw, "lunchVoucher", "lunch_voucher"),
		DinnerVoucher: boolValue(raw, "dinnerVoucher", "dinner_voucher"),
		LunchCash:     getDecimal(raw, "lunchCash", "lunch_cash"),
		DinnerCash:    getDecimal(raw, "dinnerCash", "dinner_cash"),

		CompletionType: engine.CompletionType(getString(raw, "completionType", "completion_type")),
	}

	// Legacy flat single-shift fields, used by the aggregator only when the
	// list form is absent.
	entry.Legacy = shiftFromMap(raw)
	entry.LegacyIntervention = legacyIntervention(raw)

	entry.StandbyOverride = tristate(raw,
		"isStandbyDay", "is_standby_day",
		"standbyManualOverride", "standby_manual_override")
	entry.TravelAllowanceOverride = tristate(raw,
		"travelAllowanceEnabled", "travel_allowance_enabled",
		"travelAllowanceManualOverride", "travel_allowance_manual_override")

	return entry
}

// tristate derives a manual override flag: the override marker says whether
// the user touched the switch, the value flag says which way.
func tristate(raw map[string]any, valueKey, legacyValueKey, overrideKey, legacyOverrideKey string) engine.Tristate {
	override, present := getBool(raw, overrideKey, legacyOverrideKey)
	if !present || !override {
		return engine.TriUnset
	}
	value, _ := getBool(raw, valueKey, legacyValueKey)
	if value {
		return engine.TriActivated
	}
	return engine.TriDeactivated
}

// =============================================================================
// SHIFT LIST DECODING
// =============================================================================

// decodeShifts decodes a shift/intervention list stored either as a decoded
// []any or as a JSON-encoded string. Malformed data is logged and dropped.
func decodeShifts(log *logrus.Logger, raw map[string]any, field string) []engine.Shift {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}

	var items []any
	switch enc := v.(type) {
	case []any:
		items = enc
	case string:
		if enc == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(enc), &items); err != nil {
			log.WithFields(logrus.Fields{
				"field": field,
				"error": err,
			}).Warn("malformed array-encoded list, replaced with empty")
			return nil
		}
	default:
		log.WithField("field", field).Warn("unexpected list encoding, replaced with empty")
		return nil
	}

	shifts := make([]engine.Shift, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			log.WithField("field", field).Warn("non-object list element dropped")
			continue
		}
		shifts = append(shifts, shiftFromMap(m))
	}
	if len(shifts) == 0 {
		return nil
	}
	return shifts
}

func shiftFromMap(m map[string]any) engine.Shift {
	return engine.Shift{
		TravelOutStart:    getString(m, "travelOutStart", "travel_out_start"),
		TravelOutEnd:      getString(m, "travelOutEnd", "travel_out_end"),
		Work1Start:        getString(m, "work1Start", "work_1_start"),
		Work1End:          getString(m, "work1End", "work_1_end"),
		Work2Start:        getString(m, "work2Start", "work_2_start"),
		Work2End:          getString(m, "work2End", "work_2_end"),
		TravelReturnStart: getString(m, "travelReturnStart", "travel_return_start"),
		TravelReturnEnd:   getString(m, "travelReturnEnd", "travel_return_end"),
	}
}

// legacyIntervention reads the flat legacy intervention fields.
func legacyIntervention(raw map[string]any) engine.Shift {
	return engine.Shift{
		TravelOutStart:    getString(raw, "standbyTravelOutStart", "standby_travel_out_start"),
		TravelOutEnd:      getString(raw, "standbyTravelOutEnd", "standby_travel_out_end"),
		Work1Start:        getString(raw, "standbyWork1Start", "standby_work_1_start"),
		Work1End:          getString(raw, "standbyWork1End", "standby_work_1_end"),
		Work2Start:        getString(raw, "standbyWork2Start", "standby_work_2_start"),
		Work2End:          getString(raw, "standbyWork2End", "standby_work_2_end"),
		TravelReturnStart: getString(raw, "standbyTravelReturnStart", "standby_travel_return_start"),
		TravelReturnEnd:   getString(raw, "standbyTravelReturnEnd", "standby_travel_return_end"),
	}
}

// =============================================================================
// FIELD HELPERS - First matching key wins
// =============================================================================

func getString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok {
			return v
		}
	}
	return ""
}

func getBool(raw map[string]any, keys ...string) (value, present bool) {
	for _, k := range keys {
		if v, ok := raw[k].(bool); ok {
			return v, true
		}
	}
	return false, false
}

func boolValue(raw map[string]any, keys ...string) bool {
	v, _ := getBool(raw, keys...)
	return v
}

func getFloat(raw map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f
			}
		}
	}
	return 0
}

func getDecimal(raw map[string]any, keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		case json.Number:
			if d, err := decimal.NewFromString(v.String()); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
