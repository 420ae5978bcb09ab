// Package calendar provides the national holiday lookup the engine consults
// during day classification.
package calendar

import (
	"sort"
	"time"

	"github.com/warp/payroll-engine/engine"
)

// Italy implements engine.HolidayCalendar for the fixed Italian national
// holiday set plus Easter Monday.
type Italy struct{}

// Compile-time check that Italy satisfies the engine interface.
var _ engine.HolidayCalendar = Italy{}

// fixedHolidays maps month/day pairs of the non-moving national holidays.
var fixedHolidays = map[[2]int]string{
	{1, 1}:   "Capodanno",
	{1, 6}:   "Epifania",
	{4, 25}:  "Festa della Liberazione",
	{5, 1}:   "Festa del Lavoro",
	{6, 2}:   "Festa della Repubblica",
	{8, 15}:  "Ferragosto",
	{11, 1}:  "Ognissanti",
	{12, 8}:  "Immacolata Concezione",
	{12, 25}: "Natale",
	{12, 26}: "Santo Stefano",
}

// IsHoliday reports whether the date is a national holiday.
func (Italy) IsHoliday(date time.Time) bool {
	if _, ok := fixedHolidays[[2]int{int(date.Month()), date.Day()}]; ok {
		return true
	}
	em := EasterMonday(date.Year())
	return date.Month() == em.Month() && date.Day() == em.Day()
}

// Holidays returns every holiday date of a year, in calendar order.
func (Italy) Holidays(year int) []time.Time {
	var dates []time.Time
	for md := range fixedHolidays {
		dates = append(dates, time.Date(year, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC))
	}
	dates = append(dates, EasterMonday(year))
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Name returns the holiday name for a date, or "".
func (Italy) Name(date time.Time) string {
	if name, ok := fixedHolidays[[2]int{int(date.Month()), date.Day()}]; ok {
		return name
	}
	em := EasterMonday(date.Year())
	if date.Month() == em.Month() && date.Day() == em.Day() {
		return "Lunedì dell'Angelo"
	}
	return ""
}

// EasterMonday computes the day after Easter Sunday for a year, using the
// anonymous Gregorian computus.
func EasterMonday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	easter := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return easter.AddDate(0, 0, 1)
}
