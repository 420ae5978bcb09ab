// Package report renders monthly summaries as PDF payslip estimates.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/warp/payroll-engine/monthly"
)

// RenderPayslip writes a one-page PDF of the monthly summary.
func RenderPayslip(w io.Writer, sum monthly.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly earnings estimate", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Earnings estimate - %s %d", monthName(sum.Month), sum.Year))
	pdf.Ln(14)

	section(pdf, "Hours")
	row(pdf, "Worked", fmt.Sprintf("%.2f h", sum.WorkedHours))
	row(pdf, "Overtime", fmt.Sprintf("%.2f h", sum.OvertimeHours))
	row(pdf, "Travel", fmt.Sprintf("%.2f h", sum.TravelHours))
	row(pdf, "Night", fmt.Sprintf("%.2f h", sum.NightHours))
	row(pdf, "Standby work", fmt.Sprintf("%.2f h", sum.StandbyWorkHours))
	row(pdf, "Standby travel", fmt.Sprintf("%.2f h", sum.StandbyTravelHours))

	section(pdf, "Days")
	row(pdf, "Worked weekdays", fmt.Sprintf("%d", sum.WeekdayDays))
	row(pdf, "Worked weekend/holiday", fmt.Sprintf("%d", sum.WeekendHolidayDays))
	row(pdf, "Vacation/sick/permit/rest", fmt.Sprintf("%d", sum.FixedDays))
	row(pdf, "Standby days", fmt.Sprintf("%d", sum.StandbyDays))
	row(pdf, "Travel allowance days", fmt.Sprintf("%d", sum.TravelAllowanceDays))
	row(pdf, "Meal voucher days", fmt.Sprintf("%d", sum.MealVoucherDays))
	row(pdf, "Meal cash days", fmt.Sprintf("%d", sum.MealCashDays))

	section(pdf, "Earnings")
	row(pdf, "Ordinary", sum.OrdinaryEarnings.StringFixed(2))
	row(pdf, "Standby (incl. indemnities)", sum.StandbyEarnings.StringFixed(2))
	row(pdf, "Indemnities", sum.Indemnities.StringFixed(2))
	row(pdf, "Travel allowance", sum.TravelAllowance.StringFixed(2))
	row(pdf, "Meal allowance (non-taxable)", sum.MealAllowance.StringFixed(2))

	section(pdf, "Totals")
	row(pdf, "Gross", sum.Gross.StringFixed(2))
	row(pdf, fmt.Sprintf("Estimated net (%s)", sum.Net.Method), sum.Net.Net.StringFixed(2))
	row(pdf, "Deductions", sum.Net.Deductions.StringFixed(2))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(90, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, value, "", 0, "R", false, 0, "")
	pdf.Ln(6)
}

func monthName(m time.Month) string { return m.String() }
