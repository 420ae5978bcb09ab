/*
net.go - Net pay estimation

PURPOSE:
  Derives estimated net pay from gross using the best available method:

    1. Empirical payslip-derived net/gross ratio (most accurate)
    2. Detailed progressive model: social contributions plus bracketed
       income tax on the monthly taxable base
    3. Flat quick-rate estimate (last resort)

  The same precedence applies to a single day's gross and to an aggregated
  monthly gross; the brackets below are monthly figures.
*/
package engine

import "github.com/shopspring/decimal"

type NetMethod string

const (
	NetMethodPayslip  NetMethod = "payslip"
	NetMethodBrackets NetMethod = "brackets"
	NetMethodQuick    NetMethod = "quick"
)

// NetEstimate reports the estimated net alongside the deduction figures.
type NetEstimate struct {
	Gross         decimal.Decimal
	Net           decimal.Decimal
	Deductions    decimal.Decimal
	EffectiveRate decimal.Decimal
	Method        NetMethod
}

// Monthly progressive model constants.
var (
	contributionRate = decimal.NewFromFloat(0.0919)

	taxBrackets = []struct {
		upTo decimal.Decimal // zero = unbounded
		rate decimal.Decimal
	}{
		{decimal.NewFromFloat(2333.33), decimal.NewFromFloat(0.23)},
		{decimal.NewFromFloat(4166.67), decimal.NewFromFloat(0.35)},
		{decimal.Zero, decimal.NewFromFloat(0.43)},
	}
)

// EstimateNet derives net pay from gross under the configured settings.
// Non-positive gross yields a zeroed estimate.
func EstimateNet(gross decimal.Decimal, s NetSettings) NetEstimate {
	est := NetEstimate{Gross: gross}
	if !gross.IsPositive() {
		est.Method = netMethod(s)
		est.Net = decimal.Zero
		est.Deductions = decimal.Zero
		est.EffectiveRate = decimal.Zero
		return est
	}

	switch netMethod(s) {
	case NetMethodPayslip:
		est.Method = NetMethodPayslip
		est.Net = gross.Mul(s.PayslipNetRatio)
	case NetMethodBrackets:
		est.Method = NetMethodBrackets
		est.Net = gross.Sub(bracketDeductions(gross))
	default:
		est.Method = NetMethodQuick
		est.Net = gross.Sub(gross.Mul(s.QuickDeductionRate))
	}

	est.Deductions = gross.Sub(est.Net)
	est.EffectiveRate = est.Deductions.Div(gross)
	return est
}

func netMethod(s NetSettings) NetMethod {
	if s.PayslipNetRatio.IsPositive() {
		return NetMethodPayslip
	}
	if s.UseBrackets {
		return NetMethodBrackets
	}
	return NetMethodQuick
}

// bracketDeductions walks the progressive model: contributions first, then
// bracketed tax on the remaining taxable base.
func bracketDeductions(gross decimal.Decimal) decimal.Decimal {
	contributions := gross.Mul(contributionRate)
	taxable := gross.Sub(contributions)

	tax := decimal.Zero
	lower := decimal.Zero
	for _, br := range taxBrackets {
		if br.upTo.IsZero() || taxable.LessThan(br.upTo) {
			tax = tax.Add(taxable.Sub(lower).Mul(br.rate))
			break
		}
		tax = tax.Add(br.upTo.Sub(lower).Mul(br.rate))
		lower = br.upTo
	}

	return contributions.Add(tax)
}
