package loan

import "math"

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// ComputeEMI returns the fixed monthly installment for the given principal,
// annual interest rate (percent) and tenure in months.
//
// With r = rate/12/100 the standard amortization formula applies:
//
//	emi = principal * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to a flat principal/tenure split. The result is
// rounded to 2 decimal places.
func ComputeEMI(principal, annualRatePercent float64, tenureMonths int) (float64, error) {
	if tenureMonths <= 0 {
		return 0, ErrInvalidTenure
	}
	r := annualRatePercent / 12 / 100
	if r == 0 {
		return Round2(principal / float64(tenureMonths)), nil
	}
	pow := math.Pow(1+r, float64(tenureMonths))
	denom := pow - 1
	if denom == 0 {
		return 0, ErrInvalidEMIParameters
	}
	return Round2(principal * r * pow / denom), nil
}
