package rentcheck

import (
	"fmt"
	"math"
)

// AnnualPayment returns the annual principal and interest repayment of a
// level-payment loan repaid monthly over years.
//
// A non-positive rate falls back to straight-line repayment loan/years.
// years must be positive and the rate finite, otherwise a *ConfigError is
// returned. So is a rate too small to be distinguished from zero.
func AnnualPayment(loan Money, annualRate float64, years int) (Money, error) {
	if years <= 0 {
		return Money{}, &ConfigError{Field: "loan_term_years", Reason: fmt.Sprintf("must be positive, got %d", years)}
	}
	if !isFinite(annualRate) {
		return Money{}, &ConfigError{Field: "interest_rate", Reason: fmt.Sprintf("must be a finite number, got %v", annualRate)}
	}
	if annualRate <= 0 {
		return loan.DivInt(years), nil
	}
	factor := annuityFactor(annualRate, years)
	if !isFinite(factor) {
		return Money{}, &ConfigError{Field: "interest_rate", Reason: fmt.Sprintf("no repayment defined for %v over %d years", annualRate, years)}
	}
	return loan.Mul(factor), nil
}

// annuityFactor returns the annual payment per unit of loan.
//
// 12r(1+r)^n / ((1+r)^n - 1) is evaluated as 12r / (1 - (1+r)^-n) so that
// neither huge rates nor tiny ones overflow or cancel out.
func annuityFactor(annualRate float64, years int) float64 {
	r := annualRate / 12
	n := 12 * float64(years)
	return 12 * r / -math.Expm1(-n*math.Log1p(r))
}
