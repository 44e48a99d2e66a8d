package rentcheck

import (
	"fmt"
	"math"
)

// Signal is the investment recommendation of a scored property.
type Signal string

const (
	Buy   Signal = "BUY (resilient)"
	Watch Signal = "WATCH (thin buffer)"
	Avoid Signal = "AVOID (negative under stress)"
)

// Signals lists all signals from best to worst.
var Signals = []Signal{Buy, Watch, Avoid}

// Classify returns the signal for a cash-on-cash return and a debt service
// coverage ratio. The first satisfied rule wins; NaN never satisfies a rule.
func Classify(scoc Percent, dscr float64) Signal {
	switch {
	case scoc >= 2.0 && dscr >= 1.10:
		return Buy
	case scoc >= 0.0 && dscr >= 1.0:
		return Watch
	default:
		return Avoid
	}
}

// Scored is a property with all the metrics derived under stress.
type Scored struct {
	Property

	LVR           float64 // effective loan-to-value ratio
	LoanTermYears int     // effective amortization term

	AnnualRent     Money
	VacancyLoss    Money
	Maintenance    Money
	CapexReserve   Money
	OperatingCosts Money
	NOI            Money

	LoanAmount  Money
	Equity      Money
	StressRate  float64
	DebtService Money // annual, at StressRate
	Cashflow    Money // NOI minus DebtService

	SCoC       Percent // stress-tested cash-on-cash return
	GrossYield Percent
	NetYield   Percent
	DSCR       float64 // debt service coverage ratio at StressRate

	Signal Signal
}

// Derive computes every metric of p under the assumptions a.
//
// A *MissingFieldError or *FieldError means that p cannot be scored and the
// returned record is empty. A *ConfigError comes from an invalid financing
// override. A *SingularityError comes with a complete record where the
// undefined metrics hold ±Inf or NaN.
func Derive(p Property, a Assumptions) (Scored, error) {
	price, ok := p.Price.Get()
	if !ok {
		return Scored{}, &MissingFieldError{Field: ColPrice}
	}
	rent, ok := p.WeeklyRent.Get()
	if !ok {
		return Scored{}, &MissingFieldError{Field: ColWeeklyRent}
	}
	if err := validate(p, price, rent); err != nil {
		return Scored{}, err
	}

	s := Scored{
		Property:      p,
		LVR:           p.LVR.Or(a.LVR),
		LoanTermYears: p.LoanTermYears.Or(a.LoanTermYears),
	}
	if s.LVR < 0 || s.LVR > 1 || math.IsNaN(s.LVR) {
		return Scored{}, &FieldError{Field: ColLVR, Reason: fmt.Sprintf("must be in [0,1], got %v", s.LVR)}
	}
	currentRate := p.InterestRate.Or(DefaultInterestRate)
	if !isFinite(currentRate) {
		return Scored{}, &FieldError{Field: ColInterestRate, Reason: fmt.Sprintf("must be a finite number, got %v", currentRate)}
	}

	// Income and costs.
	s.AnnualRent = rent.Mul(52)
	s.VacancyLoss = rent.Mul(a.VacancyWeeks)
	s.Maintenance = s.AnnualRent.Mul(a.MaintenanceRate)
	s.CapexReserve = price.Mul(a.CapexRate)
	s.OperatingCosts = Sum(p.CouncilRates, p.StrataBodyCorp, p.Insurance, p.LandTax, p.OtherCosts, s.Maintenance, s.CapexReserve)
	s.NOI = s.AnnualRent.Sub(s.VacancyLoss).Sub(s.OperatingCosts)

	// Financing under stress.
	s.LoanAmount = price.Mul(s.LVR)
	// price*(1-lvr) written as price-loan keeps the down payment exact.
	s.Equity = price.Sub(s.LoanAmount).Add(price.Mul(a.PurchaseCostRate))
	s.StressRate = a.StressRate(currentRate)
	debt, err := AnnualPayment(s.LoanAmount, s.StressRate, s.LoanTermYears)
	if err != nil {
		return Scored{}, err
	}
	s.DebtService = debt
	s.Cashflow = s.NOI.Sub(s.DebtService)

	// Ratios.
	s.SCoC = Percent(100 * s.Cashflow.Ratio(s.Equity))
	s.GrossYield = Percent(100 * s.AnnualRent.Ratio(price))
	s.NetYield = Percent(100 * s.NOI.Ratio(price))
	s.DSCR = s.NOI.Ratio(s.DebtService)

	s.Signal = Classify(s.SCoC, s.DSCR)

	var singular SingularityError
	if s.Equity.IsZero() {
		singular.Metrics = append(singular.Metrics, ColSCoC)
		singular.Causes = append(singular.Causes, "equity is zero")
	}
	if s.DebtService.IsZero() {
		singular.Metrics = append(singular.Metrics, ColDSCR)
		singular.Causes = append(singular.Causes, "debt service is zero")
	}
	if len(singular.Metrics) > 0 {
		return s, &singular
	}
	return s, nil
}

// validate checks the domain of the input amounts.
func validate(p Property, price, rent Money) error {
	if !price.IsPositive() {
		return &FieldError{Field: ColPrice, Reason: fmt.Sprintf("must be positive, got %s", price.Plain())}
	}
	if rent.IsNegative() {
		return &FieldError{Field: ColWeeklyRent, Reason: fmt.Sprintf("must be non-negative, got %s", rent.Plain())}
	}
	for _, c := range p.costs() {
		if c.amount.IsNegative() {
			return &FieldError{Field: c.name, Reason: fmt.Sprintf("must be non-negative, got %s", c.amount.Plain())}
		}
	}
	if years, ok := p.LoanTermYears.Get(); ok && years <= 0 {
		return &ConfigError{Field: ColLoanTermYears, Reason: fmt.Sprintf("must be positive, got %d", years)}
	}
	return nil
}

// Singular reports whether some metric of s is undefined.
func (s Scored) Singular() bool {
	return !s.SCoC.IsFinite() || !isFinite(s.DSCR)
}
