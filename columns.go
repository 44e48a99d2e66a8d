package rentcheck

import (
	"strconv"
)

// Column names of the output table, in addition to the input ones.
const (
	ColGrossYield  = "gross_yield_percent"
	ColNetYield    = "net_yield_percent"
	ColNOI         = "NOI"
	ColLoanAmount  = "loan_amount"
	ColEquity      = "equity"
	ColStressRate  = "stress_rate"
	ColDebtService = "annual_debt_service_stress"
	ColCashflow    = "cashflow_after_debt_stress"
	ColSCoC        = "sCoC_percent"
	ColDSCR        = "DSCR_stress"
	ColSignal      = "signal"
)

// OutputColumns lists the columns of the output table, in order.
var OutputColumns = []string{
	ColAddress, ColPrice, ColWeeklyRent,
	ColGrossYield, ColNetYield,
	ColNOI, ColLoanAmount, ColEquity,
	ColStressRate, ColDebtService,
	ColCashflow, ColSCoC,
	ColDSCR, ColSignal,
}

// Cells returns the output table row of s, one cell per OutputColumns entry.
// Amounts have two decimals, non-finite ratios are written +Inf, -Inf or NaN.
func (s Scored) Cells() []string {
	price, _ := s.Price.Get()
	rent, _ := s.WeeklyRent.Get()
	return []string{
		s.Address,
		price.Plain(),
		rent.Plain(),
		formatFloat(float64(s.GrossYield)),
		formatFloat(float64(s.NetYield)),
		s.NOI.Plain(),
		s.LoanAmount.Plain(),
		s.Equity.Plain(),
		formatFloat(s.StressRate),
		s.DebtService.Plain(),
		s.Cashflow.Plain(),
		formatFloat(float64(s.SCoC)),
		formatFloat(s.DSCR),
		string(s.Signal),
	}
}

// formatFloat writes v with up to 6 decimals, without trailing zeros.
func formatFloat(v float64) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	// trim trailing zeros, but keep one digit after the point
	for len(s) > 1 && s[len(s)-1] == '0' && s[len(s)-2] != '.' {
		s = s[:len(s)-1]
	}
	return s
}
