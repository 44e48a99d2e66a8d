package rentcheck

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestDerive_BoxHillScenario(t *testing.T) {
	p := listing("12 Park St, Box Hill VIC", 900000, 720)
	p.CouncilRates = AUD(2200)
	p.StrataBodyCorp = AUD(0)
	p.Insurance = AUD(1200)
	p.LandTax = AUD(800)
	p.OtherCosts = AUD(500)
	p.InterestRate = Some(0.065)

	s, err := Derive(p, DefaultAssumptions())
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	t.Run("Income and costs", func(t *testing.T) {
		for _, tc := range []struct {
			name      string
			got, want Money
		}{
			{"AnnualRent", s.AnnualRent, AUD(37440)},
			{"VacancyLoss", s.VacancyLoss, AUD(2880)},
			{"Maintenance", s.Maintenance, AUD(1872)},
			{"CapexReserve", s.CapexReserve, AUD(9000)},
			// 2200+0+1200+800+500+1872+9000
			{"OperatingCosts", s.OperatingCosts, AUD(15572)},
			// 37440-2880-15572
			{"NOI", s.NOI, AUD(18988)},
		} {
			if !tc.got.Equal(tc.want) {
				t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
			}
		}
	})

	t.Run("Financing", func(t *testing.T) {
		if got, want := s.LoanAmount, AUD(720000); !got.Equal(want) {
			t.Errorf("LoanAmount = %v, want %v", got, want)
		}
		// 900000*0.20 + 900000*0.05
		if got, want := s.Equity, AUD(225000); !got.Equal(want) {
			t.Errorf("Equity = %v, want %v", got, want)
		}
		if got, want := s.StressRate, 0.085; math.Abs(got-want) > 1e-12 {
			t.Errorf("StressRate = %v, want %v", got, want)
		}
		if got, want := s.DebtService.Float(), 66434.125; math.Abs(got-want) > 0.01 {
			t.Errorf("DebtService = %v, want %v", got, want)
		}
		if got, want := s.Cashflow.Float(), 18988-66434.125; math.Abs(got-want) > 0.01 {
			t.Errorf("Cashflow = %v, want %v", got, want)
		}
	})

	t.Run("Ratios", func(t *testing.T) {
		if got, want := s.SCoC, Percent(-21.087167); !got.Equal(want) {
			t.Errorf("SCoC = %v, want %v", got, want)
		}
		if got, want := s.GrossYield, Percent(4.16); !got.Equal(want) {
			t.Errorf("GrossYield = %v, want %v", got, want)
		}
		if got, want := s.NetYield, Percent(2.109778); !got.Equal(want) {
			t.Errorf("NetYield = %v, want %v", got, want)
		}
		if got, want := s.DSCR, 0.285817; math.Abs(got-want) > 1e-6 {
			t.Errorf("DSCR = %v, want %v", got, want)
		}
		if got, want := s.Signal, Avoid; got != want {
			t.Errorf("Signal = %q, want %q", got, want)
		}
	})
}

func TestDerive_Defaults(t *testing.T) {
	// Costs, interest rate, LVR and term are all absent.
	s, err := Derive(listing("", 500000, 500), DefaultAssumptions())
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if s.LVR != 0.80 {
		t.Errorf("LVR = %v, want 0.80", s.LVR)
	}
	if s.LoanTermYears != 30 {
		t.Errorf("LoanTermYears = %v, want 30", s.LoanTermYears)
	}
	if got, want := s.StressRate, DefaultInterestRate+0.02; math.Abs(got-want) > 1e-12 {
		t.Errorf("StressRate = %v, want %v", got, want)
	}
	// maintenance 1300 + capex 5000
	if got, want := s.OperatingCosts, AUD(6300); !got.Equal(want) {
		t.Errorf("OperatingCosts = %v, want %v", got, want)
	}
}

func TestDerive_PropertyOverrides(t *testing.T) {
	p := listing("", 300000, 400)
	p.InterestRate = Some(0.05)
	p.LVR = Some(0.5)
	p.LoanTermYears = Some(25)

	s, err := Derive(p, DefaultAssumptions())
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if got, want := s.LoanAmount, AUD(150000); !got.Equal(want) {
		t.Errorf("LoanAmount = %v, want %v", got, want)
	}
	want, _ := AnnualPayment(AUD(150000), 0.07, 25)
	if !s.DebtService.Equal(want) {
		t.Errorf("DebtService = %v, want %v", s.DebtService, want)
	}
}

func TestDerive_Signals(t *testing.T) {
	testCases := []struct {
		name string
		rent float64
		want Signal
	}{
		// 300000 at 50% LVR, 5% + 2%: debt service 11975.44
		{"resilient", 700, Buy},   // sCoC 10.18%, DSCR 2.40
		{"thin buffer", 400, Watch}, // sCoC 1.93%, DSCR 1.27
		{"negative", 200, Avoid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := listing("", 300000, tc.rent)
			p.InterestRate = Some(0.05)
			p.LVR = Some(0.5)
			s, err := Derive(p, DefaultAssumptions())
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			if s.Signal != tc.want {
				t.Errorf("Signal = %q (sCoC %v, DSCR %v), want %q", s.Signal, s.SCoC, s.DSCR, tc.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		scoc Percent
		dscr float64
		want Signal
	}{
		{2.0, 1.10, Buy},
		{10, math.Inf(1), Buy},
		{2.0, 1.09, Watch},
		{1.99, 5, Watch},
		{0, 1.0, Watch},
		{-0.01, 3, Avoid},
		{5, 0.99, Avoid},
		{Percent(math.NaN()), 2, Avoid},
		{5, math.NaN(), Avoid},
		{Percent(math.Inf(-1)), 2, Avoid},
	}
	for _, tc := range testCases {
		if got := Classify(tc.scoc, tc.dscr); got != tc.want {
			t.Errorf("Classify(%v, %v) = %q, want %q", float64(tc.scoc), tc.dscr, got, tc.want)
		}
	}
}

func TestDerive_SCoCDecreasesWithStress(t *testing.T) {
	p := listing("", 650000, 620)
	p.StrataBodyCorp = AUD(2400)
	a := DefaultAssumptions()

	previous := Percent(math.Inf(1))
	for bps := 0.0; bps <= 1000; bps += 25 {
		a.StressBps = bps
		s, err := Derive(p, a)
		if err != nil {
			t.Fatalf("Derive(stress=%v) error = %v", bps, err)
		}
		if s.SCoC > previous {
			t.Errorf("SCoC(stress=%v) = %v, greater than %v at a lower stress", bps, s.SCoC, previous)
		}
		previous = s.SCoC
	}
}

func TestDerive_ZeroRent(t *testing.T) {
	p := listing("", 500000, 0)
	p.CouncilRates = AUD(1000)

	s, err := Derive(p, DefaultAssumptions())
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if !s.AnnualRent.IsZero() || !s.VacancyLoss.IsZero() {
		t.Errorf("AnnualRent = %v, VacancyLoss = %v, want 0", s.AnnualRent, s.VacancyLoss)
	}
	// council 1000 + capex 5000
	if got, want := s.NOI, AUD(-6000); !got.Equal(want) {
		t.Errorf("NOI = %v, want %v", got, want)
	}
	if !s.NOI.Equal(s.OperatingCosts.Neg()) {
		t.Errorf("NOI = %v, want -OperatingCosts = %v", s.NOI, s.OperatingCosts.Neg())
	}
	if s.GrossYield != 0 {
		t.Errorf("GrossYield = %v, want 0", s.GrossYield)
	}
	if s.Signal != Avoid {
		t.Errorf("Signal = %q, want %q", s.Signal, Avoid)
	}
}

func TestDerive_NoLoanIsSingular(t *testing.T) {
	p := listing("cash buy", 300000, 700)
	p.InterestRate = Some(0.05)
	p.LVR = Some(0.0)

	s, err := Derive(p, DefaultAssumptions())
	if !errors.Is(err, ErrDivisionSingularity) {
		t.Fatalf("Derive() error = %v, want %v", err, ErrDivisionSingularity)
	}
	var serr *SingularityError
	if !errors.As(err, &serr) || !slices.Equal(serr.Metrics, []string{ColDSCR}) {
		t.Errorf("Derive() error = %v, want DSCR_stress only", err)
	}
	if !s.LoanAmount.IsZero() || !s.DebtService.IsZero() {
		t.Errorf("LoanAmount = %v, DebtService = %v, want 0", s.LoanAmount, s.DebtService)
	}
	if !math.IsInf(s.DSCR, 1) {
		t.Errorf("DSCR = %v, want +Inf", s.DSCR)
	}
	// 28780 / (300000 + 15000)
	if got, want := s.SCoC, Percent(9.136508); !got.Equal(want) {
		t.Errorf("SCoC = %v, want %v", got, want)
	}
	if !s.Singular() {
		t.Errorf("Singular() = false, want true")
	}
	if s.Signal != Buy {
		t.Errorf("Signal = %q, want %q", s.Signal, Buy)
	}
}

func TestDerive_NoEquityIsSingular(t *testing.T) {
	a := DefaultAssumptions()
	a.PurchaseCostRate = 0
	p := listing("", 500000, 400)
	p.LVR = Some(1.0)

	s, err := Derive(p, a)
	var serr *SingularityError
	if !errors.As(err, &serr) || !slices.Equal(serr.Metrics, []string{ColSCoC}) {
		t.Fatalf("Derive() error = %v, want a singular sCoC_percent", err)
	}
	if !s.Equity.IsZero() {
		t.Errorf("Equity = %v, want 0", s.Equity)
	}
	if !math.IsInf(float64(s.SCoC), -1) {
		t.Errorf("SCoC = %v, want -Inf", float64(s.SCoC))
	}
	if s.Signal != Avoid {
		t.Errorf("Signal = %q, want %q", s.Signal, Avoid)
	}
}

func TestDerive_MissingFields(t *testing.T) {
	testCases := []struct {
		name  string
		p     Property
		field string
	}{
		{"no price", Property{WeeklyRent: Some(AUD(500))}, ColPrice},
		{"no rent", Property{Price: Some(AUD(500000))}, ColWeeklyRent},
		{"nothing", Property{Address: "empty"}, ColPrice},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Derive(tc.p, DefaultAssumptions())
			var merr *MissingFieldError
			if !errors.As(err, &merr) {
				t.Fatalf("Derive() error = %v, want a *MissingFieldError", err)
			}
			if merr.Field != tc.field {
				t.Errorf("Field = %q, want %q", merr.Field, tc.field)
			}
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("errors.Is(%v, ErrMissingField) = false", err)
			}
		})
	}
}

func TestDerive_InvalidFields(t *testing.T) {
	negativeCost := listing("", 500000, 500)
	negativeCost.LandTax = AUD(-1)
	badLVR := listing("", 500000, 500)
	badLVR.LVR = Some(1.2)
	badTerm := listing("", 500000, 500)
	badTerm.LoanTermYears = Some(0)
	badRate := listing("", 500000, 500)
	badRate.InterestRate = Some(math.NaN())

	testCases := []struct {
		name string
		p    Property
		want error
	}{
		{"zero price", listing("", 0, 500), ErrInvalidField},
		{"negative rent", listing("", 500000, -1), ErrInvalidField},
		{"negative cost", negativeCost, ErrInvalidField},
		{"lvr above 1", badLVR, ErrInvalidField},
		{"zero term", badTerm, ErrInvalidConfig},
		{"NaN rate", badRate, ErrInvalidField},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Derive(tc.p, DefaultAssumptions()); !errors.Is(err, tc.want) {
				t.Errorf("Derive() error = %v, want %v", err, tc.want)
			}
		})
	}
}
