package rentcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultInterestRate is the current interest rate used when a property does
// not provide one.
const DefaultInterestRate = 0.065

// Assumptions holds the financial assumptions shared by every property of a
// run.
type Assumptions struct {
	VacancyWeeks     float64 `yaml:"vacancy_weeks"`      // weeks per year assumed vacant
	MaintenanceRate  float64 `yaml:"maintenance_rate"`   // fraction of the annual rent
	CapexRate        float64 `yaml:"capex_rate"`         // fraction of the price, annual reserve
	PurchaseCostRate float64 `yaml:"purchase_cost_rate"` // fraction of the price, one-off, funded by the investor
	LVR              float64 `yaml:"lvr"`                // default loan-to-value ratio
	LoanTermYears    int     `yaml:"loan_term_years"`    // default amortization term
	StressBps        float64 `yaml:"stress_bps"`         // basis points added to the current rate
}

// DefaultAssumptions returns the standard assumptions: 4 weeks of vacancy, 5%
// maintenance, 1% capex reserve, 5% purchase costs, 80% LVR on a 30-year
// principal and interest loan, stressed by +2.00%.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		VacancyWeeks:     4,
		MaintenanceRate:  0.05,
		CapexRate:        0.01,
		PurchaseCostRate: 0.05,
		LVR:              0.80,
		LoanTermYears:    30,
		StressBps:        200,
	}
}

// StressRate returns the interest rate used for the debt service.
func (a Assumptions) StressRate(current float64) float64 {
	return current + a.StressBps/10000
}

// Validate returns all the invalid fields joined in a single error.
func (a Assumptions) Validate() error {
	var errs []error
	nonNegative := func(field string, v float64) {
		if !isFinite(v) || v < 0 {
			errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf("must be a finite non-negative number, got %v", v)})
		}
	}
	nonNegative("vacancy_weeks", a.VacancyWeeks)
	nonNegative("maintenance_rate", a.MaintenanceRate)
	nonNegative("capex_rate", a.CapexRate)
	nonNegative("purchase_cost_rate", a.PurchaseCostRate)
	if a.VacancyWeeks > 52 {
		errs = append(errs, &ConfigError{Field: "vacancy_weeks", Reason: fmt.Sprintf("cannot exceed 52, got %v", a.VacancyWeeks)})
	}
	if math.IsNaN(a.LVR) || a.LVR < 0 || a.LVR > 1 {
		errs = append(errs, &ConfigError{Field: "lvr", Reason: fmt.Sprintf("must be in [0,1], got %v", a.LVR)})
	}
	if a.LoanTermYears <= 0 {
		errs = append(errs, &ConfigError{Field: "loan_term_years", Reason: fmt.Sprintf("must be positive, got %d", a.LoanTermYears)})
	}
	if math.IsNaN(a.StressBps) || math.IsInf(a.StressBps, 0) {
		errs = append(errs, &ConfigError{Field: "stress_bps", Reason: "must be a finite number"})
	}
	return errors.Join(errs...)
}

// DecodeAssumptions reads YAML assumptions from r on top of the defaults.
// Fields absent from the document keep their default value.
func DecodeAssumptions(r io.Reader) (Assumptions, error) {
	a := DefaultAssumptions()
	data, err := io.ReadAll(r)
	if err != nil {
		return a, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return a, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil {
		return a, fmt.Errorf("cannot parse assumptions: %w", err)
	}
	return a, a.Validate()
}

// LoadAssumptions reads a YAML assumptions file.
func LoadAssumptions(path string) (Assumptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultAssumptions(), err
	}
	defer f.Close()
	a, err := DecodeAssumptions(f)
	if err != nil {
		return a, fmt.Errorf("assumptions file %q: %w", path, err)
	}
	return a, nil
}

// EncodeAssumptions writes a in the YAML assumptions format.
func EncodeAssumptions(w io.Writer, a Assumptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return err
	}
	return enc.Close()
}
