package cmd

import (
	"flag"

	"github.com/etnz/rentcheck"
)

// assumptionFlags binds the shared assumptions to command flags.
//
// Values come from the defaults, then the -config file, then the flags
// explicitly set on the command line.
type assumptionFlags struct {
	config string
	values rentcheck.Assumptions
}

func (a *assumptionFlags) SetFlags(f *flag.FlagSet) {
	d := rentcheck.DefaultAssumptions()
	f.StringVar(&a.config, "config", "", "YAML file of assumptions")
	f.Float64Var(&a.values.VacancyWeeks, "vacancy-weeks", d.VacancyWeeks, "Weeks per year without a tenant")
	f.Float64Var(&a.values.MaintenanceRate, "maintenance-rate", d.MaintenanceRate, "Maintenance as a share of the annual rent")
	f.Float64Var(&a.values.CapexRate, "capex-rate", d.CapexRate, "Capex reserve as a share of the price")
	f.Float64Var(&a.values.PurchaseCostRate, "purchase-cost-rate", d.PurchaseCostRate, "Purchase costs as a share of the price")
	f.Float64Var(&a.values.LVR, "lvr", d.LVR, "Default loan to value ratio")
	f.IntVar(&a.values.LoanTermYears, "loan-term", d.LoanTermYears, "Default loan term in years")
	f.Float64Var(&a.values.StressBps, "stress-bps", d.StressBps, "Basis points added to the current interest rate")
}

// Assumptions returns the validated assumptions.
func (a *assumptionFlags) Assumptions(f *flag.FlagSet) (rentcheck.Assumptions, error) {
	if a.config == "" {
		return a.values, a.values.Validate()
	}
	result, err := rentcheck.LoadAssumptions(a.config)
	if err != nil {
		return result, err
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "vacancy-weeks":
			result.VacancyWeeks = a.values.VacancyWeeks
		case "maintenance-rate":
			result.MaintenanceRate = a.values.MaintenanceRate
		case "capex-rate":
			result.CapexRate = a.values.CapexRate
		case "purchase-cost-rate":
			result.PurchaseCostRate = a.values.PurchaseCostRate
		case "lvr":
			result.LVR = a.values.LVR
		case "loan-term":
			result.LoanTermYears = a.values.LoanTermYears
		case "stress-bps":
			result.StressBps = a.values.StressBps
		}
	})
	return result, result.Validate()
}
