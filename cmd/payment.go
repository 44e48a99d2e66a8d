package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentcheck"
	"github.com/google/subcommands"
)

type paymentCmd struct {
	loan     string
	rate     float64
	years    int
	currency string
}

func (*paymentCmd) Name() string     { return "payment" }
func (*paymentCmd) Synopsis() string { return "compute the annual repayment of a loan" }
func (*paymentCmd) Usage() string {
	return `rck payment -loan <amount> [-rate <annual rate>] [-years <n>]

  Prints the annual repayment of a monthly principal and interest loan.

`
}

func (c *paymentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.loan, "loan", "", "Loan amount")
	f.Float64Var(&c.rate, "rate", rentcheck.DefaultInterestRate, "Annual interest rate, e.g. 0.065")
	f.IntVar(&c.years, "years", rentcheck.DefaultAssumptions().LoanTermYears, "Loan term in years")
	f.StringVar(&c.currency, "currency", "AUD", "Currency of the loan")
}

func (c *paymentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" {
		fmt.Fprintln(os.Stderr, "Error: -loan is required")
		return subcommands.ExitUsageError
	}
	loan, err := rentcheck.ParseMoney(c.loan, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing loan: %v\n", err)
		return subcommands.ExitUsageError
	}
	payment, err := rentcheck.AnnualPayment(loan, c.rate, c.years)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s per year, %s per month\n", payment, payment.DivInt(12))
	return subcommands.ExitSuccess
}
