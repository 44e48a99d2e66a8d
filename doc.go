// Package rentcheck computes a stress-tested cash-on-cash return (sCoC) for
// residential investment properties.
//
// A batch of property listings is evaluated against a fixed set of financial
// assumptions (vacancy, maintenance, capital expenditure reserve, purchase
// costs, loan-to-value, loan term and an interest rate stress). Each listing
// produces a scored record with:
//   - Income and costs: annual rent, vacancy loss, operating costs and the
//     net operating income (NOI).
//   - Financing: loan amount, investor equity, stressed interest rate and the
//     annual debt service of a level-payment amortizing loan at that rate.
//   - Ratios: gross and net yields, the stress-tested cash-on-cash return and
//     the debt service coverage ratio (DSCR).
//   - A signal: BUY, WATCH or AVOID.
//
// The computation is a pure per-row transformation: the same listings and
// assumptions always produce the same records, and a faulty row never hides
// the results of the others.
//
// This package serves as the foundational logic for the `rck` command-line
// tool, which adds the tabular input/output, the markdown report and the
// documentation topics.
package rentcheck
