package rentcheck

import (
	"cmp"
	"slices"
)

// Result is the outcome of the evaluation of one input row.
//
// Scored is nil when the row cannot be scored at all (Err is then a
// *MissingFieldError, *FieldError or *ConfigError). For a singular row both
// Scored and Err (a *SingularityError) are set.
type Result struct {
	Row      int // 0-based position in the input
	Property Property
	Scored   *Scored
	Err      error
}

// OK reports whether the row was scored without any undefined metric.
func (r Result) OK() bool { return r.Scored != nil && r.Err == nil }

// Evaluate scores every property under the assumptions a.
//
// Invalid assumptions fail the whole batch. Otherwise it returns exactly one
// Result per property, in input order; a faulty row does not stop the others.
func Evaluate(props []Property, a Assumptions) ([]Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, len(props))
	for i, p := range props {
		results[i] = evaluate(i, p, a)
	}
	return results, nil
}

func evaluate(row int, p Property, a Assumptions) Result {
	r := Result{Row: row, Property: p}
	s, err := Derive(p, a)
	r.Err = err
	if err == nil || IsSingular(err) {
		r.Scored = &s
	}
	return r
}

// SortByScore sorts results by decreasing cash-on-cash return. Undefined
// returns come after the defined ones, and rows that could not be scored
// come last. The sort is stable.
func SortByScore(results []Result) {
	rank := func(r Result) int {
		switch {
		case r.Scored == nil:
			return 2
		case r.Scored.SCoC.IsFinite():
			return 0
		default:
			return 1
		}
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		if rank(a) != 0 {
			return 0
		}
		return cmp.Compare(b.Scored.SCoC, a.Scored.SCoC)
	})
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Rows     int
	Scored   int // including singular rows
	Singular int
	Failed   int
	Signals  map[Signal]int
	Best     *Result // highest defined cash-on-cash return, if any
}

// Summarize counts results by outcome and signal.
func Summarize(results []Result) Summary {
	s := Summary{Rows: len(results), Signals: make(map[Signal]int)}
	for i, r := range results {
		if r.Scored == nil {
			s.Failed++
			continue
		}
		s.Scored++
		if r.Err != nil {
			s.Singular++
		}
		s.Signals[r.Scored.Signal]++
		if !r.Scored.SCoC.IsFinite() {
			continue
		}
		if s.Best == nil || r.Scored.SCoC > s.Best.Scored.SCoC {
			s.Best = &results[i]
		}
	}
	return s
}
