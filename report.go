package rentcheck

import (
	"time"

	"github.com/google/uuid"
)

// Report is one evaluation run: the assumptions and the results ranked by
// cash-on-cash return.
type Report struct {
	ID          string
	Created     time.Time
	Assumptions Assumptions
	Results     []Result
}

// NewReport evaluates props under a and ranks the results.
func NewReport(props []Property, a Assumptions) (*Report, error) {
	results, err := Evaluate(props, a)
	if err != nil {
		return nil, err
	}
	SortByScore(results)
	return &Report{
		ID:          uuid.NewString(),
		Created:     time.Now(),
		Assumptions: a,
		Results:     results,
	}, nil
}

// Summary counts the report results.
func (r *Report) Summary() Summary { return Summarize(r.Results) }

// Top returns at most n best ranked results. n <= 0 returns them all.
func (r *Report) Top(n int) []Result {
	if n <= 0 || n > len(r.Results) {
		return r.Results
	}
	return r.Results[:n]
}

// Failures returns the results that were not scored or have undefined metrics.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
