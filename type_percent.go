package rentcheck

import (
	"fmt"
	"math"
)

// Percent is a ratio already multiplied by 100: 4.16 means 4.16%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsFinite reports whether p is neither infinite nor NaN.
func (p Percent) IsFinite() bool { return isFinite(float64(p)) }

func (p Percent) String() string {
	if !p.IsFinite() {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	if !p.IsFinite() {
		return "n/a"
	}
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
