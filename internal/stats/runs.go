// Package stats implements the Wald–Wolfowitz run test for checking whether a
// 0/1 sequence is plausibly random.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// smallSampleSize is the length below which a 0.5 continuity correction is
// applied to the run count.
const smallSampleSize = 50

var (
	// ErrTooFewValues indicates a sequence shorter than two values.
	ErrTooFewValues = errors.New("stats: run test needs at least two values")
	// ErrNonBinary indicates a value other than 0 or 1.
	ErrNonBinary = errors.New("stats: run test values must be 0 or 1")
	// ErrDegenerateSequence indicates a sequence containing only one symbol.
	ErrDegenerateSequence = errors.New("stats: run test needs both 0 and 1 in the sequence")
	// ErrInvalidSignificance indicates a significance level outside (0, 1).
	ErrInvalidSignificance = errors.New("stats: significance level must be in (0, 1)")
)

// RunsResult is the outcome of a run test.
type RunsResult struct {
	Values            []int
	Runs              int
	Ones              int
	Zeros             int
	ExpectedRuns      float64
	Variance          float64
	Z                 float64
	PValue            float64
	SignificanceLevel float64
	// Random is true when the null hypothesis (the sequence is random) is not
	// rejected: PValue > SignificanceLevel.
	Random bool
}

// RunsTest runs a two-sided Wald–Wolfowitz test on values.
//
// Precondition: every value is 0 or 1; alpha is in (0, 1).
// Postcondition: 0 <= PValue <= 1.
func RunsTest(values []int, alpha float64) (RunsResult, error) {
	if !(alpha > 0 && alpha < 1) {
		return RunsResult{}, fmt.Errorf("%w: got %v", ErrInvalidSignificance, alpha)
	}
	if len(values) < 2 {
		return RunsResult{}, ErrTooFewValues
	}

	runs, ones := 0, 0
	for i, v := range values {
		if v != 0 && v != 1 {
			return RunsResult{}, fmt.Errorf("%w: got %d at position %d", ErrNonBinary, v, i)
		}
		ones += v
		if i == 0 || v != values[i-1] {
			runs++
		}
	}
	zeros := len(values) - ones
	if ones == 0 || zeros == 0 {
		return RunsResult{}, ErrDegenerateSequence
	}

	n := float64(len(values))
	npn := float64(ones) * float64(zeros)
	mean := 2*npn/n + 1
	variance := 2 * npn * (2*npn - n) / (n * n * (n - 1))

	diff := float64(runs) - mean
	if len(values) < smallSampleSize {
		switch {
		case diff > 0.5:
			diff -= 0.5
		case diff < -0.5:
			diff += 0.5
		default:
			diff = 0
		}
	}

	var z float64
	if variance > 0 {
		z = diff / math.Sqrt(variance)
	}
	p := math.Erfc(math.Abs(z) / math.Sqrt2)

	return RunsResult{
		Values:            append([]int(nil), values...),
		Runs:              runs,
		Ones:              ones,
		Zeros:             zeros,
		ExpectedRuns:      mean,
		Variance:          variance,
		Z:                 z,
		PValue:            p,
		SignificanceLevel: alpha,
		Random:            p > alpha,
	}, nil
}
