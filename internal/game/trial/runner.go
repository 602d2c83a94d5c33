// Package trial repeats attack resolutions to estimate a damage distribution.
package trial

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/attackroll/internal/game/attack"
)

// ErrInvalidTrialCount indicates a trial count below one.
var ErrInvalidTrialCount = errors.New("trial: trial count must be >= 1")

// Distribution maps a total damage value to the number of trials that
// produced it. Only totals that occurred are present.
type Distribution map[int]int

// Total returns the number of trials recorded.
func (d Distribution) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Keys returns the damage values in ascending order.
func (d Distribution) Keys() []int {
	keys := make([]int, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Mean returns the average damage per trial, or 0 for an empty distribution.
func (d Distribution) Mean() float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for k, c := range d {
		sum += k * c
	}
	return float64(sum) / float64(total)
}

// Mode returns the most frequent damage value; ties go to the smaller value.
//
// Precondition: d must be non-empty.
func (d Distribution) Mode() int {
	best, bestCount := 0, -1
	for _, k := range d.Keys() {
		if d[k] > bestCount {
			best, bestCount = k, d[k]
		}
	}
	return best
}

// Run resolves every attack once per trial, sums their damage and counts the
// totals. Start and finish are logged at info to the resolver's logger.
//
// Precondition: resolver must be non-nil.
// Postcondition: on success the returned Distribution has Total() == trials.
func Run(attacks []attack.Formula, resolver *attack.Resolver, opts attack.Options, trials int) (Distribution, error) {
	if len(attacks) == 0 {
		return nil, attack.ErrNoAttacks
	}
	if trials < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTrialCount, trials)
	}

	logger := resolver.Logger()
	start := time.Now()
	logger.Info("running trials",
		zap.Int("attacks", len(attacks)),
		zap.Int("trials", trials),
	)

	dist := make(Distribution)
	for i := 0; i < trials; i++ {
		total := 0
		for _, f := range attacks {
			total += resolver.Resolve(f, opts).DamageRoll
		}
		dist[total]++
	}

	logger.Info("trials complete",
		zap.Int("trials", dist.Total()),
		zap.Int("distinct_totals", len(dist)),
		zap.Float64("mean", dist.Mean()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return dist, nil
}
