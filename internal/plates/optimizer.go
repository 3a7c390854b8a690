// Package plates decomposes a target barbell weight into a per-side plate
// configuration from a finite inventory.
package plates

import (
	"log/slog"
	"math"
	"sort"

	"github.com/myrjola/ironplan/internal/errors"
)

var (
	// ErrInvalidInput is returned when the target weight is below the bar.
	ErrInvalidInput = errors.NewSentinel("invalid input")
	// ErrNoFeasibleConfiguration is returned when no plate can be placed
	// toward the target.
	ErrNoFeasibleConfiguration = errors.NewSentinel("no feasible configuration")
)

// epsilon is the slack for exact-match classification of plate sums.
const epsilon = 0.01

// largePlateThreshold separates standard from large plates. The 45 itself is
// always usable; plates above it need the large-plate flag.
const largePlateThreshold = 45.0

// autoLargeTarget is the total weight above which large plates are allowed
// regardless of the flag.
const autoLargeTarget = 505.0

// Inventory maps plate weight to the total owned count. Plates load in
// symmetric pairs, so only count/2 of a denomination fits per side.
type Inventory map[float64]int

// Config describes the bar the plates go on.
type Config struct {
	BarWeight      float64
	CollarWeight   float64
	UseLargePlates bool
}

// PlateCount is one denomination in a load, with its per-side quantity.
type PlateCount struct {
	Weight          float64
	QuantityPerSide int
}

// LoadConfiguration is the result of a suggestion. Plates are sorted by
// descending weight. AchievedWeight includes the collar, which is additive
// and never part of the plate search.
type LoadConfiguration struct {
	TargetWeight   float64
	AchievedWeight float64
	BarWeight      float64
	CollarWeight   float64
	Plates         []PlateCount
	ExactMatch     bool
}

// Suggest finds the plate configuration reaching the target exactly when the
// inventory allows it, or the closest achievable weight below it otherwise.
func Suggest(target float64, cfg Config, inv Inventory) (LoadConfiguration, error) {
	perSide := (target - cfg.BarWeight) / 2
	if perSide < 0 {
		return LoadConfiguration{}, errors.Wrap(ErrInvalidInput, "target below bar weight",
			slog.Float64("target", target), slog.Float64("bar", cfg.BarWeight))
	}

	useLarge := cfg.UseLargePlates || target > autoLargeTarget
	counts, achievedPerSide := fill(perSide, useLarge, inv)

	remaining := perSide - achievedPerSide
	exact := remaining <= epsilon

	placed := 0
	for _, count := range counts {
		placed += count.QuantityPerSide
	}
	if placed == 0 && !exact {
		return LoadConfiguration{}, errors.Wrap(ErrNoFeasibleConfiguration, "no plates fit",
			slog.Float64("target", target))
	}

	return LoadConfiguration{
		TargetWeight:   target,
		AchievedWeight: cfg.BarWeight + 2*achievedPerSide + cfg.CollarWeight,
		BarWeight:      cfg.BarWeight,
		CollarWeight:   cfg.CollarWeight,
		Plates:         counts,
		ExactMatch:     exact,
	}, nil
}

// fill greedily loads one side of the bar. The 45s go on first; the
// remainder is covered by the other denominations in descending order,
// restricted to plates under 45 unless large plates are allowed.
func fill(perSide float64, useLarge bool, inv Inventory) ([]PlateCount, float64) {
	var counts []PlateCount
	achieved := 0.0
	remaining := perSide

	take := func(weight float64) {
		available := inv[weight] / 2
		wanted := int(math.Floor((remaining + epsilon) / weight))
		n := min(wanted, available)
		if n <= 0 {
			return
		}
		counts = append(counts, PlateCount{Weight: weight, QuantityPerSide: n})
		achieved += weight * float64(n)
		remaining -= weight * float64(n)
	}

	take(largePlateThreshold)

	denominations := make([]float64, 0, len(inv))
	for weight := range inv {
		if weight == largePlateThreshold {
			continue
		}
		if weight > largePlateThreshold && !useLarge {
			continue
		}
		denominations = append(denominations, weight)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(denominations)))
	for _, weight := range denominations {
		take(weight)
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].Weight > counts[j].Weight })
	return counts, achieved
}
