// Package sampler places search-team positions inside a bounding region
// under minimum-distance constraints, by rejection sampling with a
// bounded attempt budget.
package sampler

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarops-data/fieldsim/internal/geo"
)

// Config describes one placement run.
type Config struct {
	// N is the number of points to place. Zero is allowed and places
	// nothing without consuming the attempt budget.
	N int
	// Bounds is the rectangle candidates are drawn from uniformly.
	Bounds geo.Bounds
	// Anchor is the beacon position every point must keep clear of.
	Anchor geo.Point
	// MinAnchorDistanceM rejects candidates closer than this to Anchor.
	MinAnchorDistanceM float64
	// MinPairwiseDistanceM rejects candidates closer than this to any
	// previously accepted point.
	MinPairwiseDistanceM float64
	// MaxAttempts is the total candidate-draw budget. Every draw
	// consumes one attempt, accepted or not.
	MaxAttempts int
}

// ExhaustedError reports that the attempt budget ran out before N
// points were placed. The run is fatal; no partial dataset is emitted.
type ExhaustedError struct {
	Requested int
	Placed    int
	Attempts  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("sampler: placed %d of %d points after %d attempts", e.Placed, e.Requested, e.Attempts)
}

// Sample draws points from rng until cfg.N have been accepted or the
// attempt budget is spent. Output is fully reproducible for a given
// seeded rng: each candidate costs exactly one latitude and one
// longitude draw, in that order.
func Sample(rng *rand.Rand, cfg Config) ([]geo.Point, error) {
	if cfg.N < 0 {
		return nil, fmt.Errorf("sampler: negative point count %d", cfg.N)
	}
	if err := cfg.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	if cfg.N == 0 {
		return []geo.Point{}, nil
	}
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("sampler: attempt budget must be positive, got %d", cfg.MaxAttempts)
	}

	latDist := distuv.Uniform{Min: cfg.Bounds.LatMin, Max: cfg.Bounds.LatMax, Src: rng}
	lonDist := distuv.Uniform{Min: cfg.Bounds.LonMin, Max: cfg.Bounds.LonMax, Src: rng}

	points := make([]geo.Point, 0, cfg.N)
	attempts := 0
	for len(points) < cfg.N && attempts < cfg.MaxAttempts {
		attempts++
		candidate := geo.Point{Lat: latDist.Rand(), Lon: lonDist.Rand()}

		if geo.DistanceMeters(candidate, cfg.Anchor) < cfg.MinAnchorDistanceM {
			continue
		}
		tooClose := false
		for _, p := range points {
			if geo.DistanceMeters(candidate, p) < cfg.MinPairwiseDistanceM {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		points = append(points, candidate)
	}

	if len(points) < cfg.N {
		return nil, &ExhaustedError{Requested: cfg.N, Placed: len(points), Attempts: attempts}
	}
	return points, nil
}
