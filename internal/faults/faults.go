// Package faults corrupts clean field reports to emulate sensor noise
// and data-entry errors. Corruption is described as a small rule set
// evaluated in a fixed order: a windowed catastrophic override first,
// then independent per-field probabilistic rules. The two classes are
// mutually exclusive per report; when the window fires the field rules
// are skipped.
package faults

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sarops-data/fieldsim/internal/report"
)

// WindowedOverride invalidates whole-record telemetry for reports whose
// timestamp falls inside the closed interval [From, To], simulating an
// environmental event such as a solar storm.
type WindowedOverride struct {
	From time.Time
	To   time.Time

	// SignalToken replaces the signal strength with malformed text.
	SignalToken string
	// WindSentinelDeg replaces the wind direction with an out-of-range
	// numeric sentinel.
	WindSentinelDeg float64
	// BatteryMin/BatteryMax bound the out-of-range integer interval
	// [BatteryMin, BatteryMax) the battery level is drawn from.
	BatteryMin int
	BatteryMax int
}

// Covers reports whether t falls inside the closed corruption window.
func (w *WindowedOverride) Covers(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func (w *WindowedOverride) apply(rng *rand.Rand, r *report.FieldReport) {
	r.SignalStrength = report.Token(w.SignalToken)
	r.WindDirectionDeg = report.Num(w.WindSentinelDeg)
	r.BatteryPercent = report.Num(float64(w.BatteryMin + rng.IntN(w.BatteryMax-w.BatteryMin)))
}

// FieldProbability corrupts individual fields with independent
// Bernoulli draws. Every field consumes exactly one probability draw
// per report regardless of configuration, keeping random streams
// aligned across rule changes.
type FieldProbability struct {
	// CallsignProb replaces the callsign with a near-duplicate
	// misspelling from CallsignPool.
	CallsignProb float64
	CallsignPool []string
	// SignalNullProb nulls out the signal strength.
	SignalNullProb float64
	// WindTokenProb replaces the wind direction with a placeholder
	// token from WindTokens.
	WindTokenProb float64
	WindTokens    []string
	// BatteryNullProb nulls out the battery level.
	BatteryNullProb float64
}

func (f *FieldProbability) apply(rng *rand.Rand, r *report.FieldReport) {
	if rng.Float64() < f.CallsignProb {
		r.Callsign = f.CallsignPool[rng.IntN(len(f.CallsignPool))]
	}
	if rng.Float64() < f.SignalNullProb {
		r.SignalStrength = report.Nulled()
	}
	if rng.Float64() < f.WindTokenProb {
		r.WindDirectionDeg = report.Token(f.WindTokens[rng.IntN(len(f.WindTokens))])
	}
	if rng.Float64() < f.BatteryNullProb {
		r.BatteryPercent = report.Nulled()
	}
}

// Plan is the corruption configuration for one batch. The zero value
// performs no corruption.
type Plan struct {
	Window *WindowedOverride
	Fields *FieldProbability
}

// Validate checks probabilities, intervals and pools before a run.
func (p Plan) Validate() error {
	if w := p.Window; w != nil {
		if w.To.Before(w.From) {
			return fmt.Errorf("faults: corruption window ends %v before it starts %v", w.To, w.From)
		}
		if w.BatteryMax <= w.BatteryMin {
			return fmt.Errorf("faults: battery outlier interval [%d, %d) is empty", w.BatteryMin, w.BatteryMax)
		}
	}
	if f := p.Fields; f != nil {
		probs := []struct {
			name string
			v    float64
		}{
			{"callsign", f.CallsignProb},
			{"signal", f.SignalNullProb},
			{"wind", f.WindTokenProb},
			{"battery", f.BatteryNullProb},
		}
		for _, pr := range probs {
			if pr.v < 0 || pr.v > 1 {
				return fmt.Errorf("faults: %s probability %v outside [0, 1]", pr.name, pr.v)
			}
		}
		if f.CallsignProb > 0 && len(f.CallsignPool) == 0 {
			return fmt.Errorf("faults: callsign corruption enabled with empty pool")
		}
		if f.WindTokenProb > 0 && len(f.WindTokens) == 0 {
			return fmt.Errorf("faults: wind corruption enabled with empty token set")
		}
	}
	return nil
}

// Apply runs the rule set over reports in order, mutating each report
// at most once. It is deterministic for a given seeded rng.
func (p Plan) Apply(rng *rand.Rand, reports []report.FieldReport) {
	for i := range reports {
		r := &reports[i]
		if p.Window != nil && p.Window.Covers(r.Timestamp) {
			p.Window.apply(rng, r)
			continue
		}
		if p.Fields != nil {
			p.Fields.apply(rng, r)
		}
	}
}
