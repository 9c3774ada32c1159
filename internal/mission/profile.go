// Package mission orchestrates one simulated search batch: team
// placement, terrain-aware signal propagation, ancillary sensor
// synthesis and the final fault-injection pass.
package mission

import (
	"errors"
	"fmt"
	"time"

	"github.com/sarops-data/fieldsim/internal/faults"
	"github.com/sarops-data/fieldsim/internal/geo"
	"github.com/sarops-data/fieldsim/internal/propagation"
	"github.com/sarops-data/fieldsim/internal/units"
)

// ErrInvalidConfig marks a profile rejected before any simulation work.
// Wrapped errors carry the specific failure.
var ErrInvalidConfig = errors.New("invalid mission profile")

// Profile is the full configuration surface for one batch.
type Profile struct {
	Name string

	// Placement
	Bounds               geo.Bounds
	Teams                int
	Beacon               geo.Point
	MinBeaconDistanceM   float64
	MinTeamDistanceM     float64
	MaxPlacementAttempts int

	// Flight
	CallsignPrefix string
	AGLOffsetM     float64
	CeilingM       float64

	// Propagation; these vary per batch to emulate different
	// equipment and conditions.
	BaseStrengthDBm float64
	AttenuationK    float64
	NoiseFloorDBm   float64
	NoiseSigmaDB    float64
	PathSamples     int

	// Timestamps: reports start at Start and advance by a step drawn
	// once per run, uniformly from [StepMin, StepMax] at one-second
	// granularity.
	Start   time.Time
	StepMin time.Duration
	StepMax time.Duration

	// ReportIDOffset shifts sequential report ids so batches can be
	// concatenated without collisions.
	ReportIDOffset int64

	// Ancillary sensors
	TempMeanC     float64
	TempSigmaC    float64
	BatteryMinPct float64
	BatteryMaxPct float64

	Corruption faults.Plan

	// Seed drives the run's single-owner random source.
	Seed uint64
}

// Default returns the canonical first-day search profile over the
// Sierra National Forest.
func Default() Profile {
	day1 := time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)
	return Profile{
		Name:                 "field_reports_batch_1",
		Bounds:               geo.Bounds{LatMin: 37.1, LatMax: 37.6, LonMin: -119.4, LonMax: -118.8},
		Teams:                200,
		Beacon:               geo.Point{Lat: 37.42, Lon: -119.05},
		MinBeaconDistanceM:   units.MilesToMeters(1),
		MinTeamDistanceM:     units.MilesToMeters(1.25),
		MaxPlacementAttempts: 15000,
		CallsignPrefix:       "TEAM",
		AGLOffsetM:           120, // roughly 400 ft AGL
		CeilingM:             4000,
		BaseStrengthDBm:      -30,
		AttenuationK:         0.15,
		NoiseFloorDBm:        -120,
		NoiseSigmaDB:         propagation.DefaultNoiseSigmaDB,
		PathSamples:          propagation.DefaultPathSamples,
		Start:                day1.Add(6 * time.Hour),
		StepMin:              1 * time.Minute,
		StepMax:              10 * time.Minute,
		ReportIDOffset:       0,
		TempMeanC:            25,
		TempSigmaC:           5,
		BatteryMinPct:        20,
		BatteryMaxPct:        100,
		Corruption: faults.Plan{
			Window: &faults.WindowedOverride{
				From:            day1.Add(8 * time.Hour),
				To:              day1.Add(9*time.Hour + 30*time.Minute),
				SignalToken:     "ERR-&^%",
				WindSentinelDeg: -999,
				BatteryMin:      150,
				BatteryMax:      300,
			},
			Fields: &faults.FieldProbability{
				CallsignProb:    0.1,
				CallsignPool:    []string{"Alpha", "alfa", "bravo"},
				SignalNullProb:  0.05,
				WindTokenProb:   0.05,
				WindTokens:      []string{"?", "N/A", ""},
				BatteryNullProb: 0.05,
			},
		},
		Seed: 101,
	}
}

// Validate checks the profile before any simulation work starts.
func (p Profile) Validate() error {
	fail := func(format string, v ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, v...))
	}

	if p.Teams < 0 {
		return fail("team count %d is negative", p.Teams)
	}
	if err := p.Bounds.Validate(); err != nil {
		return fail("%v", err)
	}
	if p.Teams > 0 && p.MaxPlacementAttempts <= 0 {
		return fail("placement attempt budget %d must be positive", p.MaxPlacementAttempts)
	}
	if p.MinBeaconDistanceM < 0 || p.MinTeamDistanceM < 0 {
		return fail("minimum distances must not be negative")
	}
	if p.AGLOffsetM < 0 {
		return fail("AGL offset %v must not be negative", p.AGLOffsetM)
	}
	if p.CeilingM <= 0 {
		return fail("operational ceiling %v must be positive", p.CeilingM)
	}
	if p.NoiseSigmaDB < 0 {
		return fail("noise sigma %v must not be negative", p.NoiseSigmaDB)
	}
	if p.PathSamples < 2 {
		return fail("path sample count %d must be at least 2", p.PathSamples)
	}
	if p.Start.IsZero() {
		return fail("start time is required")
	}
	if p.StepMin <= 0 {
		return fail("timestamp step lower bound %v must be positive", p.StepMin)
	}
	if p.StepMax < p.StepMin {
		return fail("timestamp step range [%v, %v] is inverted", p.StepMin, p.StepMax)
	}
	if p.TempSigmaC < 0 {
		return fail("temperature sigma %v must not be negative", p.TempSigmaC)
	}
	if p.BatteryMaxPct < p.BatteryMinPct {
		return fail("battery range [%v, %v] is inverted", p.BatteryMinPct, p.BatteryMaxPct)
	}
	if err := p.Corruption.Validate(); err != nil {
		return fail("%v", err)
	}
	return nil
}
