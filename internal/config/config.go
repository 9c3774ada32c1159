// Package config loads mission configuration from JSON files. The
// schema mirrors mission.Profile with pointer-typed optional fields so
// partial configs are safe: fields omitted from the file keep the
// built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sarops-data/fieldsim/internal/faults"
	"github.com/sarops-data/fieldsim/internal/mission"
	"github.com/sarops-data/fieldsim/internal/report"
)

// Mission is the root configuration: shared input/output settings plus
// one entry per batch profile.
type Mission struct {
	DEMPath         *string   `json:"dem_path,omitempty"`
	OutputDir       *string   `json:"output_dir,omitempty"`
	IncludeBlockage *bool     `json:"include_blockage,omitempty"`
	Profiles        []Profile `json:"profiles"`
}

// Profile overrides mission.Default. All fields are optional.
type Profile struct {
	Name *string `json:"name,omitempty"`

	LatMin *float64 `json:"lat_min,omitempty"`
	LatMax *float64 `json:"lat_max,omitempty"`
	LonMin *float64 `json:"lon_min,omitempty"`
	LonMax *float64 `json:"lon_max,omitempty"`

	Teams                *int     `json:"teams,omitempty"`
	BeaconLat            *float64 `json:"beacon_lat,omitempty"`
	BeaconLon            *float64 `json:"beacon_lon,omitempty"`
	MinBeaconDistanceM   *float64 `json:"min_beacon_distance_m,omitempty"`
	MinTeamDistanceM     *float64 `json:"min_team_distance_m,omitempty"`
	MaxPlacementAttempts *int     `json:"max_placement_attempts,omitempty"`

	CallsignPrefix *string  `json:"callsign_prefix,omitempty"`
	AGLOffsetM     *float64 `json:"agl_offset_m,omitempty"`
	CeilingM       *float64 `json:"ceiling_m,omitempty"`

	BaseStrengthDBm *float64 `json:"base_strength_dbm,omitempty"`
	AttenuationK    *float64 `json:"attenuation_k,omitempty"`
	NoiseFloorDBm   *float64 `json:"noise_floor_dbm,omitempty"`
	NoiseSigmaDB    *float64 `json:"noise_sigma_db,omitempty"`
	PathSamples     *int     `json:"path_samples,omitempty"`

	Start          *string `json:"start,omitempty"` // report.TimestampLayout
	StepMinSeconds *int    `json:"step_min_seconds,omitempty"`
	StepMaxSeconds *int    `json:"step_max_seconds,omitempty"`
	ReportIDOffset *int64  `json:"report_id_offset,omitempty"`

	TempMeanC     *float64 `json:"temp_mean_c,omitempty"`
	TempSigmaC    *float64 `json:"temp_sigma_c,omitempty"`
	BatteryMinPct *float64 `json:"battery_min_pct,omitempty"`
	BatteryMaxPct *float64 `json:"battery_max_pct,omitempty"`

	// Corruption replaces the default plan entirely when present; an
	// empty object therefore disables corruption for a clean batch.
	Corruption *Corruption `json:"corruption,omitempty"`

	Seed *uint64 `json:"seed,omitempty"`
}

// Corruption mirrors faults.Plan.
type Corruption struct {
	Window *Window `json:"window,omitempty"`
	Fields *Fields `json:"fields,omitempty"`
}

// Window mirrors faults.WindowedOverride.
type Window struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	SignalToken     string  `json:"signal_token"`
	WindSentinelDeg float64 `json:"wind_sentinel_deg"`
	BatteryMin      int     `json:"battery_min"`
	BatteryMax      int     `json:"battery_max"`
}

// Fields mirrors faults.FieldProbability.
type Fields struct {
	CallsignProb    float64  `json:"callsign_prob"`
	CallsignPool    []string `json:"callsign_pool,omitempty"`
	SignalNullProb  float64  `json:"signal_null_prob"`
	WindTokenProb   float64  `json:"wind_token_prob"`
	WindTokens      []string `json:"wind_tokens,omitempty"`
	BatteryNullProb float64  `json:"battery_null_prob"`
}

// maxFileSize caps config reads at 1MB for safety.
const maxFileSize = 1 * 1024 * 1024

// Load reads and decodes a mission config file. The file must have a
// .json extension and stay under the size cap.
func Load(path string) (*Mission, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var m Mission
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(m.Profiles) == 0 {
		return nil, fmt.Errorf("config file %s defines no profiles", cleanPath)
	}
	return &m, nil
}

// Apply overlays the file profile onto base and returns the result.
func (pc Profile) Apply(base mission.Profile) (mission.Profile, error) {
	p := base

	setString(&p.Name, pc.Name)
	setFloat(&p.Bounds.LatMin, pc.LatMin)
	setFloat(&p.Bounds.LatMax, pc.LatMax)
	setFloat(&p.Bounds.LonMin, pc.LonMin)
	setFloat(&p.Bounds.LonMax, pc.LonMax)
	setInt(&p.Teams, pc.Teams)
	setFloat(&p.Beacon.Lat, pc.BeaconLat)
	setFloat(&p.Beacon.Lon, pc.BeaconLon)
	setFloat(&p.MinBeaconDistanceM, pc.MinBeaconDistanceM)
	setFloat(&p.MinTeamDistanceM, pc.MinTeamDistanceM)
	setInt(&p.MaxPlacementAttempts, pc.MaxPlacementAttempts)
	setString(&p.CallsignPrefix, pc.CallsignPrefix)
	setFloat(&p.AGLOffsetM, pc.AGLOffsetM)
	setFloat(&p.CeilingM, pc.CeilingM)
	setFloat(&p.BaseStrengthDBm, pc.BaseStrengthDBm)
	setFloat(&p.AttenuationK, pc.AttenuationK)
	setFloat(&p.NoiseFloorDBm, pc.NoiseFloorDBm)
	setFloat(&p.NoiseSigmaDB, pc.NoiseSigmaDB)
	setInt(&p.PathSamples, pc.PathSamples)

	if pc.Start != nil {
		t, err := time.Parse(report.TimestampLayout, *pc.Start)
		if err != nil {
			return p, fmt.Errorf("bad start time %q: %w", *pc.Start, err)
		}
		p.Start = t
	}
	if pc.StepMinSeconds != nil {
		p.StepMin = time.Duration(*pc.StepMinSeconds) * time.Second
	}
	if pc.StepMaxSeconds != nil {
		p.StepMax = time.Duration(*pc.StepMaxSeconds) * time.Second
	}
	if pc.ReportIDOffset != nil {
		p.ReportIDOffset = *pc.ReportIDOffset
	}
	setFloat(&p.TempMeanC, pc.TempMeanC)
	setFloat(&p.TempSigmaC, pc.TempSigmaC)
	setFloat(&p.BatteryMinPct, pc.BatteryMinPct)
	setFloat(&p.BatteryMaxPct, pc.BatteryMaxPct)

	if pc.Corruption != nil {
		plan, err := pc.Corruption.toPlan()
		if err != nil {
			return p, err
		}
		p.Corruption = plan
	}
	if pc.Seed != nil {
		p.Seed = *pc.Seed
	}
	return p, nil
}

func (c Corruption) toPlan() (faults.Plan, error) {
	var plan faults.Plan
	if w := c.Window; w != nil {
		from, err := time.Parse(report.TimestampLayout, w.From)
		if err != nil {
			return plan, fmt.Errorf("bad corruption window start %q: %w", w.From, err)
		}
		to, err := time.Parse(report.TimestampLayout, w.To)
		if err != nil {
			return plan, fmt.Errorf("bad corruption window end %q: %w", w.To, err)
		}
		plan.Window = &faults.WindowedOverride{
			From:            from,
			To:              to,
			SignalToken:     w.SignalToken,
			WindSentinelDeg: w.WindSentinelDeg,
			BatteryMin:      w.BatteryMin,
			BatteryMax:      w.BatteryMax,
		}
	}
	if f := c.Fields; f != nil {
		plan.Fields = &faults.FieldProbability{
			CallsignProb:    f.CallsignProb,
			CallsignPool:    f.CallsignPool,
			SignalNullProb:  f.SignalNullProb,
			WindTokenProb:   f.WindTokenProb,
			WindTokens:      f.WindTokens,
			BatteryNullProb: f.BatteryNullProb,
		}
	}
	return plan, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
