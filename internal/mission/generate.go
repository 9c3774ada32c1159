package mission

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarops-data/fieldsim/internal/monitoring"
	"github.com/sarops-data/fieldsim/internal/propagation"
	"github.com/sarops-data/fieldsim/internal/report"
	"github.com/sarops-data/fieldsim/internal/sampler"
	"github.com/sarops-data/fieldsim/internal/terrain"
)

// NewRand returns a run-scoped random source for the given seed. One
// source per run, never shared across runs.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// GenerateBatch produces the ordered report sequence for one profile.
//
// The draw order on rng is fixed and documented for reproducibility:
// placement candidates (lat, lon per attempt), then the timestamp step,
// then per team noise, wind, temperature, battery, and finally the
// fault-injection pass in report order. Same seed and profile yield an
// identical batch.
func GenerateBatch(rng *rand.Rand, dem *terrain.Raster, p Profile) ([]report.FieldReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	points, err := sampler.Sample(rng, sampler.Config{
		N:                    p.Teams,
		Bounds:               p.Bounds,
		Anchor:               p.Beacon,
		MinAnchorDistanceM:   p.MinBeaconDistanceM,
		MinPairwiseDistanceM: p.MinTeamDistanceM,
		MaxAttempts:          p.MaxPlacementAttempts,
	})
	if err != nil {
		return nil, err
	}

	beaconElev, err := dem.ElevationAt(p.Beacon)
	if err != nil {
		return nil, fmt.Errorf("beacon elevation: %w", err)
	}

	// One step per run: whole seconds, closed interval.
	stepSpan := int64((p.StepMax - p.StepMin) / time.Second)
	step := p.StepMin + time.Duration(rng.Int64N(stepSpan+1))*time.Second

	model := propagation.Model{
		BaseStrengthDBm: p.BaseStrengthDBm,
		AttenuationK:    p.AttenuationK,
		NoiseFloorDBm:   p.NoiseFloorDBm,
		NoiseSigmaDB:    p.NoiseSigmaDB,
		PathSamples:     p.PathSamples,
	}
	windDist := distuv.Uniform{Min: 0, Max: 360, Src: rng}
	tempDist := distuv.Normal{Mu: p.TempMeanC, Sigma: p.TempSigmaC, Src: rng}
	battDist := distuv.Uniform{Min: p.BatteryMinPct, Max: p.BatteryMaxPct, Src: rng}

	reports := make([]report.FieldReport, 0, len(points))
	for i, pt := range points {
		ground, err := dem.ElevationAt(pt)
		if err != nil {
			return nil, fmt.Errorf("team %d elevation: %w", i+1, err)
		}
		flightElev := math.Min(ground+p.AGLOffsetM, p.CeilingM)

		res, err := model.ComputeRSS(rng, dem, p.Beacon, beaconElev, pt, flightElev)
		if err != nil {
			return nil, fmt.Errorf("team %d propagation: %w", i+1, err)
		}

		signal := report.BelowFloor()
		if res.Valid {
			signal = report.Num(res.SignalDBm)
		}

		reports = append(reports, report.FieldReport{
			ReportID:         p.ReportIDOffset + int64(i) + 1,
			Timestamp:        p.Start.Add(time.Duration(i) * step),
			Callsign:         fmt.Sprintf("%s%03d", p.CallsignPrefix, i+1),
			Latitude:         pt.Lat,
			Longitude:        pt.Lon,
			ElevationM:       flightElev,
			WindDirectionDeg: report.Num(windDist.Rand()),
			AmbientTempC:     tempDist.Rand(),
			BatteryPercent:   report.Num(battDist.Rand()),
			SignalStrength:   signal,
			BlockageM:        res.ObstructionM,
			SNRdB:            res.SNRdB,
		})
	}

	p.Corruption.Apply(rng, reports)

	monitoring.Logf("mission %s: generated %d reports (step %v, seed %d)",
		p.Name, len(reports), step, p.Seed)
	return reports, nil
}
