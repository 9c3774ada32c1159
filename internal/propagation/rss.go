package propagation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarops-data/fieldsim/internal/geo"
	"github.com/sarops-data/fieldsim/internal/terrain"
)

// DefaultNoiseSigmaDB is the standard deviation of the additive
// Gaussian receiver noise in dB.
const DefaultNoiseSigmaDB = 2.0

// Result is the outcome of one RSS computation. When SNR falls below
// zero the signal is undetectable: Valid is false and SignalDBm must
// not be used. ObstructionM and SNRdB are always populated.
type Result struct {
	SignalDBm    float64
	Valid        bool
	ObstructionM float64
	SNRdB        float64
}

// Model holds the tunable propagation parameters for one batch. They
// vary per batch profile to emulate different equipment and conditions.
type Model struct {
	BaseStrengthDBm float64
	AttenuationK    float64
	NoiseFloorDBm   float64
	NoiseSigmaDB    float64
	PathSamples     int
}

// ComputeRSS computes the received signal strength at the receiver from
// the transmitter over the given DEM:
//
//	raw = base - 20*log10(distance_m) + penalty + noise
//
// where penalty is -k * obstruction when the line of sight is blocked
// and noise is drawn from N(0, sigma) on rng. A zero-distance pair is a
// caller error. Terrain lookup failures propagate unchanged.
func (m Model) ComputeRSS(rng *rand.Rand, dem *terrain.Raster, tx geo.Point, txElev float64, rx geo.Point, rxElev float64) (Result, error) {
	distance := geo.DistanceMeters(tx, rx)
	if distance <= 0 {
		return Result{}, fmt.Errorf("propagation: zero-distance transmitter/receiver pair at (%.5f, %.5f)", tx.Lat, tx.Lon)
	}

	samples := m.PathSamples
	if samples == 0 {
		samples = DefaultPathSamples
	}
	clear, obstruction, err := LineOfSight(dem, tx, txElev, rx, rxElev, samples)
	if err != nil {
		return Result{}, err
	}

	pathLoss := 20 * math.Log10(distance)
	var penalty float64
	if !clear {
		penalty = -m.AttenuationK * obstruction
	}

	// Sigma zero still consumes one draw so that zero-noise profiles
	// keep the same stream positions as noisy ones.
	noise := distuv.Normal{Mu: 0, Sigma: m.NoiseSigmaDB, Src: rng}.Rand()

	raw := m.BaseStrengthDBm - pathLoss + penalty + noise
	res := Result{
		ObstructionM: obstruction,
		SNRdB:        raw - m.NoiseFloorDBm,
	}
	if res.SNRdB >= 0 {
		res.SignalDBm = raw
		res.Valid = true
	}
	return res, nil
}
