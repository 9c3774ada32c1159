// Package propagation models radio signal propagation between a beacon
// and a search team: terrain line-of-sight analysis over a DEM profile
// and a free-space path-loss model with additive dB-domain noise.
package propagation

import (
	"fmt"

	"github.com/sarops-data/fieldsim/internal/geo"
	"github.com/sarops-data/fieldsim/internal/terrain"
)

// DefaultPathSamples is the number of points interpolated along a
// transmitter-receiver path when the caller does not choose one.
const DefaultPathSamples = 100

// LineOfSight samples the straight path between transmitter and
// receiver at numSamples evenly spaced points, comparing the terrain
// elevation against the interpolated sight-line elevation.
//
// The returned obstruction is the worst single terrain intrusion along
// the path in meters, not a cumulative sum over multiple ridges. clear
// is true iff the obstruction is exactly zero.
func LineOfSight(dem *terrain.Raster, tx geo.Point, txElev float64, rx geo.Point, rxElev float64, numSamples int) (clear bool, obstructionM float64, err error) {
	if numSamples < 2 {
		return false, 0, fmt.Errorf("propagation: need at least 2 path samples, got %d", numSamples)
	}

	n := float64(numSamples - 1)
	for i := 0; i < numSamples; i++ {
		t := float64(i) / n
		p := geo.Point{
			Lat: tx.Lat + t*(rx.Lat-tx.Lat),
			Lon: tx.Lon + t*(rx.Lon-tx.Lon),
		}
		sightElev := txElev + t*(rxElev-txElev)

		ground, err := dem.ElevationAt(p)
		if err != nil {
			return false, 0, err
		}
		if intrusion := ground - sightElev; intrusion > obstructionM {
			obstructionM = intrusion
		}
	}
	return obstructionM == 0, obstructionM, nil
}
