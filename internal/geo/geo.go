// Package geo provides WGS84 coordinate types and great-circle distance
// calculations for the simulation engine.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusM is the mean Earth radius in meters used for all
// great-circle distance calculations.
const EarthRadiusM = 6371000.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceMeters returns the great-circle distance between a and b in
// meters, computed with the haversine formula on the mean Earth radius.
func DistanceMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bounds is a latitude/longitude rectangle.
type Bounds struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains reports whether p lies inside the rectangle (edges included).
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.LatMin && p.Lat <= b.LatMax &&
		p.Lon >= b.LonMin && p.Lon <= b.LonMax
}

// Validate checks that the rectangle is well formed and within the
// valid coordinate ranges.
func (b Bounds) Validate() error {
	if b.LatMin >= b.LatMax {
		return fmt.Errorf("bounds: lat_min %v must be below lat_max %v", b.LatMin, b.LatMax)
	}
	if b.LonMin >= b.LonMax {
		return fmt.Errorf("bounds: lon_min %v must be below lon_max %v", b.LonMin, b.LonMax)
	}
	if b.LatMin < -90 || b.LatMax > 90 {
		return fmt.Errorf("bounds: latitude range [%v, %v] outside [-90, 90]", b.LatMin, b.LatMax)
	}
	if b.LonMin < -180 || b.LonMax > 180 {
		return fmt.Errorf("bounds: longitude range [%v, %v] outside [-180, 180]", b.LonMin, b.LonMax)
	}
	return nil
}
