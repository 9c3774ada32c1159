// Package units provides shared distance conversions for mission
// configuration. Operational planning uses statute miles and feet;
// the engine works in meters.
package units

// Conversion constants
const (
	MetersPerMile = 1609.34
	MetersPerFoot = 0.3048
)

// MilesToMeters converts statute miles to meters.
func MilesToMeters(miles float64) float64 {
	return miles * MetersPerMile
}

// FeetToMeters converts feet to meters.
func FeetToMeters(feet float64) float64 {
	return feet * MetersPerFoot
}
