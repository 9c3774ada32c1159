package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
		tol  float64
	}{
		{
			name: "one degree of latitude at the equator",
			a:    Point{Lat: 0, Lon: 0},
			b:    Point{Lat: 1, Lon: 0},
			want: 111195, // 2*pi*R / 360
			tol:  1,
		},
		{
			name: "one degree of longitude at the equator",
			a:    Point{Lat: 0, Lon: 10},
			b:    Point{Lat: 0, Lon: 11},
			want: 111195,
			tol:  1,
		},
		{
			name: "sierra bounding box diagonal",
			a:    Point{Lat: 37.1, Lon: -119.4},
			b:    Point{Lat: 37.6, Lon: -118.8},
			want: 76000,
			tol:  2000,
		},
		{
			name: "identical points",
			a:    Point{Lat: 37.42, Lon: -119.05},
			b:    Point{Lat: 37.42, Lon: -119.05},
			want: 0,
			tol:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("DistanceMeters() = %v, want %v +/- %v", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := Point{Lat: 37.42, Lon: -119.05}
	b := Point{Lat: 37.35, Lon: -119.1}
	if d1, d2 := DistanceMeters(a, b), DistanceMeters(b, a); d1 != d2 {
		t.Errorf("distance not symmetric: %v != %v", d1, d2)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{LatMin: 37.1, LatMax: 37.6, LonMin: -119.4, LonMax: -118.8}

	if !b.Contains(Point{Lat: 37.42, Lon: -119.05}) {
		t.Error("interior point should be contained")
	}
	if !b.Contains(Point{Lat: 37.1, Lon: -119.4}) {
		t.Error("corner point should be contained")
	}
	if b.Contains(Point{Lat: 36.9, Lon: -119.05}) {
		t.Error("point south of box should not be contained")
	}
	if b.Contains(Point{Lat: 37.42, Lon: -120}) {
		t.Error("point west of box should not be contained")
	}
}

func TestBoundsValidate(t *testing.T) {
	good := Bounds{LatMin: 37.1, LatMax: 37.6, LonMin: -119.4, LonMax: -118.8}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid bounds rejected: %v", err)
	}

	bad := []Bounds{
		{LatMin: 37.6, LatMax: 37.1, LonMin: -119.4, LonMax: -118.8}, // inverted lat
		{LatMin: 37.1, LatMax: 37.6, LonMin: -118.8, LonMax: -119.4}, // inverted lon
		{LatMin: -95, LatMax: 37.6, LonMin: -119.4, LonMax: -118.8},  // lat out of range
		{LatMin: 37.1, LatMax: 37.6, LonMin: -119.4, LonMax: 185},    // lon out of range
	}
	for i, b := range bad {
		if err := b.Validate(); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, b)
		}
	}
}
