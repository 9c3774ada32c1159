// Command gen-dem writes a synthetic ESRI ASCII DEM so fieldsim can
// run without downloading real elevation data. Terrain is a base plain
// with a few Gaussian ridges placed from a seeded source.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand/v2"
	"os"

	"github.com/sarops-data/fieldsim/internal/terrain"
)

var (
	out       = flag.String("out", "data/sierra_dem.asc", "Output path")
	latMin    = flag.Float64("lat-min", 37.0, "Southern edge (degrees)")
	latMax    = flag.Float64("lat-max", 37.7, "Northern edge (degrees)")
	lonMin    = flag.Float64("lon-min", -119.5, "Western edge (degrees)")
	lonMax    = flag.Float64("lon-max", -118.7, "Eastern edge (degrees)")
	cellSize  = flag.Float64("cell", 0.005, "Cell size (degrees)")
	baseElev  = flag.Float64("base", 1400, "Base plain elevation (m)")
	ridges    = flag.Int("ridges", 6, "Number of Gaussian ridges")
	amplitude = flag.Float64("amplitude", 1600, "Maximum ridge height above base (m)")
	spread    = flag.Float64("spread", 0.06, "Ridge spread (degrees)")
	seed      = flag.Uint64("seed", 42, "Random seed")
)

type ridge struct {
	lat, lon float64
	height   float64
	sigma    float64
}

func main() {
	flag.Parse()

	if *latMax <= *latMin || *lonMax <= *lonMin {
		log.Fatal("empty extent")
	}
	if *cellSize <= 0 {
		log.Fatal("cell size must be positive")
	}

	cell := *cellSize
	rng := rand.New(rand.NewPCG(*seed, 0))
	rs := make([]ridge, *ridges)
	for i := range rs {
		rs[i] = ridge{
			lat:    *latMin + rng.Float64()*(*latMax-*latMin),
			lon:    *lonMin + rng.Float64()*(*lonMax-*lonMin),
			height: (0.4 + 0.6*rng.Float64()) * *amplitude,
			sigma:  (0.5 + rng.Float64()) * *spread,
		}
	}

	nrows := int(math.Ceil((*latMax - *latMin) / cell))
	ncols := int(math.Ceil((*lonMax - *lonMin) / cell))
	rows := make([][]float64, nrows)
	for r := 0; r < nrows; r++ {
		// Row 0 is the northern edge in the .asc layout.
		lat := *latMax - (float64(r)+0.5)*cell
		rows[r] = make([]float64, ncols)
		for c := 0; c < ncols; c++ {
			lon := *lonMin + (float64(c)+0.5)*cell
			elev := *baseElev
			for _, rd := range rs {
				dLat := lat - rd.lat
				dLon := lon - rd.lon
				elev += rd.height * math.Exp(-(dLat*dLat+dLon*dLon)/(2*rd.sigma*rd.sigma))
			}
			rows[r][c] = math.Round(elev*10) / 10
		}
	}

	raster, err := terrain.NewGrid(*lonMin, *latMin, cell, rows)
	if err != nil {
		log.Fatalf("failed to build grid: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *out, err)
	}
	if err := raster.WriteASCII(f); err != nil {
		f.Close()
		log.Fatalf("failed to write DEM: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%dx%d cells)", *out, ncols, nrows)
}
