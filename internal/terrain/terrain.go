// Package terrain provides digital elevation model (DEM) access for the
// simulation engine. A Raster is opened once per run and serves
// point-sample elevation queries; there is no per-lookup file churn.
//
// The on-disk format is the ESRI ASCII grid (.asc): a short header
// (ncols, nrows, xllcorner, yllcorner, cellsize, optional nodata_value)
// followed by whitespace-separated elevation values, first row
// northernmost.
package terrain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarops-data/fieldsim/internal/geo"
)

// LookupError reports a failed elevation query: the point lies outside
// the raster extent or hit a NODATA cell. The orchestrator treats it as
// fatal; no synthetic report can be produced without ground truth.
type LookupError struct {
	Lat    float64
	Lon    float64
	Reason string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("terrain: no elevation for (%.5f, %.5f): %s", e.Lat, e.Lon, e.Reason)
}

// Raster is an in-memory DEM grid. Values are stored row-major with the
// first row at the northern edge, matching the .asc file layout.
// A Raster is safe for concurrent reads once constructed.
type Raster struct {
	cols      int
	rows      int
	xll       float64 // west edge, degrees longitude
	yll       float64 // south edge, degrees latitude
	cellSize  float64 // degrees
	nodata    float64
	hasNodata bool
	elev      []float64
}

// NewGrid builds a Raster from rows of elevation values given
// north-to-south. All rows must have the same length.
func NewGrid(xll, yll, cellSize float64, rows [][]float64) (*Raster, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("terrain: empty grid")
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("terrain: cell size must be positive, got %v", cellSize)
	}
	cols := len(rows[0])
	r := &Raster{
		cols:     cols,
		rows:     len(rows),
		xll:      xll,
		yll:      yll,
		cellSize: cellSize,
		elev:     make([]float64, 0, len(rows)*cols),
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("terrain: row %d has %d values, want %d", i, len(row), cols)
		}
		r.elev = append(r.elev, row...)
	}
	return r, nil
}

// Open reads an ESRI ASCII grid from path.
func Open(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: open %s: %w", path, err)
	}
	defer f.Close()

	r, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("terrain: read %s: %w", path, err)
	}
	return r, nil
}

// Read parses an ESRI ASCII grid from r.
func Read(rd io.Reader) (*Raster, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	r := &Raster{}
	var seen int
	for seen < 4 { // ncols, nrows, xllcorner, yllcorner are mandatory
		if !sc.Scan() {
			return nil, fmt.Errorf("incomplete header")
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		if err := r.setHeader(fields[0], fields[1]); err != nil {
			return nil, err
		}
		seen++
	}

	// Remaining header lines (cellsize, nodata) run until the first
	// line that is all numeric data.
	var pending []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 {
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				if err := r.setHeader(fields[0], fields[1]); err != nil {
					return nil, err
				}
				continue
			}
		}
		pending = fields
		break
	}

	if r.cols <= 0 || r.rows <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", r.cols, r.rows)
	}
	if r.cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %v", r.cellSize)
	}

	want := r.cols * r.rows
	r.elev = make([]float64, 0, want)
	appendValues := func(fields []string) error {
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("bad elevation value %q: %w", f, err)
			}
			r.elev = append(r.elev, v)
		}
		return nil
	}
	if err := appendValues(pending); err != nil {
		return nil, err
	}
	for sc.Scan() {
		if err := appendValues(strings.Fields(sc.Text())); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(r.elev) != want {
		return nil, fmt.Errorf("got %d elevation values, want %d", len(r.elev), want)
	}
	return r, nil
}

func (r *Raster) setHeader(key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("bad header value %s %q: %w", key, value, err)
	}
	switch strings.ToLower(key) {
	case "ncols":
		r.cols = int(v)
	case "nrows":
		r.rows = int(v)
	case "xllcorner":
		r.xll = v
	case "yllcorner":
		r.yll = v
	case "cellsize":
		r.cellSize = v
	case "nodata_value":
		r.nodata = v
		r.hasNodata = true
	default:
		return fmt.Errorf("unknown header key %q", key)
	}
	return nil
}

// Extent returns the rectangle covered by the raster.
func (r *Raster) Extent() geo.Bounds {
	return geo.Bounds{
		LatMin: r.yll,
		LatMax: r.yll + float64(r.rows)*r.cellSize,
		LonMin: r.xll,
		LonMax: r.xll + float64(r.cols)*r.cellSize,
	}
}

// ElevationAt returns the ground elevation in meters at p, sampled from
// the nearest raster cell. Points outside the covered extent or hitting
// a NODATA cell fail with a *LookupError.
func (r *Raster) ElevationAt(p geo.Point) (float64, error) {
	col := int((p.Lon - r.xll) / r.cellSize)
	top := r.yll + float64(r.rows)*r.cellSize
	row := int((top - p.Lat) / r.cellSize)

	// Points exactly on the north or east edge belong to the last cell.
	if col == r.cols && p.Lon == r.xll+float64(r.cols)*r.cellSize {
		col--
	}
	if row == r.rows && p.Lat == r.yll {
		row--
	}
	if p.Lon < r.xll || p.Lat > top || col < 0 || col >= r.cols || row < 0 || row >= r.rows {
		return 0, &LookupError{Lat: p.Lat, Lon: p.Lon, Reason: "outside raster extent"}
	}

	v := r.elev[row*r.cols+col]
	if r.hasNodata && v == r.nodata {
		return 0, &LookupError{Lat: p.Lat, Lon: p.Lon, Reason: "NODATA cell"}
	}
	return v, nil
}

// WriteASCII writes the raster in ESRI ASCII grid format.
func (r *Raster) WriteASCII(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", r.cols)
	fmt.Fprintf(bw, "nrows %d\n", r.rows)
	fmt.Fprintf(bw, "xllcorner %s\n", strconv.FormatFloat(r.xll, 'f', -1, 64))
	fmt.Fprintf(bw, "yllcorner %s\n", strconv.FormatFloat(r.yll, 'f', -1, 64))
	fmt.Fprintf(bw, "cellsize %s\n", strconv.FormatFloat(r.cellSize, 'f', -1, 64))
	if r.hasNodata {
		fmt.Fprintf(bw, "nodata_value %s\n", strconv.FormatFloat(r.nodata, 'f', -1, 64))
	}
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(r.elev[row*r.cols+col], 'f', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
