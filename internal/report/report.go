// Package report defines the simulated field-report record and its
// tabular export. The exported field set is stable; downstream
// consumers (CSV, archive) rely on it.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// TimestampLayout is the wire format for report timestamps (local
// mission time, no zone suffix).
const TimestampLayout = "2006-01-02T15:04:05"

// FieldReport is one simulated observation from a search team. It is
// produced clean by the orchestrator and mutated at most once by the
// fault-injection pass.
type FieldReport struct {
	ReportID   int64
	Timestamp  time.Time
	Callsign   string
	Latitude   float64
	Longitude  float64
	ElevationM float64

	WindDirectionDeg Value
	AmbientTempC     float64
	BatteryPercent   Value
	SignalStrength   Value

	// BlockageM and SNRdB come from the propagation result. They are
	// carried on every report even when the exporter omits them.
	BlockageM float64
	SNRdB     float64
}

// Header returns the CSV column names. Blockage is an optional final
// column for callers that surface obstruction depth.
func Header(includeBlockage bool) []string {
	h := []string{
		"report_id",
		"timestamp",
		"team_callsign",
		"latitude",
		"longitude",
		"elevation_m",
		"wind_direction_deg",
		"ambient_temp_c",
		"battery_level_percent",
		"signal_strength",
	}
	if includeBlockage {
		h = append(h, "blockage_m")
	}
	return h
}

// Row renders the report in Header order.
func (r FieldReport) Row(includeBlockage bool) []string {
	row := []string{
		strconv.FormatInt(r.ReportID, 10),
		r.Timestamp.Format(TimestampLayout),
		r.Callsign,
		formatFloat(r.Latitude),
		formatFloat(r.Longitude),
		formatFloat(r.ElevationM),
		r.WindDirectionDeg.Export(),
		formatFloat(r.AmbientTempC),
		r.BatteryPercent.Export(),
		r.SignalStrength.Export(),
	}
	if includeBlockage {
		row = append(row, formatFloat(r.BlockageM))
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Writer emits field reports as CSV.
type Writer struct {
	w               *csv.Writer
	includeBlockage bool
}

// NewWriter wraps w. When includeBlockage is set the optional
// blockage_m column is appended to every row.
func NewWriter(w io.Writer, includeBlockage bool) *Writer {
	return &Writer{w: csv.NewWriter(w), includeBlockage: includeBlockage}
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	return w.w.Write(Header(w.includeBlockage))
}

// WriteReport writes one report row.
func (w *Writer) WriteReport(r FieldReport) error {
	return w.w.Write(r.Row(w.includeBlockage))
}

// WriteAll writes a header followed by every report, then flushes.
func (w *Writer) WriteAll(reports []FieldReport) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, r := range reports {
		if err := w.WriteReport(r); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush flushes buffered rows and surfaces any write error.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
