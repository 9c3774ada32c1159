package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func sampleReport() FieldReport {
	return FieldReport{
		ReportID:         7,
		Timestamp:        time.Date(2025, 8, 21, 6, 30, 0, 0, time.UTC),
		Callsign:         "TEAM007",
		Latitude:         37.25,
		Longitude:        -119.125,
		ElevationM:       2120,
		WindDirectionDeg: Num(184.5),
		AmbientTempC:     24.75,
		BatteryPercent:   Num(88),
		SignalStrength:   Num(-96.5),
		BlockageM:        12.5,
		SNRdB:            23.5,
	}
}

func TestValueExport(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"number", Num(231.518), "231.518"},
		{"integer-valued number", Num(-999), "-999"},
		{"below floor renders empty", BelowFloor(), ""},
		{"nulled renders empty", Nulled(), ""},
		{"token", Token("ERR-&^%"), "ERR-&^%"},
		{"empty token stays empty", Token(""), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Export(); got != tt.want {
				t.Errorf("Export() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueKindsStayDistinct(t *testing.T) {
	// Below-floor and nulled cells export identically but must remain
	// distinguishable states.
	if BelowFloor().Kind() == Nulled().Kind() {
		t.Fatal("below-floor and nulled must be distinct kinds")
	}
	if _, ok := BelowFloor().Float(); ok {
		t.Error("below-floor cell should not report a numeric value")
	}
	if v, ok := Num(42).Float(); !ok || v != 42 {
		t.Errorf("Num(42).Float() = %v, %v", v, ok)
	}
}

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	if err := w.WriteAll([]FieldReport{sampleReport()}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	wantHeader := "report_id,timestamp,team_callsign,latitude,longitude,elevation_m,wind_direction_deg,ambient_temp_c,battery_level_percent,signal_strength"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	wantRow := "7,2025-08-21T06:30:00,TEAM007,37.25,-119.125,2120,184.5,24.75,88,-96.5"
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestWriterBlockageColumn(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	if err := w.WriteAll([]FieldReport{sampleReport()}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasSuffix(lines[0], ",blockage_m") {
		t.Errorf("header missing blockage column: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",12.5") {
		t.Errorf("row missing blockage value: %q", lines[1])
	}
}

func TestWriterRendersCorruptedCells(t *testing.T) {
	r := sampleReport()
	r.SignalStrength = Token("ERR-&^%")
	r.WindDirectionDeg = Token("N/A")
	r.BatteryPercent = Nulled()

	var buf bytes.Buffer
	if err := NewWriter(&buf, false).WriteAll([]FieldReport{r}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	row := strings.Split(strings.TrimSpace(buf.String()), "\n")[1]
	if !strings.Contains(row, "N/A") || !strings.HasSuffix(row, ",ERR-&^%") {
		t.Errorf("corruption tokens missing from row %q", row)
	}
	// Nulled battery sits between temperature and the signal token.
	if !strings.Contains(row, ",,ERR-&^%") {
		t.Errorf("nulled battery should leave an empty field, got %q", row)
	}
}
