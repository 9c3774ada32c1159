package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sarops-data/fieldsim/internal/mission"
	"github.com/sarops-data/fieldsim/internal/testutil"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeConfig(t, "mission.json", `{
		"dem_path": "data/sierra_dem.asc",
		"output_dir": "data",
		"profiles": [
			{
				"name": "field_reports_batch_2",
				"teams": 200,
				"lat_min": 37.32, "lat_max": 37.52,
				"lon_min": -119.2, "lon_max": -118.9,
				"min_beacon_distance_m": 400,
				"min_team_distance_m": 500,
				"max_placement_attempts": 20000,
				"callsign_prefix": "GRID",
				"start": "2025-08-22T06:00:00",
				"step_min_seconds": 60,
				"step_max_seconds": 300,
				"report_id_offset": 200,
				"seed": 202,
				"corruption": {
					"fields": {
						"callsign_prob": 0.1,
						"callsign_pool": ["Alpha", "alfa", "bravo"],
						"signal_null_prob": 0.05,
						"wind_token_prob": 0.05,
						"wind_tokens": ["?", "N/A", ""],
						"battery_null_prob": 0.05
					}
				}
			}
		]
	}`)

	m, err := Load(path)
	testutil.AssertNoError(t, err)
	if m.DEMPath == nil || *m.DEMPath != "data/sierra_dem.asc" {
		t.Errorf("dem_path not loaded: %+v", m.DEMPath)
	}
	if len(m.Profiles) != 1 {
		t.Fatalf("got %d profiles, want 1", len(m.Profiles))
	}

	p, err := m.Profiles[0].Apply(mission.Default())
	testutil.AssertNoError(t, err)

	if p.Name != "field_reports_batch_2" || p.CallsignPrefix != "GRID" {
		t.Errorf("name/prefix overrides missing: %q %q", p.Name, p.CallsignPrefix)
	}
	if p.Bounds.LatMin != 37.32 || p.Bounds.LonMax != -118.9 {
		t.Errorf("bounds overrides missing: %+v", p.Bounds)
	}
	if p.MinBeaconDistanceM != 400 || p.ReportIDOffset != 200 || p.Seed != 202 {
		t.Errorf("numeric overrides missing: %+v", p)
	}
	wantStart := time.Date(2025, 8, 22, 6, 0, 0, 0, time.UTC)
	if !p.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", p.Start, wantStart)
	}
	if p.StepMin != time.Minute || p.StepMax != 5*time.Minute {
		t.Errorf("step range = [%v, %v]", p.StepMin, p.StepMax)
	}
	// The batch-2 plan replaces the default entirely: no storm window.
	if p.Corruption.Window != nil {
		t.Error("window should be absent when config omits it")
	}
	if p.Corruption.Fields == nil || p.Corruption.Fields.CallsignProb != 0.1 {
		t.Errorf("field rules missing: %+v", p.Corruption.Fields)
	}

	// Defaults untouched by the file survive the overlay.
	if p.AGLOffsetM != 120 || p.CeilingM != 4000 {
		t.Errorf("defaults clobbered: AGL %v, ceiling %v", p.AGLOffsetM, p.CeilingM)
	}
	testutil.AssertNoError(t, p.Validate())
}

func TestApplyEmptyCorruptionDisables(t *testing.T) {
	path := writeConfig(t, "clean.json", `{
		"profiles": [{"name": "historical", "corruption": {}}]
	}`)
	m, err := Load(path)
	testutil.AssertNoError(t, err)

	p, err := m.Profiles[0].Apply(mission.Default())
	testutil.AssertNoError(t, err)
	if p.Corruption.Window != nil || p.Corruption.Fields != nil {
		t.Error("empty corruption object should disable all corruption")
	}
}

func TestLoadRejectsBadExtension(t *testing.T) {
	path := writeConfig(t, "mission.yaml", `{}`)
	_, err := Load(path)
	testutil.AssertError(t, err)
}

func TestLoadRejectsMissingProfiles(t *testing.T) {
	path := writeConfig(t, "empty.json", `{"output_dir": "data"}`)
	_, err := Load(path)
	testutil.AssertError(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeConfig(t, "broken.json", `{"profiles": [`)
	_, err := Load(path)
	testutil.AssertError(t, err)
}

func TestApplyRejectsBadStartTime(t *testing.T) {
	path := writeConfig(t, "badtime.json", `{
		"profiles": [{"start": "yesterday"}]
	}`)
	m, err := Load(path)
	testutil.AssertNoError(t, err)
	_, err = m.Profiles[0].Apply(mission.Default())
	testutil.AssertError(t, err)
}
