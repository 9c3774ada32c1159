package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarops-data/fieldsim/internal/report"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp())
	return db
}

func testReports() []report.FieldReport {
	base := time.Date(2025, 8, 21, 6, 0, 0, 0, time.UTC)
	return []report.FieldReport{
		{
			ReportID:         1,
			Timestamp:        base,
			Callsign:         "TEAM001",
			Latitude:         37.2,
			Longitude:        -119.1,
			ElevationM:       2100,
			WindDirectionDeg: report.Num(45),
			AmbientTempC:     24.1,
			BatteryPercent:   report.Num(91),
			SignalStrength:   report.Num(-88.25),
			BlockageM:        0,
			SNRdB:            31.75,
		},
		{
			ReportID:         2,
			Timestamp:        base.Add(5 * time.Minute),
			Callsign:         "TEAM002",
			Latitude:         37.3,
			Longitude:        -119.2,
			ElevationM:       2300,
			WindDirectionDeg: report.Token("N/A"),
			AmbientTempC:     26.7,
			BatteryPercent:   report.Nulled(),
			SignalStrength:   report.BelowFloor(),
			BlockageM:        215.4,
			SNRdB:            -3.2,
		},
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateUp())

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestRecordRunAndReports(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.RecordRun("field_reports_batch_1", 101, "data/sierra_dem.asc")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	require.NoError(t, db.RecordReports(runID, testReports()))

	n, err := db.ReportCount(runID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSignalStateCounts(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.RecordRun("test", 7, "")
	require.NoError(t, err)
	require.NoError(t, db.RecordReports(runID, testReports()))

	counts, err := db.SignalStateCounts(runID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["number"])
	assert.Equal(t, int64(1), counts["below_floor"])
	assert.Zero(t, counts["null"])
}

func TestRecordReportsUnknownRunFails(t *testing.T) {
	db := openTestDB(t)
	// Foreign keys are on: reports need an existing run row.
	err := db.RecordReports("no-such-run", testReports())
	assert.Error(t, err)
}

func TestSeparateRunsStayIsolated(t *testing.T) {
	db := openTestDB(t)

	a, err := db.RecordRun("batch_1", 101, "")
	require.NoError(t, err)
	b, err := db.RecordRun("batch_2", 202, "")
	require.NoError(t, err)

	require.NoError(t, db.RecordReports(a, testReports()))

	na, err := db.ReportCount(a)
	require.NoError(t, err)
	nb, err := db.ReportCount(b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), na)
	assert.Zero(t, nb)
}
