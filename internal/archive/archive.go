// Package archive persists generation runs to sqlite so batches can be
// compared and re-exported without regenerating them.
package archive

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sarops-data/fieldsim/internal/report"
)

// DB wraps the sqlite handle.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the archive database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// set busy timeout to avoid transient locks when used from CLI
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

// RecordRun inserts a run row and returns its generated id.
func (db *DB) RecordRun(profile string, seed uint64, demPath string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, profile, seed, dem_path) VALUES (?, ?, ?, ?)`,
		id, profile, int64(seed), demPath,
	)
	if err != nil {
		return "", fmt.Errorf("archive: record run: %w", err)
	}
	return id, nil
}

// RecordReports stores a batch under runID in one transaction.
func (db *DB) RecordReports(runID string, reports []report.FieldReport) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO field_reports (
		run_id, report_id, timestamp, team_callsign,
		latitude, longitude, elevation_m,
		wind_direction_deg, ambient_temp_c, battery_level_percent,
		signal_strength, signal_state, blockage_m, snr_db
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range reports {
		_, err := stmt.Exec(
			runID,
			r.ReportID,
			r.Timestamp.Format(report.TimestampLayout),
			r.Callsign,
			r.Latitude,
			r.Longitude,
			r.ElevationM,
			r.WindDirectionDeg.Export(),
			r.AmbientTempC,
			r.BatteryPercent.Export(),
			r.SignalStrength.Export(),
			r.SignalStrength.Kind().String(),
			r.BlockageM,
			r.SNRdB,
		)
		if err != nil {
			return fmt.Errorf("archive: report %d: %w", r.ReportID, err)
		}
	}
	return tx.Commit()
}

// ReportCount returns the number of stored reports for a run.
func (db *DB) ReportCount(runID string) (int64, error) {
	var n int64
	err := db.QueryRow(`SELECT COUNT(*) FROM field_reports WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

// SignalStateCounts returns how many stored reports carry each signal
// state for a run, keeping below-floor sentinels distinguishable from
// fault-nulled values after the fact.
func (db *DB) SignalStateCounts(runID string) (map[string]int64, error) {
	rows, err := db.Query(
		`SELECT signal_state, COUNT(*) FROM field_reports WHERE run_id = ? GROUP BY signal_state`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var state string
		var n int64
		if err := rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		counts[state] = n
	}
	return counts, rows.Err()
}
