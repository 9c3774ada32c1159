// Command fieldsim generates synthetic field-report datasets for a
// simulated radio-beacon search. It reads a mission config, opens the
// DEM once, runs every batch profile and writes one CSV per profile,
// optionally archiving the batches to sqlite.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/sarops-data/fieldsim/internal/archive"
	"github.com/sarops-data/fieldsim/internal/config"
	"github.com/sarops-data/fieldsim/internal/mission"
	"github.com/sarops-data/fieldsim/internal/monitoring"
	"github.com/sarops-data/fieldsim/internal/report"
	"github.com/sarops-data/fieldsim/internal/terrain"
)

var (
	configPath  = flag.String("config", "config/mission.example.json", "Mission config file (JSON)")
	demPath     = flag.String("dem", "", "DEM raster path (.asc); overrides the config")
	outDir      = flag.String("out", "", "Output directory for CSV files; overrides the config")
	archivePath = flag.String("db", "", "Optional sqlite archive path")
	seedFlag    = flag.Uint64("seed", 0, "Override every profile seed (0 keeps per-profile seeds)")
	blockage    = flag.Bool("blockage", false, "Include the blockage_m column in CSV output")
	quiet       = flag.Bool("quiet", false, "Suppress progress logging")
)

func main() {
	flag.Parse()
	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dem := *demPath
	if dem == "" && cfg.DEMPath != nil {
		dem = *cfg.DEMPath
	}
	if dem == "" {
		log.Fatal("no DEM path: set -dem or dem_path in the config")
	}

	out := *outDir
	if out == "" && cfg.OutputDir != nil {
		out = *cfg.OutputDir
	}
	if out == "" {
		out = "."
	}

	includeBlockage := *blockage
	if cfg.IncludeBlockage != nil {
		includeBlockage = includeBlockage || *cfg.IncludeBlockage
	}

	// One raster handle for the whole run; every profile samples it.
	raster, err := terrain.Open(dem)
	if err != nil {
		log.Fatalf("failed to open DEM: %v", err)
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	var db *archive.DB
	if *archivePath != "" {
		db, err = archive.Open(*archivePath)
		if err != nil {
			log.Fatalf("failed to open archive: %v", err)
		}
		defer db.Close()
		if err := db.MigrateUp(); err != nil {
			log.Fatalf("failed to migrate archive: %v", err)
		}
	}

	for _, pc := range cfg.Profiles {
		profile, err := pc.Apply(mission.Default())
		if err != nil {
			log.Fatalf("bad profile: %v", err)
		}
		if *seedFlag != 0 {
			profile.Seed = *seedFlag
		}

		rng := mission.NewRand(profile.Seed)
		reports, err := mission.GenerateBatch(rng, raster, profile)
		if err != nil {
			log.Fatalf("profile %s: %v", profile.Name, err)
		}

		path := filepath.Join(out, profile.Name+".csv")
		if err := writeCSV(path, reports, includeBlockage); err != nil {
			log.Fatalf("profile %s: %v", profile.Name, err)
		}
		monitoring.Logf("wrote %s (%d reports)", path, len(reports))

		if db != nil {
			runID, err := db.RecordRun(profile.Name, profile.Seed, dem)
			if err != nil {
				log.Fatalf("profile %s: %v", profile.Name, err)
			}
			if err := db.RecordReports(runID, reports); err != nil {
				log.Fatalf("profile %s: %v", profile.Name, err)
			}
			monitoring.Logf("archived run %s", runID)
		}
	}
}

func writeCSV(path string, reports []report.FieldReport, includeBlockage bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.NewWriter(f, includeBlockage).WriteAll(reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
