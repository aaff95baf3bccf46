// Package storage persists simulated flights as run directories on disk.
//
// Each run lives under the store's base directory as rocket_<timestamp>/
// containing metadata.json (config and summary), trajectory.csv (one row
// per recorded timestep) and summary.txt (the human-readable report).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/waterrocket/internal/config"
	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
	"github.com/san-kum/waterrocket/internal/report"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Config    *config.Config `json:"config"`
	Summary   flight.Summary `json:"summary"`
}

// Save writes a completed flight to a fresh run directory and returns its
// run ID. IDs are nanosecond-stamped so back-to-back saves from a sweep or
// batch never land in the same directory.
func (s *Store) Save(cfg *config.Config, traj *flight.Trajectory) (string, error) {
	runID := fmt.Sprintf("rocket_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Config:    cfg,
		Summary:   traj.Summary(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, traj); err != nil {
		return "", err
	}

	sumFile, err := os.Create(filepath.Join(runDir, "summary.txt"))
	if err != nil {
		return "", err
	}
	defer sumFile.Close()

	if err := report.Write(sumFile, cfg, meta.Summary); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns metadata for every readable run under the base directory.
// Entries that are missing or corrupt are skipped rather than failing the
// whole listing.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads a run's trajectory.csv back into states. Rows that
// fail to parse are skipped.
func (s *Store) LoadTrajectory(runID string) (*flight.Trajectory, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	states := make([]physics.State, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < len(trajectoryHeader) {
			continue
		}

		fields := make([]float64, len(trajectoryHeader))
		ok := true
		for j := range fields {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			fields[j] = v
		}
		if !ok {
			continue
		}

		states = append(states, physics.State{
			Time:               fields[0],
			Altitude:           fields[1],
			Distance:           fields[2],
			VerticalVelocity:   fields[3],
			HorizontalVelocity: fields[4],
			VerticalAccel:      fields[5],
			WaterMass:          fields[6],
			AirVolume:          fields[7],
			AirPressure:        fields[8],
		})
	}

	// The CSV does not carry launch references, so restore them from the
	// first row the way the simulator records them.
	for i := range states {
		states[i].InitialAirVolume = states[0].AirVolume
		states[i].InitialAirPressure = states[0].AirPressure
	}

	return &flight.Trajectory{States: states}, nil
}
