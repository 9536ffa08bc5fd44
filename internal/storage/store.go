// Package storage persists simulation runs as a metadata.json plus a
// states.csv per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Solver    string             `json:"solver"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	SubSteps  int                `json:"sub_steps"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Particles int                `json:"particles"`
	Springs   int                `json:"springs"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Sample is one tick of the recorded time series.
type Sample struct {
	Time      float64
	Kinetic   float64
	SpringPE  float64
	GravityPE float64
	Total     float64
	CenterY   float64
}

var csvHeader = []string{"time", "kinetic", "spring_pe", "gravity_pe", "total", "center_y"}

func (s *Store) Save(meta RunMetadata, series []Sample) (string, error) {
	runID := fmt.Sprintf("cloth_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, row := range series {
		rec := []string{
			strconv.FormatFloat(row.Time, 'f', 6, 64),
			strconv.FormatFloat(row.Kinetic, 'f', 6, 64),
			strconv.FormatFloat(row.SpringPE, 'f', 6, 64),
			strconv.FormatFloat(row.GravityPE, 'f', 6, 64),
			strconv.FormatFloat(row.Total, 'f', 6, 64),
			strconv.FormatFloat(row.CenterY, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]Sample, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < len(csvHeader) {
			continue
		}
		vals := make([]float64, len(csvHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		series = append(series, Sample{
			Time: vals[0], Kinetic: vals[1], SpringPE: vals[2],
			GravityPE: vals[3], Total: vals[4], CenterY: vals[5],
		})
	}

	return series, nil
}
