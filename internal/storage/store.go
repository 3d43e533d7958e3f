package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Store persists run results under a base directory, one subdirectory per
// run holding metadata.json and probe.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one completed run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Steps     int                `json:"steps"`
	Boundary  string             `json:"boundary"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata and the probe series, returning the run ID.
func (s *Store) Save(meta RunMetadata, series []float32) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
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

	csvFile, err := os.Create(filepath.Join(runDir, "probe.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "ez"}); err != nil {
		return "", err
	}
	for i, v := range series {
		rec := []string{strconv.Itoa(i), strconv.FormatFloat(float64(v), 'g', -1, 32)}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// LoadMeta reads one run's metadata.
func (s *Store) LoadMeta(runID string) (*RunMetadata, error) {
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

// LoadSeries reads one run's probe samples.
func (s *Store) LoadSeries(runID string) ([]float32, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "probe.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	series := make([]float32, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue // header
		}
		v, err := strconv.ParseFloat(rec[1], 32)
		if err != nil {
			return nil, fmt.Errorf("probe.csv row %d: %w", i, err)
		}
		series = append(series, float32(v))
	}
	return series, nil
}

// List returns the metadata of all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// Export writes one run (metadata plus series) as a single JSON document.
func (s *Store) Export(runID string, out io.Writer) error {
	meta, err := s.LoadMeta(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	doc := struct {
		RunMetadata
		Series []float32 `json:"series"`
	}{*meta, series}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
