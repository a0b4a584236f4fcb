// Package storage keeps finished headless runs on disk, one directory per
// run holding metadata.json and trace.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/trace"
)

const (
	metaFile  = "metadata.json"
	traceFile = "trace.csv"
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
	Algorithm string             `json:"algorithm"`
	Language  string             `json:"language,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed,omitempty"`
	Steps     int                `json:"steps"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes meta and the recorded entries and returns the run id.
func (s *Store) Save(meta trace.Meta, seed int64, entries []trace.Entry) (string, error) {
	short := meta.ID
	if len(short) > 8 {
		short = short[:8]
	}
	runID := fmt.Sprintf("%s_%d_%s", meta.Algorithm, meta.Timestamp.Unix(), short)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	run := RunMetadata{
		ID:        runID,
		Algorithm: meta.Algorithm,
		Language:  meta.Language,
		Timestamp: meta.Timestamp,
		Seed:      seed,
		Steps:     len(entries),
		Initial:   meta.Initial,
		Final:     meta.Final,
		Metrics:   meta.Metrics,
	}

	mf, err := os.Create(filepath.Join(runDir, metaFile))
	if err != nil {
		return "", err
	}
	defer mf.Close()

	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", err
	}

	tf, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer tf.Close()

	if err := trace.WriteCSV(tf, entries); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadArrays reads back the array after every recorded step.
func (s *Store) LoadArrays(runID string) ([]sortstep.Array, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := -1
	for i, name := range header {
		if name == "array" {
			col = i
		}
	}
	if col < 0 {
		return nil, errors.New("storage: trace has no array column")
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	arrays := make([]sortstep.Array, 0, len(records))
	for _, record := range records {
		a, err := parseArray(record[col])
		if err != nil {
			return nil, fmt.Errorf("storage: %s: %w", runID, err)
		}
		arrays = append(arrays, a)
	}
	return arrays, nil
}

// parseArray reverses sortstep.Array.String.
func parseArray(s string) (sortstep.Array, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSpace(s)
	if s == "" {
		return sortstep.Array{}, nil
	}

	parts := strings.Split(s, ",")
	a := make(sortstep.Array, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		a[i] = v
	}
	return a, nil
}
