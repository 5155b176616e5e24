// Package storage keeps recorded runs on disk: one directory per run with
// a metadata.json and a series.csv of per-frame metric samples.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"github.com/san-kum/dotfield/internal/world"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Scenario  string             `json:"scenario,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Particles int                `json:"particles"`
	FPS       int                `json:"fps"`
	Frames    int                `json:"frames"`
	Skipped   int                `json:"skipped"`
	Columns   []string           `json:"columns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series is the per-frame table of a run.
type Series struct {
	Columns []string
	Times   []float64
	Samples [][]float64
}

func (s *Series) Column(name string) []float64 {
	for i, c := range s.Columns {
		if c != name {
			continue
		}
		out := make([]float64, 0, len(s.Samples))
		for _, row := range s.Samples {
			if i < len(row) {
				out = append(out, row[i])
			}
		}
		return out
	}
	return nil
}

// Save writes a run under a fresh id and returns the id. Frame count,
// columns and metric values are taken from res.
func (s *Store) Save(meta RunMetadata, res *world.Result) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = res.Frames
	meta.Skipped = res.Errors
	meta.Columns = res.Columns
	meta.Metrics = res.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	if err := WriteSeriesCSV(f, &Series{Columns: res.Columns, Times: res.Times, Samples: res.Samples}); err != nil {
		f.Close()
		return "", err
	}
	return meta.ID, f.Close()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// Latest returns the id of the newest run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[0].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decoding %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()
	return ReadSeriesCSV(f)
}

// WriteSeriesCSV writes a time column followed by one column per metric.
func WriteSeriesCSV(w io.Writer, series *Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"time"}, series.Columns...)); err != nil {
		return err
	}
	for i, row := range series.Samples {
		rec := make([]string, 0, len(row)+1)
		t := float64(i + 1)
		if i < len(series.Times) {
			t = series.Times[i]
		}
		rec = append(rec, strconv.FormatFloat(t, 'f', 6, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeriesCSV parses the format written by WriteSeriesCSV. Rows with an
// unparsable time are skipped.
func ReadSeriesCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	series := &Series{}
	if len(records) == 0 {
		return series, nil
	}
	series.Columns = append(series.Columns, records[0][1:]...)

	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, len(series.Columns))
		for j := range row {
			if j+1 < len(rec) {
				row[j], _ = strconv.ParseFloat(rec[j+1], 64)
			}
		}
		series.Times = append(series.Times, t)
		series.Samples = append(series.Samples, row)
	}
	return series, nil
}
