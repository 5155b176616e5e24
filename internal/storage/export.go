package storage

import (
	"io"
	"os"

	json "github.com/json-iterator/go"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	Samples [][]float64 `json:"samples"`
}

// ExportJSON writes a run and its series as one JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Run:     *meta,
		Columns: series.Columns,
		Times:   series.Times,
		Samples: series.Samples,
	})
}

// ExportCSV copies the series of a run to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return WriteSeriesCSV(w, series)
}

// ExportFile runs export into a new file at path.
func ExportFile(path string, export func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
