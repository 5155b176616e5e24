package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/json-iterator/go"
	"github.com/san-kum/dotfield/internal/world"
)

func sampleResult() *world.Result {
	return &world.Result{
		Frames:  3,
		Columns: []string{"kinetic", "resetting"},
		Times:   []float64{0.1, 0.2, 0.3},
		Samples: [][]float64{{1.5, 0}, {0.75, 20}, {0.25, 3}},
		Metrics: map[string]float64{"kinetic": 0.8333, "resetting": 20},
		Errors:  2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "snapback", Seed: 42, Width: 800, Height: 600, FPS: 10}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "snapback" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Frames != 3 || meta.Skipped != 2 {
		t.Errorf("expected 3 frames and 2 skipped, got %d and %d", meta.Frames, meta.Skipped)
	}
	if meta.Metrics["resetting"] != 20 {
		t.Errorf("expected resetting 20, got %f", meta.Metrics["resetting"])
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series.Samples) != 3 || len(series.Times) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(series.Samples))
	}
	if got := series.Column("resetting"); got[1] != 20 {
		t.Errorf("expected 20 in row 1, got %v", got)
	}
	if series.Column("missing") != nil {
		t.Error("missing column should be nil")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	old, _ := st.Save(RunMetadata{Timestamp: time.Unix(100, 0)}, sampleResult())
	recent, _ := st.Save(RunMetadata{Timestamp: time.Unix(200, 0)}, sampleResult())
	if err := os.WriteFile(filepath.Join(st.Dir(), "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != recent || runs[1].ID != old {
		t.Error("runs should be listed newest first")
	}

	latest, err := st.Latest()
	if err != nil || latest != recent {
		t.Errorf("expected latest %s, got %s (%v)", recent, latest, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSeries("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save(RunMetadata{}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{metadataFile, seriesFile} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Preset: "calm"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var csvOut bytes.Buffer
	if err := st.ExportCSV(&csvOut, runID); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(csvOut.String()), "\n")
	if len(lines) != 4 || lines[0] != "time,kinetic,resetting" {
		t.Errorf("unexpected csv:\n%s", csvOut.String())
	}

	var jsonOut bytes.Buffer
	if err := st.ExportJSON(&jsonOut, runID); err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(jsonOut.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Run.Preset != "calm" || len(data.Samples) != 3 {
		t.Errorf("unexpected export %+v", data)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ExportFile(path, func(w io.Writer) error { return st.ExportCSV(w, runID) }); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected exported file, got %v", err)
	}
}
