// Package storage keeps a record of render runs on disk: one directory per
// run holding metadata.json and frames.csv.
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
	"time"

	"github.com/san-kum/spinframe/internal/config"
	"github.com/san-kum/spinframe/internal/engine"
)

// ErrMalformed reports a frames.csv row that cannot be parsed.
var ErrMalformed = errors.New("storage: malformed frame record")

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
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Frames    int                     `json:"frames"`
	Width     int                     `json:"width"`
	Height    int                     `json:"height"`
	Shading   string                  `json:"shading"`
	Clamp     bool                    `json:"clamp"`
	Yaw       config.OscillatorConfig `json:"yaw"`
	Pitch     config.OscillatorConfig `json:"pitch"`
	Output    string                  `json:"output"`
	Metrics   map[string]float64      `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Seq     uint64
	Yaw     int
	Pitch   int
	Covered int
	Written int
}

// Recorder is an engine.Observer that keeps a FrameRecord per frame.
type Recorder struct {
	Records []FrameRecord
}

func (r *Recorder) Observe(f engine.Frame) {
	r.Records = append(r.Records, FrameRecord{
		Seq:     f.Seq,
		Yaw:     f.Angles.Yaw,
		Pitch:   f.Angles.Pitch,
		Covered: f.Stats.Covered,
		Written: f.Stats.Written,
	})
}

// NewMetadata fills the configuration fields of a run.
func NewMetadata(cfg *config.Config, output string) RunMetadata {
	return RunMetadata{
		Width:   cfg.Viewport.Width,
		Height:  cfg.Viewport.Height,
		Shading: cfg.Shading,
		Clamp:   cfg.Clamp,
		Yaw:     cfg.Yaw,
		Pitch:   cfg.Pitch,
		Output:  output,
	}
}

// Save writes a new run and returns its id. ID, Timestamp and Frames in meta
// are filled in here.
func (s *Store) Save(meta RunMetadata, records []FrameRecord) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%s", now.Format("20060102_150405.000"))
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(records)

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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"seq", "yaw", "pitch", "covered", "written"}); err != nil {
		return "", err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatUint(r.Seq, 10),
			strconv.Itoa(r.Yaw),
			strconv.Itoa(r.Pitch),
			strconv.Itoa(r.Covered),
			strconv.Itoa(r.Written),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []FrameRecord{}, nil
	}

	out := make([]FrameRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformed, i+2, len(row))
		}
		var ints [4]int
		for j := range ints {
			if ints[j], err = strconv.Atoi(row[j+1]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+2, err)
			}
		}
		seq, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+2, err)
		}
		out = append(out, FrameRecord{Seq: seq, Yaw: ints[0], Pitch: ints[1], Covered: ints[2], Written: ints[3]})
	}
	return out, nil
}
