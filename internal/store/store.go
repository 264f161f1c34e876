package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/san-kum/measim/internal/config"
	"github.com/san-kum/measim/internal/experiment"
	"github.com/san-kum/measim/internal/sampler"
)

const (
	metadataFile = "metadata.json"
	sampleFile   = "sample.csv.zst"
)

var (
	// ErrRunNotFound indicates an unknown run id.
	ErrRunNotFound = errors.New("store: run not found")

	// ErrCorruptRun indicates stored data that does not match its metadata.
	ErrCorruptRun = errors.New("store: run data does not match metadata")
)

var sampleHeader = []string{"true", "observed", "auxiliary", "outcome", "corrupted"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrap(os.MkdirAll(s.baseDir, 0755), "create data directory")
}

type FitRecord struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	TrueSlope float64 `json:"true_slope"`
	Lambda    float64 `json:"lambda"`
}

type RunMetadata struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Seed        int64          `json:"seed"`
	N           int            `json:"n"`
	Corrupted   int            `json:"corrupted"`
	Fingerprint string         `json:"fingerprint"`
	Config      *config.Config `json:"config"`
	Fit         FitRecord      `json:"fit"`
}

// Save writes the metadata and the zstd-compressed sample CSV of r into a
// new run directory and returns the run id.
func (s *Store) Save(r *experiment.Result) (string, error) {
	now := time.Now()
	fp := fmt.Sprintf("%016x", r.Fingerprint)
	runID := fmt.Sprintf("%s_%s_%s", r.Config.Model, now.Format("20060102-150405"), fp[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run directory")
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Seed:        r.Seed,
		N:           r.Sample.Len(),
		Corrupted:   r.Sample.CorruptedCount(),
		Fingerprint: fp,
		Config:      config.FromSampler(r.Config, r.Seed),
		Fit: FitRecord{
			Slope:     r.Fit.Slope,
			Intercept: r.Fit.Intercept,
			TrueSlope: r.Fit.TrueSlope,
			Lambda:    r.Fit.Lambda,
		},
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSample(filepath.Join(runDir, sampleFile), r.Sample); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode metadata")
}

func writeSample(path string, smp *sampler.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sample file")
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errors.Wrap(err, "open zstd writer")
	}

	w := csv.NewWriter(zw)
	if err := w.Write(sampleHeader); err != nil {
		zw.Close()
		return errors.Wrap(err, "write sample header")
	}
	for i := 0; i < smp.Len(); i++ {
		row := []string{
			formatFloat(smp.True[i]),
			formatFloat(smp.Observed[i]),
			formatFloat(smp.Auxiliary[i]),
			formatFloat(smp.Outcome[i]),
			strconv.FormatBool(smp.Corrupted[i]),
		}
		if err := w.Write(row); err != nil {
			zw.Close()
			return errors.Wrap(err, "write sample row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		zw.Close()
		return errors.Wrap(err, "flush sample")
	}
	return errors.Wrap(zw.Close(), "close zstd writer")
}

// formatFloat keeps the shortest representation that parses back to the
// same bits.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "read data directory")
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrRunNotFound, "%s", runID)
		}
		return nil, errors.Wrap(err, "read metadata")
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode metadata of %s", runID)
	}
	return &meta, nil
}

// LoadSample reads the stored sample of a run and checks it against the
// fingerprint recorded in its metadata.
func (s *Store) LoadSample(runID string) (*sampler.Sample, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, sampleFile))
	if err != nil {
		return nil, errors.Wrap(err, "open sample file")
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "open zstd reader")
	}
	defer zr.Close()

	records, err := csv.NewReader(zr).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read sample csv")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrCorruptRun, "missing header")
	}

	smp := &sampler.Sample{}
	for i, rec := range records[1:] {
		if len(rec) != len(sampleHeader) {
			return nil, errors.Wrapf(ErrCorruptRun, "row %d has %d fields", i+1, len(rec))
		}
		vals := make([]float64, 4)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(rec[j], 64); err != nil {
				return nil, errors.Wrapf(ErrCorruptRun, "row %d: %v", i+1, err)
			}
		}
		d, err := strconv.ParseBool(rec[4])
		if err != nil {
			return nil, errors.Wrapf(ErrCorruptRun, "row %d: %v", i+1, err)
		}
		smp.True = append(smp.True, vals[0])
		smp.Observed = append(smp.Observed, vals[1])
		smp.Auxiliary = append(smp.Auxiliary, vals[2])
		smp.Outcome = append(smp.Outcome, vals[3])
		smp.Corrupted = append(smp.Corrupted, d)
	}

	if got := fmt.Sprintf("%016x", smp.Fingerprint()); got != meta.Fingerprint {
		return nil, errors.Wrapf(ErrCorruptRun, "fingerprint %s, metadata says %s", got, meta.Fingerprint)
	}
	return smp, nil
}
