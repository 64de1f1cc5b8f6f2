package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/talgya/signal-norms/internal/engine"
)

// FileName returns the series file name of grid cell (w, u). Both are 1-based
// grid indexes, not parameter values.
func FileName(w, u int) string {
	return fmt.Sprintf("weight.%d PropPlayingA1.%d", w, u)
}

// FileSink writes one JSON series file per run into Dir.
type FileSink struct {
	Dir string
}

// SaveRun writes the run's series to Dir/FileName(w, u).
func (f FileSink) SaveRun(rec RunRecord, series *engine.Series) error {
	path, size, err := WriteSeries(f.Dir, rec.WeightIndex, rec.InitIndex, series)
	if err != nil {
		return err
	}
	slog.Info("series written", "path", path, "size", humanize.Bytes(uint64(size)))
	return nil
}

// WriteSeries writes series as a JSON object mapping each statistic name to
// its per-round values. It returns the file path and size in bytes.
func WriteSeries(dir string, w, u int, series *engine.Series) (string, int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create %s: %w", dir, err)
	}

	data, err := json.Marshal(series.Columns())
	if err != nil {
		return "", 0, fmt.Errorf("encode series: %w", err)
	}

	path := filepath.Join(dir, FileName(w, u))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", 0, fmt.Errorf("rename %s: %w", tmp, err)
	}
	return path, len(data), nil
}

// ReadSeries loads a file written by WriteSeries.
func ReadSeries(path string) (map[string][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cols map[string][]float64
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cols, nil
}
