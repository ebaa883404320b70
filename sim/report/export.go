package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/adsim/sim"
)

// Export writes one file per platform plus the combined file into dir,
// creating it if needed, and returns the written paths. Filesystem failures
// are reported as *sim.IOError; nothing is retried.
func Export(r *sim.Results, dir string) ([]string, error) {
	if r == nil {
		return nil, &sim.ValidationError{Field: "results", Reason: "nil"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &sim.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	now := time.Now()
	var paths []string
	for _, p := range r.PlatformNames() {
		path := filepath.Join(dir, FileName(p))
		if err := writeJSON(path, NewPlatformReport(r, p, now)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	path := filepath.Join(dir, CombinedFileName)
	if err := writeJSON(path, NewCombinedReport(r, now)); err != nil {
		return paths, err
	}
	paths = append(paths, path)
	logrus.Infof("exported run %s to %s (%d files)", r.RunID, dir, len(paths))
	return paths, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &sim.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// LoadPlatformReport reads a <platform>_results.json document.
func LoadPlatformReport(path string) (*PlatformReport, error) {
	var rep PlatformReport
	if err := readJSON(path, KindPlatform, &rep.Header, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// LoadCombinedReport reads a combined_results.json document.
func LoadCombinedReport(path string) (*CombinedReport, error) {
	var rep CombinedReport
	if err := readJSON(path, KindCombined, &rep.Header, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func readJSON(path, kind string, h *Header, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &sim.IOError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &sim.ValidationError{Field: filepath.Base(path), Reason: err.Error()}
	}
	if h.Kind != kind {
		return &sim.ValidationError{Field: filepath.Base(path), Reason: fmt.Sprintf("kind %q, want %q", h.Kind, kind)}
	}
	if h.Version != SchemaVersion {
		return &sim.ValidationError{Field: filepath.Base(path), Reason: fmt.Sprintf("schema version %d, want %d", h.Version, SchemaVersion)}
	}
	return nil
}
