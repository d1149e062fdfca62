package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tablint/tablint/internal/format"
	"github.com/tablint/tablint/pkg/diff"
)

// FormatMode selects what FormatFiles does with a rewritten file.
type FormatMode int

const (
	// ModeCheck only reports which files would change.
	ModeCheck FormatMode = iota
	// ModeDiff prints a unified diff per changed file.
	ModeDiff
	// ModeWrite rewrites changed files in place.
	ModeWrite
)

// FormatResult is the outcome for one file.
type FormatResult struct {
	Path    string
	Changed bool
	Diff    string
	Err     error
}

// FormatFiles runs the format engine over every given path, recursing into
// directories. Unformattable files (parse errors) are reported in their
// result and never rewritten; they do not stop the run.
func FormatFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine *format.Engine,
	paths []string,
	mode FormatMode,
) ([]FormatResult, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if info.IsDir() {
			dirFiles, err := CollectFiles(path)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
			continue
		}
		if hasDesiredExtension(path) {
			files = append(files, path)
		}
	}

	results := make([]FormatResult, 0, len(files))
	for _, file := range files {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		results = append(results, formatOne(logger, engine, file, mode))
	}
	return results, nil
}

func formatOne(logger *zap.Logger, engine *format.Engine, path string, mode FormatMode) FormatResult {
	result := FormatResult{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", path, err)
		return result
	}

	out, changed, err := engine.FormatSource(path, src)
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = changed
	if !changed {
		return result
	}

	switch mode {
	case ModeDiff:
		result.Diff = diff.Unified(path, string(src), out)
	case ModeWrite:
		if err := atomicWrite(path, []byte(out)); err != nil {
			result.Err = fmt.Errorf("writing %s: %w", path, err)
			return result
		}
		if logger != nil {
			logger.Debug("rewrote file", zap.String("file", path))
		}
	}
	return result
}

// atomicWrite replaces path via a temp file in the same directory so a
// crash mid-write never leaves a truncated file behind.
func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, info.Mode())
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
