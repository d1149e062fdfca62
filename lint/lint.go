// Package lint is the high-level facade the commands build on: engine
// construction from a configuration file, concurrent processing of files
// and directory trees, formatting runs, and watch mode.
package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/tablint/tablint/internal/checker"
	tt "github.com/tablint/tablint/internal/types"
)

// LintEngine is the surface the processing helpers need from an engine.
type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(filename string, source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
}

// New builds a lint engine from the configuration file at
// configurationPath. An empty path falls back to the defaults.
func New(configurationPath string) (*checker.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return checker.NewEngine(config.Rules)
}

// ProcessFiles lints every given path, recursing into directories.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessPath lints one path. Directories are walked for files with a
// recognized extension and processed by a bounded worker pool; single
// files are processed inline.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := CollectFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// One entry per file keeps a failing file's error paired with its own
	// result, so a sibling's issues are never misattributed or dropped.
	type fileResult struct {
		issues []tt.Issue
		err    error
	}
	resultChan := make(chan fileResult, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileIssues, err := processor(engine, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				resultChan <- fileResult{issues: fileIssues, err: err}
				bar.Add(1)
			}(filePath)
		}
	}

	var issues []tt.Issue
	for range files {
		res := <-resultChan
		if res.err != nil {
			continue
		}
		issues = append(issues, res.issues...)
	}

	fmt.Println()
	checker.SortIssues(issues)
	return issues, nil
}

// ProcessFile lints a single file through the engine.
func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource lints in-memory source.
func ProcessSource(engine LintEngine, filename string, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(filename, source)
}

// CollectFiles walks root and returns every file with a recognized
// extension, in walk order.
func CollectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

var desiredExtensions = map[string]bool{
	".robot":    true,
	".resource": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[strings.ToLower(filepath.Ext(path))]
}
