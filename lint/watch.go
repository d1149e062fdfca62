package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/tablint/tablint/internal/types"
)

// debounceDelay coalesces the burst of events editors emit on save.
const debounceDelay = 100 * time.Millisecond

// Watch re-lints files as they change under the given paths until ctx is
// cancelled. report is called with the fresh issues after every run.
func Watch(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	report func(filename string, issues []tt.Issue),
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(logger, engine, event, report)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}

func handleFileEvent(
	logger *zap.Logger,
	engine LintEngine,
	event fsnotify.Event,
	report func(string, []tt.Issue),
) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !hasDesiredExtension(event.Name) {
		return
	}

	// wait for a while after the change to treat an editor's save burst
	// as a single run
	time.Sleep(debounceDelay)

	issues, err := engine.Run(event.Name)
	if err != nil {
		logger.Error("watch lint failed", zap.String("file", event.Name), zap.Error(err))
		return
	}
	report(event.Name, issues)
}
