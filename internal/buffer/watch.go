package buffer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Watch reports writes to path until ctx is done. The parent directory is
// watched so editors that replace the file via rename are noticed too.
// onChange runs on the watcher goroutine.
func Watch(ctx context.Context, path string, onChange func(op fsnotify.Op)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
					onChange(ev.Op)
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("Document watcher: %v", werr)
			}
		}
	}()
	return nil
}
