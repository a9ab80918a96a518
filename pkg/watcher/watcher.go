package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/socialgraph/pkg/logging"
)

// ChangeEvent represents a batch of changes to the watched script
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// ScriptWatcher watches a single script file for changes.
// The parent directory is watched so that editors replacing the file
// through a rename are still seen.
type ScriptWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// NewScriptWatcher creates a watcher for the script at path
func NewScriptWatcher(path string) (*ScriptWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &ScriptWatcher{
		watcher: w,
		path:    filepath.Clean(abs),
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Start begins watching. Events stop and the channel closes when ctx is done.
func (sw *ScriptWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(sw.path)
	if err := sw.watcher.Add(dir); err != nil {
		sw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("watching script", "path", sw.path)
	go sw.processEvents(ctx)
	return nil
}

func (sw *ScriptWatcher) processEvents(ctx context.Context) {
	defer close(sw.events)
	defer sw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(event) {
				continue
			}

			logging.Debug("script changed", "path", event.Name, "op", event.Op.String())
			select {
			case sw.events <- ChangeEvent{Paths: []string{sw.path}, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

func (sw *ScriptWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != sw.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}

// Events returns the channel of change events
func (sw *ScriptWatcher) Events() <-chan ChangeEvent {
	return sw.events
}
