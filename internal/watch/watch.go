// Package watch reruns a build action when the source tree changes.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/qiniu/x/log"
)

// Watch watches root recursively and invokes fn after filesystem changes,
// debounced so one save triggers one rebuild. It returns when ctx is
// cancelled.
func Watch(ctx context.Context, root string, debounce time.Duration, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addTree(w, root); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New directories need their own watches.
			if event.Has(fsnotify.Create) {
				_ = addTree(w, event.Name)
			}
			log.Debugf("change: %s", event)
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch: %v", err)
		case <-timer.C:
			fn()
		}
	}
}

// addTree registers path and every directory below it. Non-directories are
// ignored: watching the parent covers them.
func addTree(w *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}
