// File: watch.go
// Title: Configuration Reloading
// Description: Watches the loaded file with fsnotify and reloads it,
//              notifying a handler with the old and new configuration.
// Author: msto63
// Version: v0.3.0
// Created: 2026-09-09
// Modified: 2026-10-19
//
// Change History:
// - 2026-09-09 v0.1.0: Polling watcher
// - 2026-10-04 v0.2.0: Context-bound Watch replaces the start/stop flag
// - 2026-10-19 v0.3.0: fsnotify replaces polling, debounced reloads

package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
)

// DefaultWatchDebounce collapses the burst of events a single save produces
const DefaultWatchDebounce = 100 * time.Millisecond

// ChangeHandler receives snapshots taken before and after a reload
type ChangeHandler func(old, updated *Config)

// Reload rereads the file. It reports whether the content was replaced.
func (c *Config) Reload() (bool, error) {
	c.mu.RLock()
	path, format, last := c.filePath, c.format, c.lastModified
	c.mu.RUnlock()

	if path == "" {
		return false, errNotFromFile("reload")
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("reload").
			Messagef("config file disappeared: %s", path).
			Cause(err).
			Code(cplxerror.CodeMissingConfig).
			Build()
	}
	if info.ModTime().Equal(last) {
		return false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("reload").
			Cause(err).
			Code(cplxerror.CodeConfigError).
			Build()
	}
	data, err := parseContent(content, format)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.data = data
	c.lastModified = info.ModTime()
	c.mu.Unlock()
	return true, nil
}

// snapshot returns an independent copy
func (c *Config) snapshot() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Config{
		data:         deepCopy(c.data),
		filePath:     c.filePath,
		format:       c.format,
		envPrefix:    c.envPrefix,
		lastModified: c.lastModified,
	}
}

// Watch starts watching the file and returns once the watcher is in place.
// The directory is watched rather than the file so that editors replacing
// the file by rename are followed. Events are debounced; each settled burst
// triggers one Reload. Reload errors go to onError (when non-nil) and
// watching continues until ctx is done.
func (c *Config) Watch(ctx context.Context, debounce time.Duration, onChange ChangeHandler, onError func(error)) error {
	c.mu.RLock()
	path := c.filePath
	c.mu.RUnlock()
	if path == "" {
		return errNotFromFile("watch")
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("watch").
			Message("failed to create watcher").
			Cause(err).
			Code(cplxerror.CodeConfigError).
			Build()
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("watch").
			Messagef("failed to watch %s", filepath.Dir(path)).
			Cause(err).
			Code(cplxerror.CodeConfigError).
			Build()
	}

	go c.watchLoop(ctx, watcher, filepath.Clean(path), debounce, onChange, onError)
	return nil
}

func (c *Config) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, onChange ChangeHandler, onError func(error)) {
	defer watcher.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path || event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}

		case <-timer.C:
			old := c.snapshot()
			changed, err := c.Reload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if changed && onChange != nil {
				onChange(old, c.snapshot())
			}
		}
	}
}

func errNotFromFile(op string) error {
	return errors.NewErrorBuilder(errors.ModuleConfig).
		Operation(op).
		Message("configuration was not loaded from a file").
		Code(cplxerror.CodeConfigError).
		Build()
}
