// Package watch reloads a map file when it changes on disk.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/udisondev/navgrid/internal/gridmap"
)

// Watcher emits a freshly parsed map each time the watched file settles with
// new content. Bursts of events within the debounce window collapse into one
// reload, and a reload whose digest matches the last emitted one is dropped.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *slog.Logger

	Maps   chan *gridmap.Map
	Errors chan error

	last    string
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New starts watching the map file at path. The digest of the file's current
// content, if any, counts as already seen.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	// Editors often replace files by rename, so watch the directory.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fs:       fw,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		Maps:     make(chan *gridmap.Map, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		w.last = gridmap.Digest(data)
	}

	go w.run()
	return w, nil
}

// Close stops the watcher and closes Maps and Errors. It is safe to call more
// than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Maps)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Mid-rename; the Create that follows triggers another reload.
			return
		}
		w.sendErr(fmt.Errorf("reading map %s: %w", w.path, err))
		return
	}

	digest := gridmap.Digest(data)
	if digest == w.last {
		w.logger.Debug("map unchanged", "path", w.path, "digest", digest)
		return
	}

	m, err := gridmap.Parse(data)
	if err != nil {
		w.sendErr(fmt.Errorf("parsing map %s: %w", w.path, err))
		return
	}
	w.last = digest
	w.logger.Info("map reloaded", "path", w.path, "name", m.Name, "digest", digest)

	select {
	case w.Maps <- m:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
