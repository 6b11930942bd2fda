package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/xdepend/pkg/dependencies"
)

// Scanner runs an extraction and reports which files it reads
type Scanner interface {
	Resolve(ctx context.Context, target dependencies.Target, mode dependencies.Mode) ([]string, error)
	Inputs(ctx context.Context, target dependencies.Target) ([]string, error)
}

// Func receives the result of every run
type Func func(deps []string, err error)

// Options configures a watch
type Options struct {
	// Debounce is how long to wait after the last relevant event before re-running
	Debounce time.Duration

	Logger logrus.FieldLogger
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Run extracts dependencies from target once, then again after every change to
// the target or, for a solution, to any member project. It blocks until ctx is
// cancelled or the watcher fails. Extraction errors go to fn and do not stop
// the watch.
func Run(ctx context.Context, scanner Scanner, target dependencies.Target, mode dependencies.Mode, opts Options, fn Func) error {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}

	targetPath, err := filepath.Abs(target.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve target path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	w := &watchSet{
		watcher: watcher,
		target:  targetPath,
		files:   map[string]struct{}{},
		dirs:    map[string]struct{}{},
		log:     log,
	}
	if err := w.update([]string{targetPath}); err != nil {
		return err
	}

	run := func() {
		deps, err := scanner.Resolve(ctx, target, mode)
		fn(deps, err)

		inputs, err := scanner.Inputs(ctx, target)
		if err != nil {
			log.WithError(err).Debug("could not list inputs, keeping current watch set")
			return
		}
		if err := w.update(inputs); err != nil {
			log.WithError(err).Warn("failed to update watch set")
		}
	}

	run()
	log.WithFields(logrus.Fields{
		"target": targetPath,
		"files":  len(w.files),
	}).Info("watching for changes")

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
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&relevantOps == 0 || !w.watches(event.Name) {
				continue
			}
			log.WithFields(logrus.Fields{
				"file": event.Name,
				"op":   event.Op.String(),
			}).Debug("change detected")

			if opts.Debounce <= 0 {
				run()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// watchSet tracks the watched files and the directories holding them.
// Directories are watched rather than files so that editors which replace a
// file on save are still seen.
type watchSet struct {
	watcher *fsnotify.Watcher
	target  string
	files   map[string]struct{}
	dirs    map[string]struct{}
	log     logrus.FieldLogger
}

func (w *watchSet) watches(name string) bool {
	_, ok := w.files[filepath.Clean(name)]
	return ok
}

// update replaces the watched files with paths. The target is always kept.
func (w *watchSet) update(paths []string) error {
	files := map[string]struct{}{w.target: {}}
	for _, p := range paths {
		files[filepath.Clean(p)] = struct{}{}
	}

	dirs := map[string]struct{}{}
	for f := range files {
		dirs[filepath.Dir(f)] = struct{}{}
	}

	for dir := range w.dirs {
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Remove(dir); err != nil {
			w.log.WithError(err).WithField("dir", dir).Debug("failed to stop watching directory")
		}
		delete(w.dirs, dir)
	}

	for dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			if dir == filepath.Dir(w.target) {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.log.WithError(err).WithField("dir", dir).Warn("cannot watch directory")
			continue
		}
		w.dirs[dir] = struct{}{}
	}

	w.files = files
	return nil
}
