// Package watch reloads a configuration file whenever it or one of the files
// it includes changes on disk.
//
//	w := watch.New("app.conf", watch.WithLogger(log.Default()))
//	err := w.Run(ctx, func(cfg *lang.Config, err error) {
//		if err != nil {
//			return // keep serving the previous configuration
//		}
//		current.Store(cfg)
//	})
//
// Files are watched through their parent directories so that editors which
// replace a file by renaming a temporary copy over it are still noticed.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
)

// ErrWatch is returned when the file system watcher cannot be created.
var ErrWatch = lang.NewError("watch configuration")

// Handler receives each successfully reloaded configuration, or the error
// that prevented loading it.
type Handler func(*lang.Config, error)

// Watcher reloads one configuration file and its includes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger
	loadOpts []lang.Option
}

// New returns a Watcher for the configuration file at path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{path: path, debounce: DefaultDebounce}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run loads the configuration, passes the result to handler, and then calls
// handler again each time a reload fails, recovers from a failure, or yields
// different content. The set of watched files follows the includes of the
// latest successful load.
//
// Run blocks until ctx is done and then returns nil.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer fw.Close()

	t := tracker{fsw: fw, logger: w.logger}

	var (
		digest uint64
		failed bool
	)

	reload := func(initial bool) {
		rec := &recorder{}

		cfg, err := lang.Load(ctx, w.path, slices.Concat(w.loadOpts, []lang.Option{lang.WithReader(rec)})...)
		if err != nil {
			w.logger.ErrorContext(ctx, "config reload failed",
				slog.String("path", w.path),
				slog.Any("error", err))

			// Every file the failed load tried to read, including a missing
			// include, stays watched so that fixing any of them reloads.
			t.follow(ctx, append(rec.files, w.path))

			failed = true

			handler(nil, err)

			return
		}

		t.follow(ctx, cfg.Files())

		if !initial && !failed && cfg.Digest() == digest {
			w.logger.DebugContext(ctx, "config unchanged", slog.String("path", w.path))

			return
		}

		digest, failed = cfg.Digest(), false

		w.logger.InfoContext(ctx, "config loaded",
			slog.String("path", w.path),
			slog.Int("files", len(cfg.Files())),
			slog.String("digest", fmt.Sprintf("%016x", digest)))

		handler(cfg, nil)
	}

	reload(true)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil

		case <-timer.C:
			reload(false)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.ErrorContext(ctx, "watcher error", slog.Any("error", err))

		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if t.relevant(evt) {
				w.logger.TraceContext(ctx, "file event",
					slog.String("file", evt.Name),
					slog.String("op", evt.Op.String()))
				timer.Reset(w.debounce)
			}
		}
	}
}

// recorder is an OS reader that remembers every file it was asked to read.
type recorder struct {
	lang.OSReader

	files []string
}

func (r *recorder) ReadFile(ctx context.Context, name string) ([]byte, error) {
	r.files = append(r.files, name)

	return r.OSReader.ReadFile(ctx, name)
}

// tracker keeps the directories watched by fsw in step with a file list.
type tracker struct {
	fsw    *fsnotify.Watcher
	logger log.Logger
	files  map[string]struct{}
	dirs   map[string]struct{}
}

// follow replaces the tracked files with files, adding and removing directory
// watches as needed.
func (t *tracker) follow(ctx context.Context, files []string) {
	nextFiles := make(map[string]struct{}, len(files))
	nextDirs := make(map[string]struct{}, len(files))

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}

		nextFiles[abs] = struct{}{}
		nextDirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range nextDirs {
		if _, ok := t.dirs[dir]; ok {
			continue
		}

		if err := t.fsw.Add(dir); err != nil {
			t.logger.WarnContext(ctx, "cannot watch directory",
				slog.String("dir", dir),
				slog.Any("error", err))

			delete(nextDirs, dir)

			continue
		}

		t.logger.DebugContext(ctx, "watching directory", slog.String("dir", dir))
	}

	for dir := range t.dirs {
		if _, ok := nextDirs[dir]; !ok {
			_ = t.fsw.Remove(dir)
		}
	}

	t.files, t.dirs = nextFiles, nextDirs
}

// relevant reports whether evt may change a tracked file's content.
func (t *tracker) relevant(evt fsnotify.Event) bool {
	if !evt.Op.Has(fsnotify.Create) && !evt.Op.Has(fsnotify.Write) &&
		!evt.Op.Has(fsnotify.Remove) && !evt.Op.Has(fsnotify.Rename) {
		return false
	}

	_, ok := t.files[filepath.Clean(evt.Name)]

	return ok
}
