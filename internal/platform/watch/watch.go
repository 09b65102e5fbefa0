// Package watch reports changes to a fixed set of files. Directories are
// watched rather than the files themselves because stores are replaced by
// rename, which drops a watch held on the old inode.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]bool
	changes chan string
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

func New(files ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fs:      fsw,
		files:   map[string]bool{},
		changes: make(chan string, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("create watched dir: %w", err)
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	go w.run()
	return w, nil
}

// Changes yields the path of a watched file after it is created, written or
// replaced. Bursts are coalesced: a pending notification absorbs later ones.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Errors yields watcher failures; it is buffered and lossy.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			select {
			case w.changes <- abs:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}
