package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the settings file whenever it changes on disk. A pending
// reload not yet taken by Poll is replaced by a newer one, so readers only
// ever see the latest file.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Settings
	done    chan struct{}
}

// Watch starts watching the directory holding path. Editors often replace
// files instead of writing them in place, so the directory is watched and
// events are filtered by name.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Settings, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Poll returns the latest reloaded settings without blocking.
func (w *Watcher) Poll() (*Settings, bool) {
	select {
	case s := <-w.updates:
		return s, true
	default:
		return nil, false
	}
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(w.path)
			if err != nil {
				log.Printf("Failed to reload settings: %v", err)
				continue
			}
			if len(data) == 0 {
				// truncated mid-save, the next write carries the content
				continue
			}
			log.Printf("Reloaded settings from %s", w.path)
			w.publish(parseSettings(data))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Settings watcher error: %v", err)
		}
	}
}

func (w *Watcher) publish(s *Settings) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- s
}
