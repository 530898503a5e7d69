package sound

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/soundpairs/internal/log"
)

// ChangedMsg is delivered to the Bubble Tea program when the watched sound
// directory changed. Receivers reload the directory through a Library.
type ChangedMsg struct {
	Dir string
}

// Watcher reports changes to a sound directory, debounced so that copying a
// batch of files produces a single notification.
type Watcher struct {
	dir      string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	events   chan ChangedMsg
	done     chan struct{}
	once     sync.Once
}

// NewWatcher starts watching dir.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		debounce: debounce,
		fsw:      fsw,
		events:   make(chan ChangedMsg, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	log.Debug(log.CatSound, "Watching sound directory", "dir", dir)
	return w, nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatSound, "Sound watcher error", err, "dir", w.dir)

		case <-fire:
			fire = nil
			select {
			case w.events <- ChangedMsg{Dir: w.dir}:
			default:
				// A notification is already pending.
			}
		}
	}
}

// Listen returns a command that blocks until the next change.
// Re-issue it after each ChangedMsg to keep listening.
func (w *Watcher) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.events:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
