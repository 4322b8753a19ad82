// Package settings watches the active .env file and reloads configuration when it changes.
package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/config"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
)

// EventType defines the type of settings event.
type EventType int

const (
	EventChanged EventType = iota
	EventError
)

// Event represents a settings service event.
type Event struct {
	Type   EventType
	Config *config.Config
	Error  error
}

const debounceInterval = 100 * time.Millisecond

// Service reloads configuration from a watched .env file.
type Service struct {
	mu            sync.Mutex
	filePath      string
	overrides     config.Overrides
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	done          chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New creates a settings service. An empty path yields a service that never
// emits events, for runs without an .env file. Overrides are re-applied to
// every reloaded configuration.
func New(filePath string, overrides config.Overrides) (*Service, error) {
	s := &Service{
		filePath:  filePath,
		overrides: overrides,
		eventChan: make(chan Event, 10),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	if filePath == "" {
		close(s.done)
		return s, nil
	}

	if err := s.startWatcher(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the watched file, empty when nothing is watched.
func (s *Service) Path() string {
	return s.filePath
}

// Events returns the event channel for subscribing to settings changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory so editors that replace the file are still seen.
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	defer close(s.done)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the configuration after an external edit.
func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	cfg, err := config.Reload(s.filePath, s.overrides)
	if err != nil {
		logger.Warn("settings reload failed", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	logger.Info("settings reloaded", "path", s.filePath)
	s.sendEvent(Event{Type: EventChanged, Config: cfg})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and waits for its goroutine to exit.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
		<-s.done
	})
	return err
}
