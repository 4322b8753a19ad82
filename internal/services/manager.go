// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/config"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/db"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/export"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/services/dataset"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/services/settings"
)

// Reasons attached to DatasetLoadedEvent.
const (
	ReasonRegenerate = "regenerate"
	ReasonSettings   = "settings"
)

type (
	// DatasetLoadedEvent is emitted after the dataset has been (re)generated.
	DatasetLoadedEvent struct {
		Snapshot *models.Snapshot
		Filter   models.FilterResult
		Reason   string
	}

	// FilterAppliedEvent is emitted when a date filter is applied.
	FilterAppliedEvent struct {
		Result models.FilterResult
	}

	// ExportCompletedEvent is emitted when an export run finishes.
	ExportCompletedEvent struct {
		Result *export.Result
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetLoadedEvent) isServiceEvent()   {}
func (FilterAppliedEvent) isServiceEvent()   {}
func (ExportCompletedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// Notifier sends a desktop notification.
type Notifier func(title, body string) error

func desktopNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	database    *db.DB
	dataset     *dataset.Service
	settings    *settings.Service
	exporter    *export.Exporter
	notify      Notifier
	lastExport  *export.Result
	stopChan    chan struct{}
	wg          sync.WaitGroup
	subscribers []chan ServiceEvent
	closeOnce   sync.Once
}

// NewManager creates a new service manager and generates the initial dataset.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		exporter: export.NewExporter(),
		notify:   desktopNotify,
		stopChan: make(chan struct{}),
	}

	var err error
	m.database, err = db.NewMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize table store: %w", err)
	}

	m.dataset = dataset.New(m.database)
	if _, err := m.dataset.Load(paramsFromConfig(cfg)); err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to generate dataset: %w", err)
	}

	watchPath := ""
	if cfg.WatchConfig {
		watchPath = cfg.EnvFile
	}
	m.settings, err = settings.New(watchPath, cfg.Overrides)
	if err != nil {
		logger.Warn("settings watcher disabled", "path", watchPath, "error", err)
		m.settings, _ = settings.New("", cfg.Overrides)
	}

	m.wg.Add(1)
	go m.routeEvents()

	return m, nil
}

func paramsFromConfig(cfg *config.Config) dataset.Params {
	return dataset.Params{
		Seed:    cfg.Seed,
		Records: cfg.Records,
		Range:   cfg.Range(),
		Team:    cfg.Team,
		Bins:    cfg.HistogramBins,
	}
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	defer m.wg.Done()

	for {
		select {
		case event := <-m.settings.Events():
			m.handleSettingsEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleSettingsEvent applies a reloaded configuration. The dataset is
// regenerated only when a generation parameter differs from the previous
// configuration, and only the differing fields replace the live ones.
func (m *Manager) handleSettingsEvent(event settings.Event) {
	switch event.Type {
	case settings.EventChanged:
		next := event.Config

		m.mu.Lock()
		prev := m.cfg
		m.cfg = next
		m.mu.Unlock()

		if next.LogLevel != prev.LogLevel {
			logger.SetLevel(next.LogLevel)
			logger.Info("log level changed", "level", next.LogLevel)
		}

		before, after := paramsFromConfig(prev), paramsFromConfig(next)
		if after.Equal(before) {
			return
		}
		_ = m.load(mergeParams(m.dataset.Params(), before, after), ReasonSettings)

	case settings.EventError:
		m.broadcast(ErrorEvent{
			Service: "settings",
			Error:   event.Error,
		})
	}
}

func (m *Manager) load(p dataset.Params, reason string) error {
	snap, err := m.dataset.Load(p)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "dataset", Error: err})
		return err
	}
	m.broadcast(DatasetLoadedEvent{
		Snapshot: snap,
		Filter:   m.dataset.LastFilter(),
		Reason:   reason,
	})
	return nil
}

// mergeParams copies into cur the fields that differ between before and after.
func mergeParams(cur, before, after dataset.Params) dataset.Params {
	if after.Seed != before.Seed {
		cur.Seed = after.Seed
	}
	if after.Records != before.Records {
		cur.Records = after.Records
	}
	if after.Range != before.Range {
		cur.Range = after.Range
	}
	if after.Bins != before.Bins {
		cur.Bins = after.Bins
	}
	if !slices.Equal(after.Team, before.Team) {
		cur.Team = after.Team
	}
	return cur
}

// Snapshot returns the current dataset snapshot.
func (m *Manager) Snapshot() *models.Snapshot {
	return m.dataset.Snapshot()
}

// Filter applies an inclusive date range to the sales records.
func (m *Manager) Filter(r models.DateRange) (models.FilterResult, error) {
	res, err := m.dataset.Filter(r)
	if err != nil {
		return models.FilterResult{}, err
	}
	m.broadcast(FilterAppliedEvent{Result: res})
	return res, nil
}

// LastFilter returns the most recently applied filter result.
func (m *Manager) LastFilter() models.FilterResult {
	return m.dataset.LastFilter()
}

// Regenerate rebuilds the dataset from a new seed, keeping the other parameters.
func (m *Manager) Regenerate(seed uint64) (*models.Snapshot, error) {
	p := m.dataset.Params()
	p.Seed = seed
	if err := m.load(p, ReasonRegenerate); err != nil {
		return nil, err
	}
	return m.dataset.Snapshot(), nil
}

// Export writes the charts and workbook for the current snapshot and last filter into dir.
func (m *Manager) Export(ctx context.Context, dir string) (*export.Result, error) {
	if dir == "" {
		dir = m.Config().ExportDir
	}

	result, err := m.exporter.Run(ctx, dir, export.Data{
		Snapshot: m.dataset.Snapshot(),
		Filter:   m.dataset.LastFilter(),
	})
	if err != nil {
		m.broadcast(ErrorEvent{Service: "export", Error: err})
		return nil, err
	}

	m.mu.Lock()
	m.lastExport = result
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		if err := notify("Operations KPI export complete", result.Summary()); err != nil {
			logger.Debug("desktop notification failed", "error", err)
		}
	}

	m.broadcast(ExportCompletedEvent{Result: result})
	return result, nil
}

// LastExport returns the most recent successful export, or nil.
func (m *Manager) LastExport() *export.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastExport
}

// Config returns the configuration currently in effect.
func (m *Manager) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// WatchedFile returns the .env file being watched, empty when none.
func (m *Manager) WatchedFile() string {
	if m.settings == nil {
		return ""
	}
	return m.settings.Path()
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
func (m *Manager) Subscribe() chan ServiceEvent {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		if m.stopChan != nil {
			close(m.stopChan)
		}
		m.wg.Wait()

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.settings != nil {
			if err := m.settings.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
