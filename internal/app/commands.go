package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// ExportTimeout bounds a single export run started from the UI.
	ExportTimeout = 30 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// send returns a command that delivers msg back to Update.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// loadSnapshotCmd returns a command that reads the current snapshot and filter.
func loadSnapshotCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return SnapshotLoadedMsg{
			Snapshot: mgr.Snapshot(),
			Filter:   mgr.LastFilter(),
		}
	}
}

// regenerateCmd returns a command that rebuilds the dataset from seed.
func regenerateCmd(mgr *services.Manager, seed uint64) tea.Cmd {
	return func() tea.Msg {
		snap, err := mgr.Regenerate(seed)
		if err != nil {
			return RegenerateResultMsg{Seed: seed, Error: err}
		}
		return RegenerateResultMsg{
			Seed:     seed,
			Snapshot: snap,
			Filter:   mgr.LastFilter(),
		}
	}
}

// applyFilterCmd returns a command that filters the sales records by r.
func applyFilterCmd(mgr *services.Manager, r models.DateRange) tea.Cmd {
	return func() tea.Msg {
		res, err := mgr.Filter(r)
		return FilterAppliedMsg{Result: res, Error: err}
	}
}

// exportCmd returns a command that writes the export files into dir.
func exportCmd(mgr *services.Manager, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ExportTimeout)
		defer cancel()

		result, err := mgr.Export(ctx, dir)
		return ExportResultMsg{Result: result, Error: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notificationDurations is how long each kind of toast stays up. Errors
// linger so they can be read, info toasts clear quickly.
var notificationDurations = map[NotificationType]time.Duration{
	NotificationSuccess: DefaultNotificationDuration,
	NotificationError:   LongNotificationDuration,
	NotificationWarning: DefaultNotificationDuration,
	NotificationInfo:    QuickNotificationDuration,
}

// notifyCmd returns a command that raises a toast of the given kind.
func notifyCmd(kind NotificationType, message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     kind,
			Message:  message,
			Duration: notificationDurations[kind],
		}
	}
}
