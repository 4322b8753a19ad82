package app

import (
	"time"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/export"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// SnapshotLoadedMsg carries the dataset snapshot and its current filter.
type SnapshotLoadedMsg struct {
	Snapshot *models.Snapshot
	Filter   models.FilterResult
}

// RegenerateMsg requests a new dataset from the given seed.
type RegenerateMsg struct {
	Seed uint64
}

// RegenerateResultMsg contains the result of a regeneration.
type RegenerateResultMsg struct {
	Seed     uint64
	Snapshot *models.Snapshot
	Filter   models.FilterResult
	Error    error
}

// FilterRequestMsg asks the root model to apply a date range. Tabs send it
// after parsing their inputs.
type FilterRequestMsg struct {
	Range models.DateRange
}

// FilterAppliedMsg contains the result of a filter request.
type FilterAppliedMsg struct {
	Result models.FilterResult
	Error  error
}

// ExportRequestMsg requests writing charts and the workbook. An empty Dir
// means the configured export directory.
type ExportRequestMsg struct {
	Dir string
}

// ExportResultMsg contains the result of an export run.
type ExportResultMsg struct {
	Result *export.Result
	Error  error
}

// RefreshMsg requests reloading the snapshot from the service manager.
type RefreshMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}
