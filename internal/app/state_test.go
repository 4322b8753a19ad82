package app

import (
	"testing"
	"time"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/export"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.GetSnapshot() != nil {
		t.Error("Snapshot should be nil")
	}
	if !s.Loading.Initial {
		t.Error("Initial loading should be true")
	}
	if !s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be zero before the first snapshot")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading(ResourceDataset, true)
	if !s.Loading.Dataset {
		t.Error("Dataset loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading(ResourceDataset, false)
	// Initial is still true
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading(ResourceInitial, false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	s.SetLoading(ResourceExport, true)
	s.SetLoading(ResourceFilter, true)
	if !s.Loading.Filter || !s.IsExporting() {
		t.Errorf("Loading = %+v, want filter and export", s.Loading)
	}

	// Unknown resources are ignored.
	before := s.Loading
	s.SetLoading("bogus", true)
	if s.Loading != before {
		t.Error("unknown resource should not change loading state")
	}
}

func TestState_Snapshot(t *testing.T) {
	s := NewState()
	snap := &models.Snapshot{Seed: 42}
	filter := models.FilterResult{
		Range:   models.NewDateRange(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)),
		Records: []models.SalesRecord{{Leads: 1}},
	}

	s.SetSnapshot(snap, filter)

	if s.GetSnapshot() != snap {
		t.Error("GetSnapshot should return the stored snapshot")
	}
	if len(s.GetFilter().Records) != 1 {
		t.Error("filter should be stored with the snapshot")
	}
	if s.IsInitialLoading() {
		t.Error("Initial loading should end with the first snapshot")
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}

	s.SetFilter(models.FilterResult{})
	if len(s.GetFilter().Records) != 0 {
		t.Error("SetFilter should replace the filter")
	}
	if s.GetSnapshot() != snap {
		t.Error("SetFilter must not touch the snapshot")
	}
}

func TestState_LastExport(t *testing.T) {
	s := NewState()
	if s.GetLastExport() != nil {
		t.Error("LastExport should start nil")
	}
	res := &export.Result{Dir: "out"}
	s.SetLastExport(res)
	if s.GetLastExport() != res {
		t.Error("GetLastExport should return the stored result")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id1 := s.AddNotification(NotificationInfo, "info", time.Minute)
	id2 := s.AddNotification(NotificationError, "error", 0)
	if id1 == id2 || id1 == "" {
		t.Errorf("notification IDs should be unique, got %q and %q", id1, id2)
	}

	if got := len(s.GetNotifications()); got != 2 {
		t.Fatalf("got %d notifications, want 2", got)
	}

	s.RemoveNotification(id1)
	notifs := s.GetNotifications()
	if len(notifs) != 1 || notifs[0].ID != id2 {
		t.Errorf("RemoveNotification left %v", notifs)
	}

	s.RemoveNotification(id2)
	if len(s.GetNotifications()) != 0 {
		t.Error("RemoveNotification should leave nothing")
	}
}

func TestState_NotificationLimit(t *testing.T) {
	s := NewState()
	for range maxNotifications + 5 {
		s.AddNotification(NotificationInfo, "n", 0)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("got %d notifications, want %d", got, maxNotifications)
	}
}

func TestState_ExpiredNotifications(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationInfo, "short", time.Nanosecond)
	s.AddNotification(NotificationInfo, "sticky", 0)
	time.Sleep(time.Millisecond)

	notifs := s.GetNotifications()
	if len(notifs) != 1 || notifs[0].Message != "sticky" {
		t.Errorf("expired notification still visible: %v", notifs)
	}

	s.ClearExpiredNotifications()
	if len(s.notifications) != 1 {
		t.Errorf("ClearExpiredNotifications left %d", len(s.notifications))
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Generating data...")
	s.SetLoadingNotification("Exporting...")

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("loading notification should be unique, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID || notifs[0].Message != "Exporting..." {
		t.Errorf("unexpected loading notification %+v", notifs[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearLoadingNotification should remove it")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
