package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"", "Road", "plumbing", "roads"} {
		if c.Valid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []Status{"", "Pending", "in progress", "closed"} {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestAppendTimelineEntry_KeepsLockStep(t *testing.T) {
	inc := &Incident{}
	actor := primitive.NewObjectID()

	first := TimelineEntry{Status: StatusPending, Note: "Incident reported", UpdatedBy: actor, Timestamp: time.Now()}
	inc.AppendTimelineEntry(first)

	second := TimelineEntry{Status: StatusAcknowledged, Note: "Seen", UpdatedBy: actor, Timestamp: time.Now().Add(time.Minute)}
	inc.AppendTimelineEntry(second)

	if len(inc.Timeline) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(inc.Timeline))
	}
	if inc.Status != StatusAcknowledged {
		t.Errorf("expected status %q, got %q", StatusAcknowledged, inc.Status)
	}
	if inc.Timeline[0] != first || inc.Timeline[1] != second {
		t.Errorf("timeline entries mutated or reordered")
	}
	if !inc.UpdatedAt.Equal(second.Timestamp) {
		t.Errorf("updatedAt should track the latest entry timestamp")
	}
}

func TestLastTimelineEntry(t *testing.T) {
	inc := &Incident{}
	if inc.LastTimelineEntry() != nil {
		t.Error("empty timeline should have no last entry")
	}

	inc.AppendTimelineEntry(TimelineEntry{Status: StatusPending, Timestamp: time.Now()})
	last := inc.LastTimelineEntry()
	if last == nil || last.Status != StatusPending {
		t.Errorf("unexpected last entry: %+v", last)
	}
}

func TestAppendResolutionPhotos_Order(t *testing.T) {
	inc := &Incident{}
	inc.AppendResolutionPhotos([]string{"/uploads/a.jpg"})
	inc.AppendResolutionPhotos([]string{"/uploads/b.jpg", "/uploads/c.jpg"})

	want := []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"}
	if len(inc.ResolutionPhotos) != len(want) {
		t.Fatalf("expected %d photos, got %d", len(want), len(inc.ResolutionPhotos))
	}
	for i := range want {
		if inc.ResolutionPhotos[i] != want[i] {
			t.Errorf("photo %d: got %q, want %q", i, inc.ResolutionPhotos[i], want[i])
		}
	}
}
