package lifecycle

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
	"github.com/louisbranch/reservio/internal/services/reservations/storage/sqlite"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "reservations.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sequence := 0
	return NewManagerWithClock(store,
		func() time.Time { return testNow },
		func() (string, error) {
			sequence++
			return "evt-" + string(rune('a'+sequence-1)), nil
		},
	)
}

func validInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Title:    "Go Meetup",
		Location: "Porto",
		StartAt:  testNow.Add(24 * time.Hour),
		EndAt:    testNow.Add(27 * time.Hour),
		Capacity: 30,
	}
}

func TestCreateEventStartsDraft(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Status != domain.EventStatusDraft {
		t.Fatalf("status = %v, want draft", event.Status)
	}

	stored, err := manager.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if stored.Title != "Go Meetup" || stored.CreatedBy != "admin-1" {
		t.Fatalf("stored event = %+v", stored)
	}
}

func TestCreateEventRejectsPastStart(t *testing.T) {
	manager := newTestManager(t)

	input := validInput()
	input.StartAt = testNow.Add(-time.Hour)
	input.EndAt = testNow.Add(time.Hour)
	_, err := manager.CreateEvent(context.Background(), input, "admin-1")
	if !apperrors.IsCode(err, apperrors.CodeEventStartInPast) {
		t.Fatalf("err = %v, want EVENT_START_IN_PAST", err)
	}
}

func TestUpdateEventDraftOnly(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	title := "Go Meetup, Spring Edition"
	capacity := 45
	updated, err := manager.UpdateEvent(ctx, event.ID, domain.UpdateEventInput{
		Title:    &title,
		Capacity: &capacity,
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != title || updated.Capacity != 45 {
		t.Fatalf("updated event = %+v", updated)
	}
	if updated.Location != "Porto" {
		t.Fatalf("unchanged field lost: %+v", updated)
	}

	if _, err := manager.PublishEvent(ctx, event.ID); err != nil {
		t.Fatalf("PublishEvent: %v", err)
	}
	_, err = manager.UpdateEvent(ctx, event.ID, domain.UpdateEventInput{Title: &title})
	if !apperrors.IsCode(err, apperrors.CodeEventStatusDisallowsOp) {
		t.Fatalf("update published err = %v, want EVENT_STATUS_DISALLOWS_OPERATION", err)
	}
}

func TestUpdateEventRevalidatesMergedWindow(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// New end before the existing start must fail even though only one
	// boundary changed.
	badEnd := event.StartAt.Add(-time.Hour)
	_, err = manager.UpdateEvent(ctx, event.ID, domain.UpdateEventInput{EndAt: &badEnd})
	if !apperrors.IsCode(err, apperrors.CodeEventEndNotAfterStart) {
		t.Fatalf("err = %v, want EVENT_END_NOT_AFTER_START", err)
	}
}

func TestPublishEvent(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	published, err := manager.PublishEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("PublishEvent: %v", err)
	}
	if published.Status != domain.EventStatusPublished {
		t.Fatalf("status = %v, want published", published.Status)
	}

	_, err = manager.PublishEvent(ctx, event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventStatusDisallowsOp) {
		t.Fatalf("double publish err = %v, want EVENT_STATUS_DISALLOWS_OPERATION", err)
	}
}

func TestPublishEventPastStart(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// Drafts accept window edits into the past; publishing then fails.
	pastStart := testNow.Add(-4 * time.Hour)
	pastEnd := testNow.Add(-time.Hour)
	if _, err := manager.UpdateEvent(ctx, event.ID, domain.UpdateEventInput{
		StartAt: &pastStart,
		EndAt:   &pastEnd,
	}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	_, err = manager.PublishEvent(ctx, event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventStartInPast) {
		t.Fatalf("publish past start err = %v, want EVENT_START_IN_PAST", err)
	}
}

func TestCancelEventTerminal(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := manager.CancelEvent(ctx, event.ID); err != nil {
		t.Fatalf("CancelEvent: %v", err)
	}

	_, err = manager.CancelEvent(ctx, event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventAlreadyCancelled) {
		t.Fatalf("double cancel err = %v, want EVENT_ALREADY_CANCELLED", err)
	}
	_, err = manager.PublishEvent(ctx, event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventStatusDisallowsOp) {
		t.Fatalf("publish cancelled err = %v, want EVENT_STATUS_DISALLOWS_OPERATION", err)
	}
}

func TestDeleteEventPublishedGuard(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	event, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := manager.PublishEvent(ctx, event.ID); err != nil {
		t.Fatalf("PublishEvent: %v", err)
	}

	err = manager.DeleteEvent(ctx, event.ID)
	if !apperrors.IsCode(err, apperrors.CodeEventStatusDisallowsOp) {
		t.Fatalf("delete published err = %v, want EVENT_STATUS_DISALLOWS_OPERATION", err)
	}

	if _, err := manager.CancelEvent(ctx, event.ID); err != nil {
		t.Fatalf("CancelEvent: %v", err)
	}
	if err := manager.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("DeleteEvent after cancel: %v", err)
	}
	if _, err := manager.GetEvent(ctx, event.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetEvent after delete err = %v, want ErrNotFound", err)
	}
}

func TestListEventsAndFilters(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	first, err := manager.CreateEvent(ctx, validInput(), "admin-1")
	if err != nil {
		t.Fatalf("CreateEvent first: %v", err)
	}
	secondInput := validInput()
	secondInput.Title = "GopherCon"
	secondInput.Location = "Lisbon"
	secondInput.StartAt = testNow.Add(48 * time.Hour)
	secondInput.EndAt = testNow.Add(52 * time.Hour)
	second, err := manager.CreateEvent(ctx, secondInput, "admin-2")
	if err != nil {
		t.Fatalf("CreateEvent second: %v", err)
	}
	if _, err := manager.PublishEvent(ctx, second.ID); err != nil {
		t.Fatalf("PublishEvent: %v", err)
	}

	all, err := manager.ListEvents(ctx, domain.EventStatusUnspecified)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID {
		t.Fatalf("ListEvents = %+v", all)
	}

	published, err := manager.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(published) != 1 || published[0].ID != second.ID {
		t.Fatalf("ListPublished = %+v", published)
	}

	filtered, err := manager.ListEventsFiltered(ctx, `location = "Lisbon" AND status = "PUBLISHED"`)
	if err != nil {
		t.Fatalf("ListEventsFiltered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != second.ID {
		t.Fatalf("ListEventsFiltered = %+v", filtered)
	}

	if _, err := manager.ListEventsFiltered(ctx, `bogus = 1`); err == nil {
		t.Fatal("ListEventsFiltered accepted an unknown field")
	}
}
