package domain

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validCreateInput(now time.Time) CreateEventInput {
	return CreateEventInput{
		Title:    "GopherCon Afterparty",
		Location: "Pier 27",
		StartAt:  now.Add(24 * time.Hour),
		EndAt:    now.Add(30 * time.Hour),
		Capacity: 50,
	}
}

func TestCreateEventDefaultsToDraft(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	event, err := CreateEvent(validCreateInput(now), "admin-1", fixedClock(now), nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Status != EventStatusDraft {
		t.Fatalf("status = %v, want DRAFT", event.Status)
	}
	if event.ID == "" {
		t.Fatal("expected generated id")
	}
	if event.CreatedBy != "admin-1" {
		t.Fatalf("created by = %q", event.CreatedBy)
	}
	if !event.CreatedAt.Equal(now) || !event.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want %v", event.CreatedAt, event.UpdatedAt, now)
	}
}

func TestCreateEventValidation(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(*CreateEventInput)
		wantCode apperrors.Code
	}{
		{"empty title", func(in *CreateEventInput) { in.Title = "  " }, apperrors.CodeEventTitleEmpty},
		{"title too long", func(in *CreateEventInput) { in.Title = strings.Repeat("x", MaxEventTitleLength+1) }, apperrors.CodeEventTitleTooLong},
		{"description too long", func(in *CreateEventInput) { in.Description = strings.Repeat("x", MaxEventDescriptionLength+1) }, apperrors.CodeEventDescriptionTooLong},
		{"empty location", func(in *CreateEventInput) { in.Location = "" }, apperrors.CodeEventLocationEmpty},
		{"zero capacity", func(in *CreateEventInput) { in.Capacity = 0 }, apperrors.CodeEventInvalidCapacity},
		{"negative capacity", func(in *CreateEventInput) { in.Capacity = -3 }, apperrors.CodeEventInvalidCapacity},
		{"end before start", func(in *CreateEventInput) { in.EndAt = in.StartAt.Add(-time.Hour) }, apperrors.CodeEventEndNotAfterStart},
		{"end equals start", func(in *CreateEventInput) { in.EndAt = in.StartAt }, apperrors.CodeEventEndNotAfterStart},
		{"start in past", func(in *CreateEventInput) { in.StartAt = now.Add(-time.Hour); in.EndAt = now.Add(time.Hour) }, apperrors.CodeEventStartInPast},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput(now)
			tc.mutate(&input)
			_, err := CreateEvent(input, "admin-1", fixedClock(now), nil)
			if !apperrors.IsCode(err, tc.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func TestCreateEventRequiresCreator(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	_, err := CreateEvent(validCreateInput(now), " ", fixedClock(now), nil)
	if !apperrors.IsCode(err, apperrors.CodeEventCreatorMissing) {
		t.Fatalf("err = %v, want EVENT_CREATOR_MISSING", err)
	}
}

func TestEventStatusTransitionTable(t *testing.T) {
	tests := []struct {
		from, to EventStatus
		allowed  bool
	}{
		{EventStatusDraft, EventStatusPublished, true},
		{EventStatusDraft, EventStatusCancelled, true},
		{EventStatusPublished, EventStatusCancelled, true},
		{EventStatusPublished, EventStatusDraft, false},
		{EventStatusPublished, EventStatusPublished, false},
		{EventStatusCancelled, EventStatusDraft, false},
		{EventStatusCancelled, EventStatusPublished, false},
		{EventStatusCancelled, EventStatusCancelled, false},
	}
	for _, tc := range tests {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%v -> %v = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	event := Event{Status: EventStatusCancelled}
	_, err := event.Transition(EventStatusPublished, fixedClock(now))
	if !apperrors.IsCode(err, apperrors.CodeEventInvalidStatusTransition) {
		t.Fatalf("err = %v, want EVENT_INVALID_STATUS_TRANSITION", err)
	}
	meta := apperrors.GetMetadata(err)
	if meta["FromStatus"] != "CANCELLED" || meta["ToStatus"] != "PUBLISHED" {
		t.Fatalf("metadata = %v", meta)
	}
}

func TestApplyEventUpdateMergesDates(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	event, err := CreateEvent(validCreateInput(now), "admin-1", fixedClock(now), nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	// Moving only the end date before the existing start date must fail on
	// the merged window.
	badEnd := event.StartAt.Add(-time.Minute)
	if _, err := ApplyEventUpdate(event, UpdateEventInput{EndAt: &badEnd}, fixedClock(now)); !apperrors.IsCode(err, apperrors.CodeEventEndNotAfterStart) {
		t.Fatalf("err = %v, want EVENT_END_NOT_AFTER_START", err)
	}

	title := "Renamed"
	capacity := 75
	later := now.Add(time.Hour)
	updated, err := ApplyEventUpdate(event, UpdateEventInput{Title: &title, Capacity: &capacity}, fixedClock(later))
	if err != nil {
		t.Fatalf("apply update: %v", err)
	}
	if updated.Title != "Renamed" || updated.Capacity != 75 {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Location != event.Location {
		t.Fatal("unsupplied field changed")
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("updated_at = %v, want %v", updated.UpdatedAt, later)
	}
}

func TestApplyEventUpdateRejectsNonDraft(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	title := "x"
	for _, status := range []EventStatus{EventStatusPublished, EventStatusCancelled} {
		event := Event{Status: status}
		_, err := ApplyEventUpdate(event, UpdateEventInput{Title: &title}, fixedClock(now))
		if !apperrors.IsCode(err, apperrors.CodeEventStatusDisallowsOp) {
			t.Fatalf("status %v: err = %v, want EVENT_STATUS_DISALLOWS_OPERATION", status, err)
		}
	}
}

func TestEventStatusRoundTrip(t *testing.T) {
	for _, status := range []EventStatus{EventStatusDraft, EventStatusPublished, EventStatusCancelled} {
		if got := ParseEventStatus(status.String()); got != status {
			t.Errorf("round trip %v -> %v", status, got)
		}
	}
	if got := ParseEventStatus("nonsense"); got != EventStatusUnspecified {
		t.Errorf("parse nonsense = %v, want unspecified", got)
	}
}
