package domain

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/platform/id"
)

// Field length bounds for event input.
const (
	MaxEventTitleLength       = 200
	MaxEventDescriptionLength = 2000
	MaxEventLocationLength    = 200
)

// EventStatus describes where an event sits in its publishing lifecycle.
type EventStatus int

const (
	// EventStatusUnspecified represents an invalid event status value.
	EventStatusUnspecified EventStatus = iota
	// EventStatusDraft indicates an unpublished, editable event.
	EventStatusDraft
	// EventStatusPublished indicates an event open for registrations.
	EventStatusPublished
	// EventStatusCancelled indicates a terminally cancelled event.
	EventStatusCancelled
)

// String returns the canonical storage name for the status.
func (s EventStatus) String() string {
	switch s {
	case EventStatusDraft:
		return "DRAFT"
	case EventStatusPublished:
		return "PUBLISHED"
	case EventStatusCancelled:
		return "CANCELLED"
	default:
		return "UNSPECIFIED"
	}
}

// ParseEventStatus maps a storage name back to an EventStatus.
func ParseEventStatus(value string) EventStatus {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DRAFT":
		return EventStatusDraft
	case "PUBLISHED":
		return EventStatusPublished
	case "CANCELLED":
		return EventStatusCancelled
	default:
		return EventStatusUnspecified
	}
}

// eventTransitions is the closed transition table for event statuses.
// Nothing re-enters DRAFT and CANCELLED is terminal.
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:     {EventStatusPublished, EventStatusCancelled},
	EventStatusPublished: {EventStatusCancelled},
	EventStatusCancelled: {},
}

// CanTransitionTo reports whether the status may move to next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event represents an organizer-published occasion with finite seat capacity.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartAt     time.Time
	EndAt       time.Time
	Capacity    int
	Metadata    map[string]string
	Status      EventStatus
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEventInput describes the fields needed to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	StartAt     time.Time
	EndAt       time.Time
	Capacity    int
	Metadata    map[string]string
}

// UpdateEventInput describes a partial event update. Nil fields are left
// unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Location    *string
	StartAt     *time.Time
	EndAt       *time.Time
	Capacity    *int
	Metadata    map[string]string
}

// CreateEvent creates a new DRAFT event with a generated ID and timestamps.
func CreateEvent(input CreateEventInput, createdBy string, now func() time.Time, idGenerator func() (string, error)) (Event, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return Event{}, apperrors.New(apperrors.CodeEventCreatorMissing, "event creator is required")
	}

	normalized, err := NormalizeCreateEventInput(input)
	if err != nil {
		return Event{}, err
	}
	if err := ValidateEventWindow(normalized.StartAt, normalized.EndAt); err != nil {
		return Event{}, err
	}
	if normalized.StartAt.Before(now().UTC()) {
		return Event{}, apperrors.New(apperrors.CodeEventStartInPast, "event start date is in the past")
	}

	eventID, err := idGenerator()
	if err != nil {
		return Event{}, apperrors.Wrap(apperrors.CodeUnknown, "generate event id", err)
	}

	createdAt := now().UTC()
	return Event{
		ID:          eventID,
		Title:       normalized.Title,
		Description: normalized.Description,
		Location:    normalized.Location,
		StartAt:     normalized.StartAt,
		EndAt:       normalized.EndAt,
		Capacity:    normalized.Capacity,
		Metadata:    cloneMetadata(normalized.Metadata),
		Status:      EventStatusDraft,
		CreatedBy:   createdBy,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreateEventInput trims and validates event input fields.
func NormalizeCreateEventInput(input CreateEventInput) (CreateEventInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	input.StartAt = input.StartAt.UTC()
	input.EndAt = input.EndAt.UTC()

	if input.Title == "" {
		return CreateEventInput{}, apperrors.New(apperrors.CodeEventTitleEmpty, "event title is required")
	}
	if len(input.Title) > MaxEventTitleLength {
		return CreateEventInput{}, tooLongError(apperrors.CodeEventTitleTooLong, "event title", MaxEventTitleLength)
	}
	if len(input.Description) > MaxEventDescriptionLength {
		return CreateEventInput{}, tooLongError(apperrors.CodeEventDescriptionTooLong, "event description", MaxEventDescriptionLength)
	}
	if input.Location == "" {
		return CreateEventInput{}, apperrors.New(apperrors.CodeEventLocationEmpty, "event location is required")
	}
	if len(input.Location) > MaxEventLocationLength {
		return CreateEventInput{}, tooLongError(apperrors.CodeEventLocationTooLong, "event location", MaxEventLocationLength)
	}
	if input.Capacity <= 0 {
		return CreateEventInput{}, apperrors.New(apperrors.CodeEventInvalidCapacity, "event capacity must be positive")
	}
	return input, nil
}

// ValidateEventWindow checks that the event end is strictly after its start.
func ValidateEventWindow(startAt, endAt time.Time) error {
	if !endAt.After(startAt) {
		return apperrors.New(apperrors.CodeEventEndNotAfterStart, "event end date must be after start date")
	}
	return nil
}

// ApplyEventUpdate merges a partial update into an existing DRAFT event and
// re-validates the merged result. The event status is not touched.
func ApplyEventUpdate(event Event, update UpdateEventInput, now func() time.Time) (Event, error) {
	if now == nil {
		now = time.Now
	}
	if event.Status != EventStatusDraft {
		return Event{}, apperrors.WithMetadata(
			apperrors.CodeEventStatusDisallowsOp,
			"only draft events can be edited",
			map[string]string{"Status": event.Status.String(), "Operation": "update"},
		)
	}

	merged := event
	if update.Title != nil {
		merged.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		merged.Description = strings.TrimSpace(*update.Description)
	}
	if update.Location != nil {
		merged.Location = strings.TrimSpace(*update.Location)
	}
	if update.StartAt != nil {
		merged.StartAt = update.StartAt.UTC()
	}
	if update.EndAt != nil {
		merged.EndAt = update.EndAt.UTC()
	}
	if update.Capacity != nil {
		merged.Capacity = *update.Capacity
	}
	if update.Metadata != nil {
		merged.Metadata = cloneMetadata(update.Metadata)
	}

	normalized, err := NormalizeCreateEventInput(CreateEventInput{
		Title:       merged.Title,
		Description: merged.Description,
		Location:    merged.Location,
		StartAt:     merged.StartAt,
		EndAt:       merged.EndAt,
		Capacity:    merged.Capacity,
		Metadata:    merged.Metadata,
	})
	if err != nil {
		return Event{}, err
	}
	if err := ValidateEventWindow(normalized.StartAt, normalized.EndAt); err != nil {
		return Event{}, err
	}

	merged.Title = normalized.Title
	merged.Description = normalized.Description
	merged.Location = normalized.Location
	merged.StartAt = normalized.StartAt
	merged.EndAt = normalized.EndAt
	merged.UpdatedAt = now().UTC()
	return merged, nil
}

// Transition moves the event to the next status or fails with the
// transition table violation.
func (e Event) Transition(next EventStatus, now func() time.Time) (Event, error) {
	if now == nil {
		now = time.Now
	}
	if !e.Status.CanTransitionTo(next) {
		return Event{}, apperrors.WithMetadata(
			apperrors.CodeEventInvalidStatusTransition,
			"invalid event status transition",
			map[string]string{"FromStatus": e.Status.String(), "ToStatus": next.String()},
		)
	}
	e.Status = next
	e.UpdatedAt = now().UTC()
	return e, nil
}

func tooLongError(code apperrors.Code, field string, max int) *apperrors.Error {
	return apperrors.WithMetadata(code, field+" exceeds maximum length", map[string]string{
		"MaxLength": strconv.Itoa(max),
	})
}

func cloneMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	cloned := make(map[string]string, len(metadata))
	for key, value := range metadata {
		cloned[key] = value
	}
	return cloned
}
