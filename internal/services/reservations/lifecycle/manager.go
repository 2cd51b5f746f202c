// Package lifecycle manages event creation and publishing state transitions.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/platform/id"
	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/filter"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

// Manager coordinates event lifecycle operations against the event store.
type Manager struct {
	events      storage.EventStore
	now         func() time.Time
	idGenerator func() (string, error)
}

// NewManager creates an event lifecycle manager.
func NewManager(events storage.EventStore) *Manager {
	return &Manager{
		events:      events,
		now:         time.Now,
		idGenerator: id.NewID,
	}
}

// NewManagerWithClock creates a manager with injectable time and id sources
// for tests.
func NewManagerWithClock(events storage.EventStore, now func() time.Time, idGenerator func() (string, error)) *Manager {
	manager := NewManager(events)
	if now != nil {
		manager.now = now
	}
	if idGenerator != nil {
		manager.idGenerator = idGenerator
	}
	return manager
}

// CreateEvent validates input and stores a new DRAFT event.
func (m *Manager) CreateEvent(ctx context.Context, input domain.CreateEventInput, createdBy string) (domain.Event, error) {
	if m == nil || m.events == nil {
		return domain.Event{}, fmt.Errorf("event store is not configured")
	}

	event, err := domain.CreateEvent(input, createdBy, m.now, m.idGenerator)
	if err != nil {
		return domain.Event{}, err
	}
	if err := m.events.PutEvent(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("store event: %w", err)
	}
	log.Printf("event created event_id=%s created_by=%s capacity=%d", event.ID, event.CreatedBy, event.Capacity)
	return event, nil
}

// UpdateEvent applies a partial update to a DRAFT event.
func (m *Manager) UpdateEvent(ctx context.Context, eventID string, update domain.UpdateEventInput) (domain.Event, error) {
	if m == nil || m.events == nil {
		return domain.Event{}, fmt.Errorf("event store is not configured")
	}

	event, err := m.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	merged, err := domain.ApplyEventUpdate(event, update, m.now)
	if err != nil {
		return domain.Event{}, err
	}
	if err := m.events.UpdateEvent(ctx, merged); err != nil {
		return domain.Event{}, fmt.Errorf("store event update: %w", err)
	}
	return merged, nil
}

// PublishEvent moves a DRAFT event with a future start to PUBLISHED.
func (m *Manager) PublishEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if m == nil || m.events == nil {
		return domain.Event{}, fmt.Errorf("event store is not configured")
	}

	event, err := m.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.Status != domain.EventStatusDraft {
		return domain.Event{}, apperrors.WithMetadata(
			apperrors.CodeEventStatusDisallowsOp,
			"only draft events can be published",
			map[string]string{"Status": event.Status.String(), "Operation": "publish"},
		)
	}
	if event.StartAt.Before(m.now().UTC()) {
		return domain.Event{}, apperrors.New(apperrors.CodeEventStartInPast, "cannot publish an event with a past start date")
	}

	published, err := event.Transition(domain.EventStatusPublished, m.now)
	if err != nil {
		return domain.Event{}, err
	}
	if err := m.events.UpdateEvent(ctx, published); err != nil {
		return domain.Event{}, fmt.Errorf("store event publish: %w", err)
	}
	log.Printf("event published event_id=%s start_at=%s", published.ID, published.StartAt.Format(time.RFC3339))
	return published, nil
}

// CancelEvent moves a DRAFT or PUBLISHED event to CANCELLED.
func (m *Manager) CancelEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if m == nil || m.events == nil {
		return domain.Event{}, fmt.Errorf("event store is not configured")
	}

	event, err := m.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.Status == domain.EventStatusCancelled {
		return domain.Event{}, apperrors.New(apperrors.CodeEventAlreadyCancelled, "event is already cancelled")
	}

	cancelled, err := event.Transition(domain.EventStatusCancelled, m.now)
	if err != nil {
		return domain.Event{}, err
	}
	if err := m.events.UpdateEvent(ctx, cancelled); err != nil {
		return domain.Event{}, fmt.Errorf("store event cancel: %w", err)
	}
	log.Printf("event cancelled event_id=%s", cancelled.ID)
	return cancelled, nil
}

// DeleteEvent removes a DRAFT or CANCELLED event and its registrations.
func (m *Manager) DeleteEvent(ctx context.Context, eventID string) error {
	if m == nil || m.events == nil {
		return fmt.Errorf("event store is not configured")
	}

	event, err := m.events.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status == domain.EventStatusPublished {
		return apperrors.WithMetadata(
			apperrors.CodeEventStatusDisallowsOp,
			"cannot delete a published event",
			map[string]string{"Status": event.Status.String(), "Operation": "delete"},
		)
	}
	if err := m.events.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	log.Printf("event deleted event_id=%s", eventID)
	return nil
}

// GetEvent returns one event by id.
func (m *Manager) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if m == nil || m.events == nil {
		return domain.Event{}, fmt.Errorf("event store is not configured")
	}
	return m.events.GetEvent(ctx, eventID)
}

// ListEvents returns all events, optionally narrowed to one status, ordered
// by start time.
func (m *Manager) ListEvents(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	if m == nil || m.events == nil {
		return nil, fmt.Errorf("event store is not configured")
	}
	return m.events.ListEvents(ctx, storage.EventQuery{Status: status})
}

// ListPublished returns the events open to participants.
func (m *Manager) ListPublished(ctx context.Context) ([]domain.Event, error) {
	return m.ListEvents(ctx, domain.EventStatusPublished)
}

// ListEventsFiltered returns events matching an AIP-160 filter expression.
func (m *Manager) ListEventsFiltered(ctx context.Context, filterStr string) ([]domain.Event, error) {
	if m == nil || m.events == nil {
		return nil, fmt.Errorf("event store is not configured")
	}

	condition, err := filter.ParseEventFilter(strings.TrimSpace(filterStr))
	if err != nil {
		return nil, fmt.Errorf("event filter: %w", err)
	}
	return m.events.ListEvents(ctx, storage.EventQuery{
		FilterClause: condition.Clause,
		FilterParams: condition.Params,
	})
}
