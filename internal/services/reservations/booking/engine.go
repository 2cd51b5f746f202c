// Package booking enforces seat capacity for event registrations.
package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/platform/id"
	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

// Engine coordinates registration operations against the event and
// registration stores.
type Engine struct {
	events        storage.EventStore
	registrations storage.RegistrationStore
	now           func() time.Time
	idGenerator   func() (string, error)
}

// NewEngine creates a registration capacity engine.
func NewEngine(events storage.EventStore, registrations storage.RegistrationStore) *Engine {
	return &Engine{
		events:        events,
		registrations: registrations,
		now:           time.Now,
		idGenerator:   id.NewID,
	}
}

// NewEngineWithClock creates an engine with injectable time and id sources
// for tests.
func NewEngineWithClock(events storage.EventStore, registrations storage.RegistrationStore, now func() time.Time, idGenerator func() (string, error)) *Engine {
	engine := NewEngine(events, registrations)
	if now != nil {
		engine.now = now
	}
	if idGenerator != nil {
		engine.idGenerator = idGenerator
	}
	return engine
}

// CreateRegistration books a PENDING seat for a participant on a published
// event. The capacity count and the row write happen atomically in the
// store, so concurrent bookings on the same event never oversell.
func (e *Engine) CreateRegistration(ctx context.Context, eventID, userID string) (domain.Registration, error) {
	if e == nil || e.events == nil || e.registrations == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}

	event, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Registration{}, err
	}
	if event.Status != domain.EventStatusPublished {
		if event.Status == domain.EventStatusCancelled {
			return domain.Registration{}, apperrors.New(apperrors.CodeEventCancelled, "cannot register for a cancelled event")
		}
		return domain.Registration{}, apperrors.New(apperrors.CodeEventNotPublished, "cannot register for an event that is not published")
	}
	if event.EndAt.Before(e.now().UTC()) {
		return domain.Registration{}, apperrors.New(apperrors.CodeEventEnded, "cannot register for a past event")
	}

	registrationID, err := e.idGenerator()
	if err != nil {
		return domain.Registration{}, apperrors.Wrap(apperrors.CodeUnknown, "generate registration id", err)
	}

	registration, err := e.registrations.ClaimSeat(ctx, storage.ClaimSeatParams{
		EventID:           event.ID,
		UserID:            userID,
		NewRegistrationID: registrationID,
		Capacity:          event.Capacity,
		Now:               e.now(),
	})
	if err != nil {
		return domain.Registration{}, err
	}
	log.Printf("registration created registration_id=%s event_id=%s user_id=%s", registration.ID, event.ID, userID)
	return registration, nil
}

// CancelOwnRegistration releases a participant's own seat.
func (e *Engine) CancelOwnRegistration(ctx context.Context, registrationID, userID string) (domain.Registration, error) {
	if e == nil || e.registrations == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}

	registration, err := e.registrations.GetRegistration(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, err
	}
	if registration.UserID != userID {
		return domain.Registration{}, apperrors.New(apperrors.CodeRegistrationNotOwned, "you can only cancel your own reservations")
	}

	released, err := e.registrations.ReleaseSeat(ctx, registrationID, e.now())
	if err != nil {
		return domain.Registration{}, err
	}
	log.Printf("registration cancelled registration_id=%s user_id=%s", registrationID, userID)
	return released, nil
}

// ConfirmRegistration promotes a PENDING registration to CONFIRMED, bounded
// by the event's confirmed-seat capacity.
func (e *Engine) ConfirmRegistration(ctx context.Context, registrationID string) (domain.Registration, error) {
	if e == nil || e.registrations == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}

	confirmed, err := e.registrations.ConfirmSeat(ctx, registrationID, e.now())
	if err != nil {
		return domain.Registration{}, err
	}
	log.Printf("registration confirmed registration_id=%s event_id=%s", confirmed.ID, confirmed.EventID)
	return confirmed, nil
}

// RejectRegistration cancels a registration on behalf of an admin. Rejecting
// an already-cancelled registration fails.
func (e *Engine) RejectRegistration(ctx context.Context, registrationID string) (domain.Registration, error) {
	if e == nil || e.registrations == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}

	released, err := e.registrations.ReleaseSeat(ctx, registrationID, e.now())
	if err != nil {
		return domain.Registration{}, err
	}
	log.Printf("registration rejected registration_id=%s event_id=%s", released.ID, released.EventID)
	return released, nil
}

// FindByUser returns a participant's registrations, newest first.
func (e *Engine) FindByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	if e == nil || e.registrations == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return e.registrations.ListRegistrationsByUser(ctx, userID)
}

// FindByEvent returns an event's registrations, newest first. The event must
// exist.
func (e *Engine) FindByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if e == nil || e.events == nil || e.registrations == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if _, err := e.events.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return e.registrations.ListRegistrationsByEvent(ctx, eventID)
}
