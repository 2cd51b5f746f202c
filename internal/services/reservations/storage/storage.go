// Package storage defines persistence contracts for reservations state.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/services/reservations/domain"
)

// ErrNotFound indicates a requested event or registration record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrPendingReservationExists indicates the user already holds a PENDING
// registration for the event.
var ErrPendingReservationExists = apperrors.New(apperrors.CodeRegistrationPendingExists, "pending reservation already exists for user and event")

// ErrConfirmedReservationExists indicates the user already holds a CONFIRMED
// registration for the event.
var ErrConfirmedReservationExists = apperrors.New(apperrors.CodeRegistrationConfirmedExists, "confirmed reservation already exists for user and event")

// ErrEventFull indicates a seat claim found no remaining capacity; active
// registrations (PENDING + CONFIRMED) already fill the event.
var ErrEventFull = apperrors.New(apperrors.CodeEventFull, "event is fully booked")

// ErrEventAtCapacity indicates a confirmation found no remaining capacity;
// CONFIRMED registrations already fill the event.
var ErrEventAtCapacity = apperrors.New(apperrors.CodeEventAtCapacity, "event is at full confirmed capacity")

// ErrRegistrationAlreadyConfirmed indicates a confirmation targeted an
// already-CONFIRMED registration.
var ErrRegistrationAlreadyConfirmed = apperrors.New(apperrors.CodeRegistrationAlreadyConfirmed, "registration is already confirmed")

// ErrRegistrationCancelledLocked indicates a confirmation targeted a
// CANCELLED registration, which only re-registration may revive.
var ErrRegistrationCancelledLocked = apperrors.New(apperrors.CodeRegistrationCancelledLocked, "cannot confirm a cancelled registration")

// ErrRegistrationAlreadyCancelled indicates a release targeted an
// already-CANCELLED registration.
var ErrRegistrationAlreadyCancelled = apperrors.New(apperrors.CodeRegistrationAlreadyCancelled, "registration is already cancelled")

// EventQuery narrows an event listing. The zero value lists everything
// ordered by start time ascending.
type EventQuery struct {
	// Status filters to one lifecycle status when not unspecified.
	Status domain.EventStatus
	// FilterClause is an optional SQL condition produced by the filter
	// package, with FilterParams as its positional arguments.
	FilterClause string
	FilterParams []any
}

// ClaimSeatParams carries one seat claim for ClaimSeat.
//
// Capacity is read from the event before the claim; that is safe because
// capacity is only editable while an event is DRAFT and claims are only
// accepted while it is PUBLISHED.
type ClaimSeatParams struct {
	EventID string
	UserID  string
	// NewRegistrationID is used only when a fresh row is inserted; the
	// reuse path keeps the existing row id.
	NewRegistrationID string
	Capacity          int
	Now               time.Time
}

// EventStatusCounts aggregates events by lifecycle status.
type EventStatusCounts struct {
	Total     int
	Draft     int
	Published int
	Cancelled int
}

// RegistrationStatusCounts aggregates registrations by status.
type RegistrationStatusCounts struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
}

// EventLoad is one published event's confirmed-seat load.
type EventLoad struct {
	EventID        string
	Title          string
	Capacity       int
	ConfirmedCount int
}

// EventStore persists event records.
type EventStore interface {
	PutEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context, query EventQuery) ([]domain.Event, error)
}

// RegistrationStore persists registration records and runs the capacity
// sensitive count-then-act sequences atomically.
type RegistrationStore interface {
	GetRegistration(ctx context.Context, registrationID string) (domain.Registration, error)
	GetRegistrationByUserAndEvent(ctx context.Context, userID, eventID string) (domain.Registration, error)
	ListRegistrationsByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)

	// ClaimSeat creates a PENDING registration for (UserID, EventID) inside
	// one write transaction: an existing PENDING row fails with
	// ErrPendingReservationExists, a CONFIRMED row with
	// ErrConfirmedReservationExists, and a CANCELLED row is reused
	// (flipped back to PENDING). Both the reuse and fresh-insert paths
	// fail with ErrEventFull when active registrations already reach
	// Capacity.
	ClaimSeat(ctx context.Context, params ClaimSeatParams) (domain.Registration, error)

	// ConfirmSeat promotes a PENDING registration to CONFIRMED inside one
	// write transaction, failing with ErrEventAtCapacity when CONFIRMED
	// registrations already reach the event capacity.
	ConfirmSeat(ctx context.Context, registrationID string, now time.Time) (domain.Registration, error)

	// ReleaseSeat moves a registration to CANCELLED, failing with
	// ErrRegistrationAlreadyCancelled when it already is. The update is
	// conditional so concurrent releases cannot double-apply.
	ReleaseSeat(ctx context.Context, registrationID string, now time.Time) (domain.Registration, error)
}

// StatsStore serves read-only aggregates for the admin view.
type StatsStore interface {
	CountEventsByStatus(ctx context.Context) (EventStatusCounts, error)
	CountUpcomingPublishedEvents(ctx context.Context, now time.Time) (int, error)
	CountRegistrationsByStatus(ctx context.Context) (RegistrationStatusCounts, error)
	// PublishedEventLoads returns confirmed-seat loads for every PUBLISHED
	// event, ordered by event id for stable downstream ranking.
	PublishedEventLoads(ctx context.Context) ([]EventLoad, error)
}
