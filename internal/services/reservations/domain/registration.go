package domain

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/platform/id"
)

// RegistrationStatus describes where a seat claim sits in its lifecycle.
type RegistrationStatus int

const (
	// RegistrationStatusUnspecified represents an invalid registration status value.
	RegistrationStatusUnspecified RegistrationStatus = iota
	// RegistrationStatusPending indicates a seat request awaiting admin review.
	RegistrationStatusPending
	// RegistrationStatusConfirmed indicates an admin-confirmed seat.
	RegistrationStatusConfirmed
	// RegistrationStatusCancelled indicates a released seat.
	RegistrationStatusCancelled
)

// String returns the canonical storage name for the status.
func (s RegistrationStatus) String() string {
	switch s {
	case RegistrationStatusPending:
		return "PENDING"
	case RegistrationStatusConfirmed:
		return "CONFIRMED"
	case RegistrationStatusCancelled:
		return "CANCELLED"
	default:
		return "UNSPECIFIED"
	}
}

// ParseRegistrationStatus maps a storage name back to a RegistrationStatus.
func ParseRegistrationStatus(value string) RegistrationStatus {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PENDING":
		return RegistrationStatusPending
	case "CONFIRMED":
		return RegistrationStatusConfirmed
	case "CANCELLED":
		return RegistrationStatusCancelled
	default:
		return RegistrationStatusUnspecified
	}
}

// CountsAgainstCapacity reports whether a registration in this status holds
// a seat for the booking-request capacity check.
func (s RegistrationStatus) CountsAgainstCapacity() bool {
	return s == RegistrationStatusPending || s == RegistrationStatusConfirmed
}

// registrationTransitions is the closed transition table for registration
// statuses. CANCELLED -> PENDING exists only for the re-registration path,
// which reuses the row instead of inserting a duplicate.
var registrationTransitions = map[RegistrationStatus][]RegistrationStatus{
	RegistrationStatusPending:   {RegistrationStatusConfirmed, RegistrationStatusCancelled},
	RegistrationStatusConfirmed: {RegistrationStatusCancelled},
	RegistrationStatusCancelled: {RegistrationStatusPending},
}

// CanTransitionTo reports whether the status may move to next.
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	for _, allowed := range registrationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Registration is one participant's claim on a seat for one event. At most
// one row exists per (UserID, EventID) pair.
type Registration struct {
	ID        string
	UserID    string
	EventID   string
	Status    RegistrationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRegistration creates a PENDING registration with a generated ID.
func NewRegistration(eventID, userID string, now func() time.Time, idGenerator func() (string, error)) (Registration, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" || userID == "" {
		return Registration{}, apperrors.New(apperrors.CodeNotFound, "event id and user id are required")
	}

	registrationID, err := idGenerator()
	if err != nil {
		return Registration{}, apperrors.Wrap(apperrors.CodeUnknown, "generate registration id", err)
	}

	createdAt := now().UTC()
	return Registration{
		ID:        registrationID,
		UserID:    userID,
		EventID:   eventID,
		Status:    RegistrationStatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}
