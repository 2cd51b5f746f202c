// Package ticket assembles ticket data for confirmed registrations.
package ticket

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/reservio/internal/platform/errors"
	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

// Data is the content a ticket renderer needs for one confirmed seat.
type Data struct {
	RegistrationID string
	UserID         string
	EventTitle     string
	EventLocation  string
	EventStartAt   time.Time
	EventEndAt     time.Time
	ConfirmedAt    time.Time
}

// Service serves ticket data for participants.
type Service struct {
	events        storage.EventStore
	registrations storage.RegistrationStore
}

// NewService creates a ticket service.
func NewService(events storage.EventStore, registrations storage.RegistrationStore) *Service {
	return &Service{events: events, registrations: registrations}
}

// TicketData returns the ticket content for a registration. The registration
// must exist, belong to the caller, and be CONFIRMED.
func (s *Service) TicketData(ctx context.Context, registrationID, userID string) (Data, error) {
	if s == nil || s.events == nil || s.registrations == nil {
		return Data{}, fmt.Errorf("storage is not configured")
	}

	registration, err := s.registrations.GetRegistration(ctx, registrationID)
	if err != nil {
		return Data{}, err
	}
	if registration.UserID != userID {
		return Data{}, apperrors.New(apperrors.CodeTicketNotOwned, "you can only download tickets for your own registrations")
	}
	if registration.Status != domain.RegistrationStatusConfirmed {
		return Data{}, apperrors.New(apperrors.CodeTicketNotConfirmed, "ticket is only available for confirmed registrations")
	}

	event, err := s.events.GetEvent(ctx, registration.EventID)
	if err != nil {
		return Data{}, err
	}

	return Data{
		RegistrationID: registration.ID,
		UserID:         registration.UserID,
		EventTitle:     event.Title,
		EventLocation:  event.Location,
		EventStartAt:   event.StartAt,
		EventEndAt:     event.EndAt,
		ConfirmedAt:    registration.UpdatedAt,
	}, nil
}
