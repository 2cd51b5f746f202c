package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

// CountEventsByStatus aggregates event rows by lifecycle status.
func (s *Store) CountEventsByStatus(ctx context.Context) (storage.EventStatusCounts, error) {
	if err := ctx.Err(); err != nil {
		return storage.EventStatusCounts{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.EventStatusCounts{}, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT status, COUNT(*) FROM events GROUP BY status`)
	if err != nil {
		return storage.EventStatusCounts{}, fmt.Errorf("count events by status: %w", err)
	}
	defer rows.Close()

	var counts storage.EventStatusCounts
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return storage.EventStatusCounts{}, fmt.Errorf("count events by status: %w", err)
		}
		counts.Total += count
		switch domain.ParseEventStatus(status) {
		case domain.EventStatusDraft:
			counts.Draft = count
		case domain.EventStatusPublished:
			counts.Published = count
		case domain.EventStatusCancelled:
			counts.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return storage.EventStatusCounts{}, fmt.Errorf("count events by status: %w", err)
	}
	return counts, nil
}

// CountUpcomingPublishedEvents counts published events starting at or after now.
func (s *Store) CountUpcomingPublishedEvents(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM events WHERE status = ? AND start_at >= ?`,
		domain.EventStatusPublished.String(),
		toMillis(now),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count upcoming published events: %w", err)
	}
	return count, nil
}

// CountRegistrationsByStatus aggregates registration rows by status.
func (s *Store) CountRegistrationsByStatus(ctx context.Context) (storage.RegistrationStatusCounts, error) {
	if err := ctx.Err(); err != nil {
		return storage.RegistrationStatusCounts{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RegistrationStatusCounts{}, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT status, COUNT(*) FROM registrations GROUP BY status`)
	if err != nil {
		return storage.RegistrationStatusCounts{}, fmt.Errorf("count registrations by status: %w", err)
	}
	defer rows.Close()

	var counts storage.RegistrationStatusCounts
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return storage.RegistrationStatusCounts{}, fmt.Errorf("count registrations by status: %w", err)
		}
		counts.Total += count
		switch domain.ParseRegistrationStatus(status) {
		case domain.RegistrationStatusPending:
			counts.Pending = count
		case domain.RegistrationStatusConfirmed:
			counts.Confirmed = count
		case domain.RegistrationStatusCancelled:
			counts.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return storage.RegistrationStatusCounts{}, fmt.Errorf("count registrations by status: %w", err)
	}
	return counts, nil
}

// PublishedEventLoads returns confirmed-seat loads for every published event.
func (s *Store) PublishedEventLoads(ctx context.Context) ([]storage.EventLoad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT e.id, e.title, e.capacity,
		   (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id AND r.status = ?)
		 FROM events e
		 WHERE e.status = ?
		 ORDER BY e.id ASC`,
		domain.RegistrationStatusConfirmed.String(),
		domain.EventStatusPublished.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("published event loads: %w", err)
	}
	defer rows.Close()

	var loads []storage.EventLoad
	for rows.Next() {
		var load storage.EventLoad
		if err := rows.Scan(&load.EventID, &load.Title, &load.Capacity, &load.ConfirmedCount); err != nil {
			return nil, fmt.Errorf("published event loads: %w", err)
		}
		loads = append(loads, load)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("published event loads: %w", err)
	}
	return loads, nil
}
