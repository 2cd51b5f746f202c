// Package stats serves read-only aggregates for the admin dashboard.
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

// topEventsLimit caps the ranked event list.
const topEventsLimit = 5

// EventStats aggregates events by lifecycle status plus upcoming count.
type EventStats struct {
	Total     int
	Upcoming  int
	Published int
	Draft     int
	Cancelled int
}

// RegistrationStats aggregates registrations by status.
type RegistrationStats struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
}

// FillRateStats summarizes confirmed seats across published events.
type FillRateStats struct {
	// AveragePercentage is confirmed/capacity across all published events,
	// as a percentage rounded to one decimal. Zero when no capacity exists.
	AveragePercentage float64
	TotalCapacity     int
	TotalConfirmed    int
}

// TopEvent is one entry in the most-booked ranking.
type TopEvent struct {
	ID             string
	Title          string
	Capacity       int
	ConfirmedCount int
	// FillPercentage is confirmed/capacity rounded to the nearest integer.
	FillPercentage int
}

// AdminStats is the admin dashboard aggregate.
type AdminStats struct {
	Events        EventStats
	Registrations RegistrationStats
	FillRate      FillRateStats
	TopEvents     []TopEvent
}

// Service computes admin statistics from the stats store.
type Service struct {
	store storage.StatsStore
	now   func() time.Time
}

// NewService creates a stats service.
func NewService(store storage.StatsStore) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceWithClock creates a stats service with an injectable clock.
func NewServiceWithClock(store storage.StatsStore, now func() time.Time) *Service {
	service := NewService(store)
	if now != nil {
		service.now = now
	}
	return service
}

// GetAdminStats returns the admin dashboard aggregate.
func (s *Service) GetAdminStats(ctx context.Context) (AdminStats, error) {
	if s == nil || s.store == nil {
		return AdminStats{}, fmt.Errorf("stats store is not configured")
	}

	eventCounts, err := s.store.CountEventsByStatus(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	upcoming, err := s.store.CountUpcomingPublishedEvents(ctx, s.now().UTC())
	if err != nil {
		return AdminStats{}, err
	}
	registrationCounts, err := s.store.CountRegistrationsByStatus(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	loads, err := s.store.PublishedEventLoads(ctx)
	if err != nil {
		return AdminStats{}, err
	}

	var totalCapacity, totalConfirmed int
	topEvents := make([]TopEvent, 0, len(loads))
	for _, load := range loads {
		totalCapacity += load.Capacity
		totalConfirmed += load.ConfirmedCount
		fillPercentage := 0
		if load.Capacity > 0 {
			fillPercentage = int(math.Round(float64(load.ConfirmedCount) / float64(load.Capacity) * 100))
		}
		topEvents = append(topEvents, TopEvent{
			ID:             load.EventID,
			Title:          load.Title,
			Capacity:       load.Capacity,
			ConfirmedCount: load.ConfirmedCount,
			FillPercentage: fillPercentage,
		})
	}

	// Rank by confirmed count, ties broken by event id for stable output.
	sort.Slice(topEvents, func(i, j int) bool {
		if topEvents[i].ConfirmedCount != topEvents[j].ConfirmedCount {
			return topEvents[i].ConfirmedCount > topEvents[j].ConfirmedCount
		}
		return topEvents[i].ID < topEvents[j].ID
	})
	if len(topEvents) > topEventsLimit {
		topEvents = topEvents[:topEventsLimit]
	}

	averagePercentage := 0.0
	if totalCapacity > 0 {
		averagePercentage = math.Round(float64(totalConfirmed)/float64(totalCapacity)*1000) / 10
	}

	return AdminStats{
		Events: EventStats{
			Total:     eventCounts.Total,
			Upcoming:  upcoming,
			Published: eventCounts.Published,
			Draft:     eventCounts.Draft,
			Cancelled: eventCounts.Cancelled,
		},
		Registrations: RegistrationStats{
			Total:     registrationCounts.Total,
			Pending:   registrationCounts.Pending,
			Confirmed: registrationCounts.Confirmed,
			Cancelled: registrationCounts.Cancelled,
		},
		FillRate: FillRateStats{
			AveragePercentage: averagePercentage,
			TotalCapacity:     totalCapacity,
			TotalConfirmed:    totalConfirmed,
		},
		TopEvents: topEvents,
	}, nil
}
