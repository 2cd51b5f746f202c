package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

const eventColumns = `id, title, description, location, start_at, end_at, capacity, metadata, status, created_by, created_at, updated_at`

// PutEvent inserts a new event record.
func (s *Store) PutEvent(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		toMillis(event.StartAt),
		toMillis(event.EndAt),
		event.Capacity,
		metadata,
		event.Status.String(),
		event.CreatedBy,
		toMillis(event.CreatedAt),
		toMillis(event.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	return nil
}

// GetEvent returns one event by id.
func (s *Store) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return domain.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Event{}, fmt.Errorf("storage is not configured")
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return domain.Event{}, fmt.Errorf("event id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`,
		eventID,
	)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, storage.ErrNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// UpdateEvent overwrites all mutable fields of an existing event.
func (s *Store) UpdateEvent(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE events SET
		   title = ?, description = ?, location = ?, start_at = ?, end_at = ?,
		   capacity = ?, metadata = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		event.Title,
		event.Description,
		event.Location,
		toMillis(event.StartAt),
		toMillis(event.EndAt),
		event.Capacity,
		metadata,
		event.Status.String(),
		toMillis(event.UpdatedAt),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event and, via cascade, its registrations.
func (s *Store) DeleteEvent(ctx context.Context, eventID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return fmt.Errorf("event id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListEvents returns events matching the query ordered by start time.
func (s *Store) ListEvents(ctx context.Context, query storage.EventQuery) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	stmt := `SELECT ` + eventColumns + ` FROM events`
	var conditions []string
	var args []any
	if query.Status != domain.EventStatusUnspecified {
		conditions = append(conditions, `status = ?`)
		args = append(args, query.Status.String())
	}
	if strings.TrimSpace(query.FilterClause) != "" {
		conditions = append(conditions, `(`+query.FilterClause+`)`)
		args = append(args, query.FilterParams...)
	}
	if len(conditions) > 0 {
		stmt += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	stmt += ` ORDER BY start_at ASC, id ASC`

	rows, err := s.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		event     domain.Event
		startAt   int64
		endAt     int64
		metadata  string
		status    string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&startAt,
		&endAt,
		&event.Capacity,
		&metadata,
		&status,
		&event.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Event{}, err
	}
	event.StartAt = fromMillis(startAt)
	event.EndAt = fromMillis(endAt)
	event.Status = domain.ParseEventStatus(status)
	event.CreatedAt = fromMillis(createdAt)
	event.UpdatedAt = fromMillis(updatedAt)
	event.Metadata, err = decodeMetadata(metadata)
	if err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func encodeMetadata(metadata map[string]string) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(encoded), nil
}

func decodeMetadata(value string) (map[string]string, error) {
	if value == "" || value == "{}" {
		return nil, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(value), &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(metadata) == 0 {
		return nil, nil
	}
	return metadata, nil
}
