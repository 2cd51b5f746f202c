package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/reservio/internal/services/reservations/domain"
	"github.com/louisbranch/reservio/internal/services/reservations/storage"
)

const registrationColumns = `id, user_id, event_id, status, created_at, updated_at`

// GetRegistration returns one registration by id.
func (s *Store) GetRegistration(ctx context.Context, registrationID string) (domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Registration{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return domain.Registration{}, fmt.Errorf("registration id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`,
		registrationID,
	)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Registration{}, storage.ErrNotFound
		}
		return domain.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	return registration, nil
}

// GetRegistrationByUserAndEvent returns the unique registration row for one
// user on one event.
func (s *Store) GetRegistrationByUserAndEvent(ctx context.Context, userID, eventID string) (domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Registration{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	eventID = strings.TrimSpace(eventID)
	if userID == "" || eventID == "" {
		return domain.Registration{}, fmt.Errorf("user id and event id are required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id = ? AND event_id = ?`,
		userID,
		eventID,
	)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Registration{}, storage.ErrNotFound
		}
		return domain.Registration{}, fmt.Errorf("get registration by user and event: %w", err)
	}
	return registration, nil
}

// ListRegistrationsByUser returns a user's registrations, newest first.
func (s *Store) ListRegistrationsByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	return s.listRegistrations(ctx, `user_id`, userID)
}

// ListRegistrationsByEvent returns an event's registrations, newest first.
func (s *Store) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return s.listRegistrations(ctx, `event_id`, eventID)
}

func (s *Store) listRegistrations(ctx context.Context, column, value string) ([]domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%s is required", strings.ReplaceAll(column, "_", " "))
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE `+column+` = ?
		 ORDER BY created_at DESC, id ASC`,
		value,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var registrations []domain.Registration
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("list registrations: %w", err)
		}
		registrations = append(registrations, registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// ClaimSeat creates or revives a PENDING registration inside one write
// transaction so the capacity count and the write cannot interleave with a
// concurrent claim on the same event.
func (s *Store) ClaimSeat(ctx context.Context, params storage.ClaimSeatParams) (domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Registration{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}
	eventID := strings.TrimSpace(params.EventID)
	userID := strings.TrimSpace(params.UserID)
	if eventID == "" || userID == "" {
		return domain.Registration{}, fmt.Errorf("event id and user id are required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("claim seat: begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(
		ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id = ? AND event_id = ?`,
		userID,
		eventID,
	)
	existing, err := scanRegistration(row)
	switch {
	case err == nil:
		switch existing.Status {
		case domain.RegistrationStatusPending:
			return domain.Registration{}, storage.ErrPendingReservationExists
		case domain.RegistrationStatusConfirmed:
			return domain.Registration{}, storage.ErrConfirmedReservationExists
		}
	case errors.Is(err, sql.ErrNoRows):
		existing = domain.Registration{}
	default:
		return domain.Registration{}, fmt.Errorf("claim seat: %w", err)
	}

	if err := checkActiveCapacity(ctx, tx, eventID, params.Capacity); err != nil {
		return domain.Registration{}, err
	}

	now := params.Now.UTC()
	registration := domain.Registration{
		UserID:    userID,
		EventID:   eventID,
		Status:    domain.RegistrationStatusPending,
		UpdatedAt: now,
	}
	if existing.ID != "" {
		// Revive the cancelled row, keeping its id and creation time.
		registration.ID = existing.ID
		registration.CreatedAt = existing.CreatedAt
		_, err = tx.ExecContext(
			ctx,
			`UPDATE registrations SET status = ?, updated_at = ? WHERE id = ?`,
			registration.Status.String(),
			toMillis(now),
			existing.ID,
		)
	} else {
		registration.ID = strings.TrimSpace(params.NewRegistrationID)
		registration.CreatedAt = now
		if registration.ID == "" {
			return domain.Registration{}, fmt.Errorf("claim seat: registration id is required")
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO registrations (`+registrationColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			registration.ID,
			userID,
			eventID,
			registration.Status.String(),
			toMillis(now),
			toMillis(now),
		)
	}
	if err != nil {
		return domain.Registration{}, fmt.Errorf("claim seat: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Registration{}, fmt.Errorf("claim seat: commit: %w", err)
	}
	return registration, nil
}

// ConfirmSeat promotes a PENDING registration to CONFIRMED inside one write
// transaction guarded by the confirmed-seat capacity count.
func (s *Store) ConfirmSeat(ctx context.Context, registrationID string, now time.Time) (domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Registration{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return domain.Registration{}, fmt.Errorf("registration id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("confirm seat: begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(
		ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`,
		registrationID,
	)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Registration{}, storage.ErrNotFound
		}
		return domain.Registration{}, fmt.Errorf("confirm seat: %w", err)
	}
	switch registration.Status {
	case domain.RegistrationStatusConfirmed:
		return domain.Registration{}, storage.ErrRegistrationAlreadyConfirmed
	case domain.RegistrationStatusCancelled:
		return domain.Registration{}, storage.ErrRegistrationCancelledLocked
	}

	var capacity int
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM events WHERE id = ?`, registration.EventID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Registration{}, storage.ErrNotFound
		}
		return domain.Registration{}, fmt.Errorf("confirm seat: %w", err)
	}

	var confirmed int
	err = tx.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ? AND status = ?`,
		registration.EventID,
		domain.RegistrationStatusConfirmed.String(),
	).Scan(&confirmed)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("confirm seat: %w", err)
	}
	if confirmed >= capacity {
		return domain.Registration{}, storage.ErrEventAtCapacity
	}

	updatedAt := now.UTC()
	_, err = tx.ExecContext(
		ctx,
		`UPDATE registrations SET status = ?, updated_at = ? WHERE id = ?`,
		domain.RegistrationStatusConfirmed.String(),
		toMillis(updatedAt),
		registrationID,
	)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("confirm seat: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Registration{}, fmt.Errorf("confirm seat: commit: %w", err)
	}
	registration.Status = domain.RegistrationStatusConfirmed
	registration.UpdatedAt = updatedAt
	return registration, nil
}

// ReleaseSeat cancels a registration. The update is conditional on the row
// not already being CANCELLED so concurrent releases fail deterministically.
func (s *Store) ReleaseSeat(ctx context.Context, registrationID string, now time.Time) (domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Registration{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Registration{}, fmt.Errorf("storage is not configured")
	}
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return domain.Registration{}, fmt.Errorf("registration id is required")
	}

	updatedAt := now.UTC()
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE registrations SET status = ?, updated_at = ?
		 WHERE id = ? AND status != ?`,
		domain.RegistrationStatusCancelled.String(),
		toMillis(updatedAt),
		registrationID,
		domain.RegistrationStatusCancelled.String(),
	)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("release seat: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Registration{}, fmt.Errorf("release seat: %w", err)
	}
	if affected == 0 {
		registration, err := s.GetRegistration(ctx, registrationID)
		if err != nil {
			return domain.Registration{}, err
		}
		if registration.Status == domain.RegistrationStatusCancelled {
			return domain.Registration{}, storage.ErrRegistrationAlreadyCancelled
		}
		return domain.Registration{}, fmt.Errorf("release seat: no rows updated")
	}
	return s.GetRegistration(ctx, registrationID)
}

func checkActiveCapacity(ctx context.Context, tx *sql.Tx, eventID string, capacity int) error {
	var active int
	err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM registrations
		 WHERE event_id = ? AND status IN (?, ?)`,
		eventID,
		domain.RegistrationStatusPending.String(),
		domain.RegistrationStatusConfirmed.String(),
	).Scan(&active)
	if err != nil {
		return fmt.Errorf("claim seat: count active: %w", err)
	}
	if active >= capacity {
		return storage.ErrEventFull
	}
	return nil
}

func scanRegistration(row rowScanner) (domain.Registration, error) {
	var (
		registration domain.Registration
		status       string
		createdAt    int64
		updatedAt    int64
	)
	err := row.Scan(
		&registration.ID,
		&registration.UserID,
		&registration.EventID,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	registration.Status = domain.ParseRegistrationStatus(status)
	registration.CreatedAt = fromMillis(createdAt)
	registration.UpdatedAt = fromMillis(updatedAt)
	return registration, nil
}
