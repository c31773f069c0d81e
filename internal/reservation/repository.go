package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyCancelled    = errors.New("reservation already cancelled")
	ErrOverlap             = errors.New("interval overlaps an active reservation")
	ErrCourtNotFound       = errors.New("court not found")
	ErrInvalidInterval     = errors.New("ends_at must be after starts_at")
)

const reservationColumns = "id, court_id, user_id, starts_at, ends_at, total_price, created_at, cancelled_at, cancel_reason"

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// CreateReservation inserts a new active reservation. The authoritative
// overlap guard is the exclusion constraint on active intervals; its violation
// is translated here so concurrent creates surface as a conflict, not a
// driver error.
func (r *repository) CreateReservation(ctx context.Context, userID, courtID string, startsAt, endsAt time.Time, totalPrice int64) (*Reservation, error) {
	query := `
		INSERT INTO reservations (court_id, user_id, starts_at, ends_at, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reservationColumns

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, courtID, userID, startsAt, endsAt, totalPrice)
	if err != nil {
		return nil, translatePQError(err)
	}

	return &res, nil
}

func (r *repository) GetReservationByID(ctx context.Context, userID, id string) (*Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1 AND user_id = $2
	`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return &res, nil
}

func (r *repository) ListUserReservations(ctx context.Context, userID string) ([]Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, userID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

// CancelReservation marks an active reservation cancelled. The guard on
// cancelled_at keeps the transition one-way; a second cancel matches no row
// and is reported as already-cancelled when the record itself exists.
func (r *repository) CancelReservation(ctx context.Context, userID, id, reason string) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET cancelled_at = NOW(), cancel_reason = $3
		WHERE id = $1 AND user_id = $2 AND cancelled_at IS NULL
		RETURNING ` + reservationColumns

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id, userID, reason)
	if err == nil {
		return &res, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	exists, probeErr := db.Exists(ctx, r.db,
		"SELECT EXISTS(SELECT 1 FROM reservations WHERE id = $1 AND user_id = $2)", id, userID)
	if probeErr != nil {
		return nil, probeErr
	}
	if exists {
		return nil, ErrAlreadyCancelled
	}
	return nil, ErrReservationNotFound
}

// HasActiveOverlap is the advisory pre-check for fast feedback; two intervals
// overlap when each starts before the other ends.
func (r *repository) HasActiveOverlap(ctx context.Context, courtID string, startsAt, endsAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE court_id = $1 AND cancelled_at IS NULL
			AND starts_at < $3 AND ends_at > $2
		)
	`

	return db.Exists(ctx, r.db, query, courtID, startsAt, endsAt)
}

func translatePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23P01": // exclusion_violation
			return ErrOverlap
		case "23503": // foreign_key_violation
			return ErrCourtNotFound
		case "23514": // check_violation
			return ErrInvalidInterval
		}
	}
	return err
}
