package reservation

import "time"

// Reservation is the central record. Intervals are half-open [starts_at,
// ends_at); a reservation is active until cancelled_at is set, and a cancelled
// reservation is terminal.
type Reservation struct {
	ID           string     `db:"id" json:"id"`
	CourtID      string     `db:"court_id" json:"court_id"`
	UserID       string     `db:"user_id" json:"user_id"`
	StartsAt     time.Time  `db:"starts_at" json:"starts_at"`
	EndsAt       time.Time  `db:"ends_at" json:"ends_at"`
	TotalPrice   int64      `db:"total_price" json:"total_price"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	CancelledAt  *time.Time `db:"cancelled_at" json:"cancelled_at"`
	CancelReason *string    `db:"cancel_reason" json:"cancel_reason"`
}

func (r *Reservation) IsActive() bool {
	return r.CancelledAt == nil
}

// CreateReservationRequest carries the client-supplied fields. The owner is
// always the verified token subject, never part of the payload.
type CreateReservationRequest struct {
	CourtID  string    `json:"court_id" binding:"required,uuid"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
}
