package reservation

import (
	"context"
	"time"
)

type Repository interface {
	CreateReservation(ctx context.Context, userID, courtID string, startsAt, endsAt time.Time, totalPrice int64) (*Reservation, error)
	GetReservationByID(ctx context.Context, userID, id string) (*Reservation, error)
	ListUserReservations(ctx context.Context, userID string) ([]Reservation, error)
	CancelReservation(ctx context.Context, userID, id, reason string) (*Reservation, error)
	HasActiveOverlap(ctx context.Context, courtID string, startsAt, endsAt time.Time) (bool, error)
}
