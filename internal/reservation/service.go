package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/court"
)

const defaultCancelReason = "cancelled by user"

type Service interface {
	Create(ctx context.Context, userID string, req CreateReservationRequest) (*Reservation, error)
	Get(ctx context.Context, userID, id string) (*Reservation, error)
	List(ctx context.Context, userID string) ([]Reservation, error)
	Cancel(ctx context.Context, userID, id, reason string) (*Reservation, error)
}

type service struct {
	repo      Repository
	courtRepo court.Repository
}

func NewService(repo Repository, courtRepo court.Repository) Service {
	return &service{
		repo:      repo,
		courtRepo: courtRepo,
	}
}

// Create validates the interval, resolves the court, prices the slot and
// persists. The overlap pre-check gives fast feedback; the store constraint
// still has the last word under concurrency.
func (s *service) Create(ctx context.Context, userID string, req CreateReservationRequest) (*Reservation, error) {
	startsAt := req.StartsAt.UTC()
	endsAt := req.EndsAt.UTC()

	if !endsAt.After(startsAt) {
		return nil, ErrInvalidInterval
	}

	c, err := s.courtRepo.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	overlaps, err := s.repo.HasActiveOverlap(ctx, req.CourtID, startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrOverlap
	}

	totalPrice := computePrice(c.HourlyRateCents, endsAt.Sub(startsAt))

	return s.repo.CreateReservation(ctx, userID, req.CourtID, startsAt, endsAt, totalPrice)
}

func (s *service) Get(ctx context.Context, userID, id string) (*Reservation, error) {
	return s.repo.GetReservationByID(ctx, userID, id)
}

func (s *service) List(ctx context.Context, userID string) ([]Reservation, error) {
	reservations, err := s.repo.ListUserReservations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []Reservation{}
	}
	return reservations, nil
}

func (s *service) Cancel(ctx context.Context, userID, id, reason string) (*Reservation, error) {
	if reason == "" {
		reason = defaultCancelReason
	}
	return s.repo.CancelReservation(ctx, userID, id, reason)
}

// computePrice charges the hourly rate proportionally to the second,
// truncating fractional cents.
func computePrice(hourlyRateCents int64, duration time.Duration) int64 {
	seconds := int64(duration / time.Second)
	return hourlyRateCents * seconds / 3600
}
