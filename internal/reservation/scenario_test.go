package reservation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/auth"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/court"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo reimplements the store contract in memory, including the overlap
// guard the exclusion constraint provides, so the full request path can be
// exercised without Postgres.
type memoryRepo struct {
	mu   sync.Mutex
	byID map[string]*reservation.Reservation
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[string]*reservation.Reservation)}
}

func (r *memoryRepo) CreateReservation(_ context.Context, userID, courtID string, startsAt, endsAt time.Time, totalPrice int64) (*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.byID {
		if res.CourtID == courtID && res.IsActive() && res.StartsAt.Before(endsAt) && res.EndsAt.After(startsAt) {
			return nil, reservation.ErrOverlap
		}
	}

	res := &reservation.Reservation{
		ID:         uuid.NewString(),
		CourtID:    courtID,
		UserID:     userID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		TotalPrice: totalPrice,
		CreatedAt:  time.Now().UTC(),
	}
	r.byID[res.ID] = res
	return res, nil
}

func (r *memoryRepo) GetReservationByID(_ context.Context, userID, id string) (*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.byID[id]
	if !ok || res.UserID != userID {
		return nil, reservation.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (r *memoryRepo) ListUserReservations(_ context.Context, userID string) ([]reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []reservation.Reservation
	for _, res := range r.byID {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *memoryRepo) CancelReservation(_ context.Context, userID, id, reason string) (*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.byID[id]
	if !ok || res.UserID != userID {
		return nil, reservation.ErrReservationNotFound
	}
	if !res.IsActive() {
		return nil, reservation.ErrAlreadyCancelled
	}

	now := time.Now().UTC()
	res.CancelledAt = &now
	res.CancelReason = &reason
	out := *res
	return &out, nil
}

func (r *memoryRepo) HasActiveOverlap(_ context.Context, courtID string, startsAt, endsAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.byID {
		if res.CourtID == courtID && res.IsActive() && res.StartsAt.Before(endsAt) && res.EndsAt.After(startsAt) {
			return true, nil
		}
	}
	return false, nil
}

type staticCourtRepo struct {
	courts map[string]*court.Court
}

func (r *staticCourtRepo) GetCourtByID(_ context.Context, id string) (*court.Court, error) {
	c, ok := r.courts[id]
	if !ok {
		return nil, court.ErrCourtNotFound
	}
	return c, nil
}

const (
	scenarioSecret = "scenario-secret"
	scenarioCourt  = "7a9d1f30-2c4b-4f5a-8e6d-0b1c2d3e4f5a"
	userA          = "9b2e4c6a-1d3f-4a5b-8c7d-0e1f2a3b4c5d"
	userB          = "1c3e5a7b-9d0f-4b2c-8e6a-2f4b6c8d0e1f"
)

func newScenarioRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	courts := &staticCourtRepo{courts: map[string]*court.Court{
		scenarioCourt: {ID: scenarioCourt, Name: "Court 1", Location: "Ljubljana", HourlyRateCents: 2000},
	}}
	service := reservation.NewService(newMemoryRepo(), courts)
	handler := reservation.NewHandler(service)

	verifier, err := auth.NewHMACVerifier(scenarioSecret)
	require.NoError(t, err)

	router := gin.New()
	r := router.Group("/reservation")
	r.Use(auth.Middleware(verifier))
	{
		r.POST("/", handler.CreateReservation)
		r.GET("/", handler.ListMyReservations)
		r.GET("/:id", handler.GetReservation)
		r.PUT("/:id", handler.CancelReservation)
	}
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// The full lifecycle: create, conflicting create, cancel with a reason, list.
func TestReservationLifecycle(t *testing.T) {
	router := newScenarioRouter(t)

	tokenA, err := auth.GenerateToken(userA, "a@example.com", scenarioSecret)
	require.NoError(t, err)

	// create 14:00-16:00
	w := do(t, router, "POST", "/reservation/", tokenA,
		`{"court_id":"`+scenarioCourt+`","starts_at":"2025-12-10T14:00:00Z","ends_at":"2025-12-10T16:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, scenarioCourt, created.CourtID)
	assert.Equal(t, userA, created.UserID)
	assert.Equal(t, int64(4000), created.TotalPrice)
	assert.Nil(t, created.CancelledAt)
	assert.Nil(t, created.CancelReason)

	// overlapping 15:00-17:00 conflicts
	w = do(t, router, "POST", "/reservation/", tokenA,
		`{"court_id":"`+scenarioCourt+`","starts_at":"2025-12-10T15:00:00Z","ends_at":"2025-12-10T17:00:00Z"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// back-to-back 16:00-17:00 is allowed: intervals are half-open
	w = do(t, router, "POST", "/reservation/", tokenA,
		`{"court_id":"`+scenarioCourt+`","starts_at":"2025-12-10T16:00:00Z","ends_at":"2025-12-10T17:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// cancel the first with a reason
	w = do(t, router, "PUT", "/reservation/"+created.ID+"?reason=Changed+plans", tokenA, "")
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, "Changed plans", *cancelled.CancelReason)

	// second cancel conflicts and leaves the record untouched
	w = do(t, router, "PUT", "/reservation/"+created.ID+"?reason=Again", tokenA, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, "GET", "/reservation/"+created.ID, tokenA, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Changed plans", *fetched.CancelReason)

	// listing returns both records, cancellation state intact
	w = do(t, router, "GET", "/reservation/", tokenA, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

// The slot freed by a cancellation can be rebooked.
func TestReservationLifecycle_RebookAfterCancel(t *testing.T) {
	router := newScenarioRouter(t)

	tokenA, err := auth.GenerateToken(userA, "a@example.com", scenarioSecret)
	require.NoError(t, err)

	body := `{"court_id":"` + scenarioCourt + `","starts_at":"2025-12-10T14:00:00Z","ends_at":"2025-12-10T16:00:00Z"}`

	w := do(t, router, "POST", "/reservation/", tokenA, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, router, "PUT", "/reservation/"+created.ID, tokenA, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, "POST", "/reservation/", tokenA, body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReservationOwnershipIsolation(t *testing.T) {
	router := newScenarioRouter(t)

	tokenA, err := auth.GenerateToken(userA, "a@example.com", scenarioSecret)
	require.NoError(t, err)
	tokenB, err := auth.GenerateToken(userB, "b@example.com", scenarioSecret)
	require.NoError(t, err)

	w := do(t, router, "POST", "/reservation/", tokenA,
		`{"court_id":"`+scenarioCourt+`","starts_at":"2025-12-10T14:00:00Z","ends_at":"2025-12-10T16:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// user B never sees user A's reservation
	w = do(t, router, "GET", "/reservation/", tokenB, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// fetching A's id as B matches a nonexistent id exactly
	wForeign := do(t, router, "GET", "/reservation/"+created.ID, tokenB, "")
	wMissing := do(t, router, "GET", "/reservation/"+uuid.NewString(), tokenB, "")
	assert.Equal(t, http.StatusNotFound, wForeign.Code)
	assert.Equal(t, http.StatusNotFound, wMissing.Code)
	assert.Equal(t, wMissing.Body.String(), wForeign.Body.String())

	// same for cancellation
	wForeign = do(t, router, "PUT", "/reservation/"+created.ID, tokenB, "")
	wMissing = do(t, router, "PUT", "/reservation/"+uuid.NewString(), tokenB, "")
	assert.Equal(t, http.StatusNotFound, wForeign.Code)
	assert.Equal(t, http.StatusNotFound, wMissing.Code)
	assert.Equal(t, wMissing.Body.String(), wForeign.Body.String())
}

func TestReservation_Unauthenticated(t *testing.T) {
	router := newScenarioRouter(t)

	w := do(t, router, "GET", "/reservation/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, "POST", "/reservation/", "",
		`{"court_id":"`+scenarioCourt+`","starts_at":"2025-12-10T14:00:00Z","ends_at":"2025-12-10T16:00:00Z"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
