package reservation

import (
	"errors"
	"net/http"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/api"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/auth"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/logger"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// reservationNotFound is returned for missing, foreign-owned and malformed
// ids alike, so the existence of other users' reservations cannot be probed.
const reservationNotFound = "Reservation not found"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateReservation godoc
// @Summary      Create reservation
// @Description  Reserves a court for the given interval on behalf of the authenticated user.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation payload"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /reservation/ [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, api.BindingErrors(err))
		return
	}

	res, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInterval):
			api.RespondWithValidationErrors(c, []api.ValidationError{
				{Field: "ends_at", Tag: "gtfield", Message: "ends_at must be after starts_at"},
			})
		case errors.Is(err, ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		case errors.Is(err, ErrOverlap):
			metrics.RecordReservationConflict()
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Interval overlaps an existing reservation for this court"})
		default:
			metrics.RecordStoreError()
			logger.Error("failed to create reservation", "user_id", userID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create reservation"})
		}
		return
	}

	metrics.RecordReservationCreated()
	c.JSON(http.StatusCreated, res)
}

// ListMyReservations godoc
// @Summary      List my reservations
// @Description  Returns all reservations, active and cancelled, owned by the authenticated user.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservation/ [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	reservations, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		metrics.RecordStoreError()
		logger.Error("failed to list reservations", "user_id", userID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation godoc
// @Summary      Get reservation
// @Description  Returns a single reservation owned by the authenticated user.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Reservation ID"
// @Success      200  {object}  Reservation
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservation/{id} [get]
func (h *Handler) GetReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	id, ok := reservationID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: reservationNotFound})
			return
		}
		metrics.RecordStoreError()
		logger.Error("failed to fetch reservation", "user_id", userID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservation"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// CancelReservation godoc
// @Summary      Cancel reservation
// @Description  Cancels an active reservation of the authenticated user, recording the reason.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true   "Reservation ID"
// @Param        reason  query     string  false  "Cancellation reason"
// @Success      200     {object}  Reservation
// @Failure      401     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /reservation/{id} [put]
func (h *Handler) CancelReservation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	id, ok := reservationID(c)
	if !ok {
		return
	}

	reason := c.Query("reason")

	res, err := h.service.Cancel(c.Request.Context(), userID, id, reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: reservationNotFound})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Reservation already cancelled"})
		default:
			metrics.RecordStoreError()
			logger.Error("failed to cancel reservation", "user_id", userID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel reservation"})
		}
		return
	}

	metrics.RecordReservationCancellation()
	c.JSON(http.StatusOK, res)
}

// reservationID validates the path parameter. A malformed id can match no
// reservation, so it gets the same not-found response.
func reservationID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: reservationNotFound})
		return "", false
	}
	return id, true
}
