package booking

import (
	"errors"
	"net/http"
	"strconv"

	"studyrooms/internal/domain"
	"studyrooms/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/availability", h.GetAvailability)
	rg.GET("/bookings/by-room-and-date", h.GetRoomBookings)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)
	rg.GET("/bookings/me", h.GetMyBookings)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter date is required")
		return
	}

	availability, err := h.service.ListFreeSlots(c.Request.Context(), roomID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, availability)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.SubmitBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), bookingID, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": bookingID, "status": domain.BookingCancelled})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	bookings, err := h.service.ListUserBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) GetRoomBookings(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Query("roomId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid roomId")
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter date is required")
		return
	}

	rows, err := h.service.ListRoomBookings(c.Request.Context(), roomID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var formatErr *domain.FormatError
	var quotaErr *QuotaError

	switch {
	case errors.As(err, &formatErr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", formatErr.Error())
	case errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrDurationExceeded),
		errors.Is(err, ErrOutsideOpeningHours),
		errors.Is(err, ErrTooFarInAdvance):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrOverlap):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT",
			"Time range is already booked, please re-check availability")
	case errors.As(err, &quotaErr):
		response.Error(c, http.StatusConflict, "QUOTA_EXCEEDED", quotaErr.Error())
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
	default:
		c.Error(err) //nolint:errcheck
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
