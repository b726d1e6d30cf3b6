package handlers

import (
	"net/http"
	"strconv"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking core over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusForError maps the core error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch booking.KindOf(err) {
	case booking.KindValidation:
		return http.StatusBadRequest
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindAuthorization:
		return http.StatusForbidden
	case booking.KindResourceExhausted, booking.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{
		"error": err.Error(),
		"code":  booking.CodeOf(err),
	})
}

func requestUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return userID, true
}

// CreateBooking handles the online-customer creation path.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.CreateBooking(c.Request.Context(), userID, input)
	if err != nil {
		h.Logger.Warn("booking creation failed", zap.String("userID", userID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBooking returns one booking with its service lines.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	detail, err := h.Service.GetBookingByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetOngoingBookings returns the caller's pending/confirmed/in-progress bookings.
func (h *BookingHandler) GetOngoingBookings(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	bookings, err := h.Service.GetOngoingBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// GetBookingHistory returns one page of the caller's terminal-status bookings.
func (h *BookingHandler) GetBookingHistory(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	history, err := h.Service.GetBookingHistory(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// CancelBooking cancels a booking inside the allowed window.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	updated, err := h.Service.CancelBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.Logger.Warn("booking cancellation failed", zap.String("bookingID", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RescheduleBooking replaces the booking interval inside the allowed window.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var input models.RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Service.RescheduleBooking(c.Request.Context(), userID, c.Param("id"), input.NewStart, input.NewEnd)
	if err != nil {
		h.Logger.Warn("booking reschedule failed", zap.String("bookingID", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateBooking edits owner fields while the booking is still pending.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var input models.UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Service.UpdateBookingDetails(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
