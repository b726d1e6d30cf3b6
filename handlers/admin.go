package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminBookingHandler exposes the admin-only booking operations.
type AdminBookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewAdminBookingHandler(svc booking.BookingService, logger *zap.Logger) *AdminBookingHandler {
	return &AdminBookingHandler{Service: svc, Logger: logger}
}

// CreateWalkInBooking handles the admin creation path for walk-in customers.
// Price and duration snapshots arrive in the request and are not recomputed.
func (h *AdminBookingHandler) CreateWalkInBooking(c *gin.Context) {
	var input models.AdminCreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.CreateAdminBooking(c.Request.Context(), input)
	if err != nil {
		h.Logger.Warn("walk-in booking creation failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TransitionBookingStatus applies an admin status transition (confirm, start,
// complete, no-show). No time guard applies.
func (h *AdminBookingHandler) TransitionBookingStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Service.TransitionStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		h.Logger.Warn("status transition failed", zap.String("bookingID", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
