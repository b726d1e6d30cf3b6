package models

import "time"

// CreateBookingInput is the online-customer creation request. Prices and
// durations are resolved from the service catalog, never supplied by the caller.
type CreateBookingInput struct {
	SalonID    string    `json:"salon_id" binding:"required"`
	Start      time.Time `json:"booking_start_datetime" binding:"required"`
	ServiceIDs []string  `json:"service_ids" binding:"required"`
	Notes      string    `json:"notes"`
}

// AdminServiceLineInput supplies an explicit price/duration snapshot for one
// service on the admin (walk-in) path. These values are taken verbatim and are
// not recomputed from the catalog.
type AdminServiceLineInput struct {
	ServiceID         string  `json:"service_id" binding:"required"`
	PriceAtBooking    float64 `json:"price_at_booking"`
	DurationAtBooking int     `json:"duration_at_booking" binding:"required"`
	Notes             string  `json:"notes"`
}

// AdminCreateBookingInput is the admin creation request for walk-in customers.
type AdminCreateBookingInput struct {
	NonOnlineCustomerID string                  `json:"non_online_customer_id" binding:"required"`
	SalonID             string                  `json:"salon_id" binding:"required"`
	StylistID           string                  `json:"stylist_id" binding:"required"`
	Start               time.Time               `json:"booking_start_datetime" binding:"required"`
	Services            []AdminServiceLineInput `json:"services" binding:"required"`
	Notes               string                  `json:"notes"`
}

// RescheduleInput replaces the booking interval.
type RescheduleInput struct {
	NewStart time.Time `json:"new_start" binding:"required"`
	NewEnd   time.Time `json:"new_end" binding:"required"`
}

// UpdateBookingInput edits owner fields; only allowed while the booking is pending.
type UpdateBookingInput struct {
	Notes     *string `json:"notes,omitempty"`
	StylistID *string `json:"stylist_id,omitempty"`
}
