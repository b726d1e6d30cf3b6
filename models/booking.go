package models

import "time"

// Booking statuses. Completed, cancelled and no-show are terminal.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Booking origination modes.
const (
	BookedModeOnline = "online"
	BookedModeAdmin  = "admin"
)

// Booking represents a booking header record.
type Booking struct {
	ID                   string    `bson:"id" json:"id"`                                                             // Unique booking identifier (UUID)
	UserID               string    `bson:"user_id,omitempty" json:"user_id,omitempty"`                               // Online customer, empty for walk-ins
	NonOnlineCustomerID  string    `bson:"non_online_customer_id,omitempty" json:"non_online_customer_id,omitempty"` // Walk-in customer entered by an admin
	SalonID              string    `bson:"salon_id" json:"salon_id"`
	StylistID            string    `bson:"stylist_id" json:"stylist_id"`
	WorkstationID        string    `bson:"workstation_id" json:"workstation_id"`
	Start                time.Time `bson:"start" json:"booking_start_datetime"` // Absolute instant, half-open interval [Start, End)
	End                  time.Time `bson:"end" json:"booking_end_datetime"`
	TotalDurationMinutes int       `bson:"total_duration_minutes" json:"total_duration_minutes"`
	TotalPrice           float64   `bson:"total_price" json:"total_price"`
	Status               string    `bson:"status" json:"status"`
	BookedMode           string    `bson:"booked_mode" json:"booked_mode"` // "online" or "admin"
	Notes                string    `bson:"notes,omitempty" json:"notes,omitempty"`
	BookedAt             time.Time `bson:"booked_at" json:"booked_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}

// BookingServiceLine is a frozen snapshot of one service at booking time.
// Later catalog price changes never retroactively alter existing bookings.
type BookingServiceLine struct {
	ID                string  `bson:"id" json:"id"`
	BookingID         string  `bson:"booking_id" json:"booking_id"`
	ServiceID         string  `bson:"service_id" json:"service_id"`
	SalonID           string  `bson:"salon_id" json:"salon_id"`
	PriceAtBooking    float64 `bson:"price_at_booking" json:"price_at_booking"`
	DurationAtBooking int     `bson:"duration_at_booking" json:"duration_at_booking"` // minutes
	Notes             string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// IsTerminalStatus reports whether no further lifecycle transition is permitted.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
