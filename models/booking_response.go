// models/booking_response.go
package models

// BookingCreatedResponse is returned on successful booking creation.
type BookingCreatedResponse struct {
	BookingID     string `json:"booking_id"`
	WorkstationID string `json:"workstation_id"`
}

// BookingDetail bundles a booking header with its frozen service lines.
type BookingDetail struct {
	Booking  Booking              `json:"booking"`
	Services []BookingServiceLine `json:"services"`
}

// PagedBookings is the paginated history view response.
type PagedBookings struct {
	Data       []Booking `json:"data"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int64     `json:"total"`
	TotalPages int       `json:"totalPages"`
}
