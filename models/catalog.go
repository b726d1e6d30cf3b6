package models

// Catalog entities are owned by the salon administration surface; the booking
// core only reads the fields below.

// Service is a bookable salon service.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	SalonID         string  `bson:"salon_id" json:"salon_id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64 `bson:"price" json:"price"`
	IsAvailable     bool    `bson:"is_available" json:"is_available"`
}

// Stylist performs services at a salon.
type Stylist struct {
	ID         string   `bson:"id" json:"id"`
	SalonID    string   `bson:"salon_id" json:"salon_id"`
	Name       string   `bson:"name" json:"name"`
	ServiceIDs []string `bson:"service_ids" json:"service_ids"` // Services this stylist can perform
	IsActive   bool     `bson:"is_active" json:"is_active"`
}

// Workstation is a physical resource (chair/station) at a salon.
type Workstation struct {
	ID       string `bson:"id" json:"id"`
	SalonID  string `bson:"salon_id" json:"salon_id"`
	Label    string `bson:"label" json:"label"`
	Position int    `bson:"position" json:"position"` // Stable enumeration order
}
