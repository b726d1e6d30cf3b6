package bookingRepo

import (
	"context"
	"time"

	"salonbook/models"
)

// BookingRepository defines the data access methods used by the booking core.
//
// The store must provide point lookups by id, a range filter on the start
// timestamp, insert-returning-id, delete-by-id and a predicate count; no stored
// procedures or triggers are assumed.
type BookingRepository interface {
	// InsertBooking persists a new booking header and returns its generated id.
	InsertBooking(ctx context.Context, booking *models.Booking) (string, error)
	// InsertServiceLines persists the frozen service lines of a booking.
	InsertServiceLines(ctx context.Context, lines []models.BookingServiceLine) error
	// DeleteBooking removes a booking header by id. Deleting an id that is
	// already gone is not an error, so a compensation may be retried safely.
	DeleteBooking(ctx context.Context, bookingID string) error
	// DeleteServiceLines removes all service lines of a booking.
	DeleteServiceLines(ctx context.Context, bookingID string) error

	// GetBookingByID retrieves a booking header by id, or nil when absent.
	GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// GetServiceLines retrieves the service lines of a booking.
	GetServiceLines(ctx context.Context, bookingID string) ([]models.BookingServiceLine, error)

	// CountOverlapping counts non-cancelled bookings on a workstation whose
	// half-open interval intersects [start, end).
	CountOverlapping(ctx context.Context, workstationID string, start, end time.Time) (int64, error)

	// ConditionalUpdate applies the set fields only if the booking still has one
	// of the expected statuses and, when expectedStart is non-zero, the expected
	// start instant. It reports whether a document matched.
	ConditionalUpdate(ctx context.Context, bookingID string, expectedStatuses []string, expectedStart time.Time, set map[string]any) (bool, error)

	// ListOngoing returns a user's pending/confirmed/in-progress bookings
	// ordered by start time ascending.
	ListOngoing(ctx context.Context, userID string) ([]models.Booking, error)
	// ListHistory returns a page of a user's terminal-status bookings ordered by
	// start time descending, plus the total count of history rows.
	ListHistory(ctx context.Context, userID string, offset, limit int64) ([]models.Booking, int64, error)
}
