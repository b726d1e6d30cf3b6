package booking

import (
	"context"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	catalogRepo "salonbook/database/repository/catalog"
	"salonbook/models"
	"salonbook/services/notification"
)

// BookingService defines the operations of the booking core.
type BookingService interface {
	// CreateBooking creates an online-customer booking: services are resolved
	// through the catalog, the responsible stylist is derived, a free
	// workstation is allocated and the ledger write is performed.
	CreateBooking(ctx context.Context, userID string, input models.CreateBookingInput) (*models.BookingCreatedResponse, error)
	// CreateAdminBooking creates a walk-in booking entered by a salon admin.
	// The supplied price/duration snapshots are taken verbatim.
	CreateAdminBooking(ctx context.Context, input models.AdminCreateBookingInput) (*models.BookingCreatedResponse, error)

	CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, userID, bookingID string, newStart, newEnd time.Time) (*models.Booking, error)
	// UpdateBookingDetails edits owner fields (notes, stylist); pending only.
	UpdateBookingDetails(ctx context.Context, userID, bookingID string, input models.UpdateBookingInput) (*models.Booking, error)
	// TransitionStatus applies an admin-authorized status transition; terminal
	// states never leave and no time guard applies.
	TransitionStatus(ctx context.Context, bookingID, targetStatus string) (*models.Booking, error)

	GetBookingByID(ctx context.Context, userID, bookingID string) (*models.BookingDetail, error)
	GetOngoingBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetBookingHistory(ctx context.Context, userID string, page, limit int) (*models.PagedBookings, error)
}

// WorkstationLocker serializes allocation per workstation. The lock is acquired
// before the final conflict check and held until the ledger write commits or
// aborts, closing the scan-then-insert race between concurrent creations.
type WorkstationLocker interface {
	// Acquire takes the lock for a workstation. ok is false when another
	// allocation currently holds it.
	Acquire(ctx context.Context, workstationID string) (release func(), ok bool, err error)
}

// ReminderScheduler enqueues a delayed pre-appointment reminder.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking *models.Booking) error
}

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Catalog  catalogRepo.CatalogRepository
	Bookings bookingRepo.BookingRepository
	Locks    WorkstationLocker
	// Reminders may be nil; reminder scheduling is best-effort.
	Reminders ReminderScheduler
	Notifier  notification.Service
}
