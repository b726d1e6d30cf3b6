package booking

import (
	"context"
	"math"

	"salonbook/models"
)

const defaultHistoryLimit = 10

// GetBookingByID returns a booking header together with its frozen service
// lines, after verifying ownership.
func (svc *DefaultBookingService) GetBookingByID(ctx context.Context, userID, bookingID string) (*models.BookingDetail, error) {
	booking, err := svc.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	lines, err := svc.Bookings.GetServiceLines(ctx, bookingID)
	if err != nil {
		return nil, NewStorageError("failed to fetch service lines", err)
	}
	return &models.BookingDetail{Booking: *booking, Services: lines}, nil
}

// GetOngoingBookings returns a user's pending, confirmed and in-progress
// bookings ordered by start time ascending.
func (svc *DefaultBookingService) GetOngoingBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := svc.Bookings.ListOngoing(ctx, userID)
	if err != nil {
		return nil, NewStorageError("failed to fetch ongoing bookings", err)
	}
	return bookings, nil
}

// GetBookingHistory returns one page of a user's completed, cancelled and
// no-show bookings ordered by start time descending.
func (svc *DefaultBookingService) GetBookingHistory(ctx context.Context, userID string, page, limit int) (*models.PagedBookings, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	offset := int64(page-1) * int64(limit)

	bookings, total, err := svc.Bookings.ListHistory(ctx, userID, offset, int64(limit))
	if err != nil {
		return nil, NewStorageError("failed to fetch booking history", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &models.PagedBookings{
		Data:       bookings,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
