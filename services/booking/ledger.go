package booking

import (
	"context"

	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// writeBookingLedger persists the booking header first, then its service lines.
// If the line write fails, a compensating delete removes the just-created
// header and the original error is surfaced. This is a best-effort two-step
// rollback, not a multi-statement transaction: should the compensation itself
// fail, an orphaned header remains and is logged for reconciliation.
//
// On any error return the caller observes no booking id and may safely retry
// the whole creation request.
func (svc *DefaultBookingService) writeBookingLedger(ctx context.Context, booking *models.Booking, lines []models.BookingServiceLine) (string, error) {
	bookingID, err := svc.Bookings.InsertBooking(ctx, booking)
	if err != nil {
		return "", NewStorageError("failed to create booking", err)
	}

	for i := range lines {
		lines[i].BookingID = bookingID
	}
	if err := svc.Bookings.InsertServiceLines(ctx, lines); err != nil {
		// Compensate: a partial InsertMany can leave some lines behind, so both
		// deletes run. They are idempotent, a retried compensation of an
		// already-removed record is harmless.
		if delErr := svc.Bookings.DeleteServiceLines(ctx, bookingID); delErr != nil {
			utils.GetLogger().Warn("failed to remove partially written service lines",
				zap.String("bookingID", bookingID), zap.Error(delErr))
		}
		if delErr := svc.Bookings.DeleteBooking(ctx, bookingID); delErr != nil {
			utils.GetLogger().Error("compensating delete failed; orphaned booking header needs reconciliation",
				zap.String("bookingID", bookingID),
				zap.NamedError("lineWriteError", err),
				zap.NamedError("compensationError", delErr))
			return "", NewStorageError("failed to write service lines and to compensate the booking header", err)
		}
		return "", NewStorageError("failed to write service lines; booking rolled back", err)
	}

	return bookingID, nil
}
