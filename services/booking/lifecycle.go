package booking

import (
	"context"
	"fmt"
	"time"

	"salonbook/config"
	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// transitionMap lists, per target status, the statuses a booking may come from.
// Terminal statuses appear in no value set, so nothing ever leaves them.
var transitionMap = map[string][]string{
	models.StatusConfirmed:  {models.StatusPending},
	models.StatusInProgress: {models.StatusPending},
	models.StatusCompleted:  {models.StatusPending},
	models.StatusNoShow:     {models.StatusPending},
	models.StatusCancelled:  {models.StatusPending, models.StatusConfirmed},
	// Rescheduling resets to pending, discarding a prior confirmation.
	models.StatusPending: {models.StatusPending, models.StatusConfirmed},
}

// ValidTransition reports whether a booking may move from one status to another.
func ValidTransition(from, to string) bool {
	allowed, ok := transitionMap[to]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

func cancelWindow() time.Duration {
	hours := config.AppConfig.CancelWindowHours
	if hours <= 0 {
		hours = 2
	}
	return time.Duration(hours) * time.Hour
}

func rescheduleWindow() time.Duration {
	hours := config.AppConfig.RescheduleWindowHours
	if hours <= 0 {
		hours = 4
	}
	return time.Duration(hours) * time.Hour
}

// loadOwnedBooking fetches a booking and verifies the caller owns it.
func (svc *DefaultBookingService) loadOwnedBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := svc.Bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, NewStorageError("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, NewNotFoundError(CodeBookingNotFound, fmt.Sprintf("booking %s not found", bookingID))
	}
	if booking.UserID != userID {
		return nil, NewAuthorizationError("booking belongs to another customer")
	}
	return booking, nil
}

// CancelBooking cancels a pending or confirmed booking, allowed only until the
// cancellation window before its start. The status/start observed here are
// re-asserted by the conditional write, so a concurrent transition surfaces as
// a ConflictError instead of silently interleaving.
func (svc *DefaultBookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := svc.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if !ValidTransition(booking.Status, models.StatusCancelled) {
		return nil, NewConflictError(CodeLifecycleGuard,
			fmt.Sprintf("a %s booking cannot be cancelled", booking.Status))
	}
	now := time.Now()
	if now.After(booking.Start.Add(-cancelWindow())) {
		return nil, NewConflictError(CodeLifecycleGuard,
			fmt.Sprintf("bookings must be cancelled at least %s before they start", cancelWindow()))
	}

	matched, err := svc.Bookings.ConditionalUpdate(ctx, bookingID,
		[]string{booking.Status}, booking.Start,
		map[string]any{
			"status":     models.StatusCancelled,
			"updated_at": now,
		})
	if err != nil {
		return nil, NewStorageError("failed to cancel booking", err)
	}
	if !matched {
		return nil, NewConflictError(CodeConcurrentUpdate, "booking changed concurrently, please retry")
	}

	booking.Status = models.StatusCancelled
	booking.UpdatedAt = now

	if svc.Notifier != nil {
		go func(b models.Booking) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := svc.Notifier.SendBookingNotification(notifyCtx, b.UserID, b.ID,
				"Booking cancelled",
				fmt.Sprintf("Your appointment on %s was cancelled.", b.Start.Format("2 January, 3:04 PM"))); err != nil {
				utils.GetLogger().Warn("failed to send cancellation notification",
					zap.String("bookingID", b.ID), zap.Error(err))
			}
		}(*booking)
	}

	return booking, nil
}

// RescheduleBooking replaces the booking interval and resets the status to
// pending, discarding any prior confirmation. Allowed only until the
// reschedule window before the original start.
func (svc *DefaultBookingService) RescheduleBooking(ctx context.Context, userID, bookingID string, newStart, newEnd time.Time) (*models.Booking, error) {
	now := time.Now()
	if !newStart.After(now) {
		return nil, NewValidationError(CodeInvalidInput, "new start must be in the future")
	}
	if !newEnd.After(newStart) {
		return nil, NewValidationError(CodeInvalidInput, "new end must be after new start")
	}

	booking, err := svc.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if !ValidTransition(booking.Status, models.StatusPending) {
		return nil, NewConflictError(CodeLifecycleGuard,
			fmt.Sprintf("a %s booking cannot be rescheduled", booking.Status))
	}
	if now.After(booking.Start.Add(-rescheduleWindow())) {
		return nil, NewConflictError(CodeLifecycleGuard,
			fmt.Sprintf("bookings must be rescheduled at least %s before they start", rescheduleWindow()))
	}

	matched, err := svc.Bookings.ConditionalUpdate(ctx, bookingID,
		[]string{booking.Status}, booking.Start,
		map[string]any{
			"start":      newStart,
			"end":        newEnd,
			"status":     models.StatusPending,
			"updated_at": now,
		})
	if err != nil {
		return nil, NewStorageError("failed to reschedule booking", err)
	}
	if !matched {
		return nil, NewConflictError(CodeConcurrentUpdate, "booking changed concurrently, please retry")
	}

	booking.Start = newStart
	booking.End = newEnd
	booking.Status = models.StatusPending
	booking.UpdatedAt = now

	// The stale reminder for the old interval is skipped by the worker; the
	// new interval gets its own.
	svc.scheduleReminder(booking)

	return booking, nil
}

// UpdateBookingDetails edits owner fields (notes, stylist). Only pending
// bookings accept edits.
func (svc *DefaultBookingService) UpdateBookingDetails(ctx context.Context, userID, bookingID string, input models.UpdateBookingInput) (*models.Booking, error) {
	booking, err := svc.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusPending {
		return nil, NewConflictError(CodeLifecycleGuard,
			fmt.Sprintf("a %s booking cannot be edited", booking.Status))
	}

	now := time.Now()
	set := map[string]any{"updated_at": now}
	if input.Notes != nil {
		set["notes"] = *input.Notes
		booking.Notes = *input.Notes
	}
	if input.StylistID != nil {
		stylist, stylistErr := svc.Catalog.GetStylistByID(ctx, *input.StylistID)
		if stylistErr != nil {
			return nil, NewStorageError("failed to fetch stylist", stylistErr)
		}
		if stylist == nil || stylist.SalonID != booking.SalonID {
			return nil, NewNotFoundError(CodeMultipleOrNoStylist,
				fmt.Sprintf("stylist %s not found in this salon", *input.StylistID))
		}
		if !stylist.IsActive {
			return nil, NewValidationError(CodeStylistInactive,
				fmt.Sprintf("stylist %s is inactive", stylist.ID))
		}
		set["stylist_id"] = stylist.ID
		booking.StylistID = stylist.ID
	}

	matched, err := svc.Bookings.ConditionalUpdate(ctx, bookingID,
		[]string{models.StatusPending}, booking.Start, set)
	if err != nil {
		return nil, NewStorageError("failed to update booking", err)
	}
	if !matched {
		return nil, NewConflictError(CodeConcurrentUpdate, "booking changed concurrently, please retry")
	}

	booking.UpdatedAt = now
	return booking, nil
}

// TransitionStatus applies an admin-authorized transition. No time guard
// applies, but terminal statuses never leave.
func (svc *DefaultBookingService) TransitionStatus(ctx context.Context, bookingID, targetStatus string) (*models.Booking, error) {
	if _, ok := transitionMap[targetStatus]; !ok {
		return nil, NewValidationError(CodeInvalidInput,
			fmt.Sprintf("unknown target status %q", targetStatus))
	}
	// Only a reschedule resets a booking to pending; the guarded reschedule
	// path owns that transition.
	if targetStatus == models.StatusPending {
		return nil, NewValidationError(CodeInvalidInput,
			"a booking cannot be reset to pending; reschedule it instead")
	}

	booking, err := svc.Bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, NewStorageError("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, NewNotFoundError(CodeBookingNotFound, fmt.Sprintf("booking %s not found", bookingID))
	}
	if !ValidTransition(booking.Status, targetStatus) {
		return nil, NewConflictError(CodeLifecycleGuard,
			fmt.Sprintf("cannot move a %s booking to %s", booking.Status, targetStatus))
	}

	now := time.Now()
	matched, err := svc.Bookings.ConditionalUpdate(ctx, bookingID,
		[]string{booking.Status}, time.Time{},
		map[string]any{
			"status":     targetStatus,
			"updated_at": now,
		})
	if err != nil {
		return nil, NewStorageError("failed to transition booking", err)
	}
	if !matched {
		return nil, NewConflictError(CodeConcurrentUpdate, "booking changed concurrently, please retry")
	}

	booking.Status = targetStatus
	booking.UpdatedAt = now
	return booking, nil
}
