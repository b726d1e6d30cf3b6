package booking

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateBooking creates an online-customer booking. The flow is
// selection → allocation → ledger write; the workstation's advisory lock stays
// held from the conflict check until the ledger write finishes.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, userID string, input models.CreateBookingInput) (*models.BookingCreatedResponse, error) {
	if userID == "" {
		return nil, NewValidationError(CodeInvalidInput, "user id is required")
	}
	if input.SalonID == "" {
		return nil, NewValidationError(CodeInvalidInput, "salon id is required")
	}
	if input.Start.IsZero() {
		return nil, NewValidationError(CodeInvalidInput, "booking start is required")
	}

	selection, err := svc.resolveServiceSelection(ctx, input.SalonID, input.ServiceIDs)
	if err != nil {
		return nil, err
	}

	start := input.Start.UTC()
	end := start.Add(time.Duration(selection.TotalDurationMinutes) * time.Minute)

	workstationID, release, err := svc.allocateWorkstation(ctx, input.SalonID, start, end)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		UserID:               userID,
		SalonID:              input.SalonID,
		StylistID:            selection.Stylist.ID,
		WorkstationID:        workstationID,
		Start:                start,
		End:                  end,
		TotalDurationMinutes: selection.TotalDurationMinutes,
		TotalPrice:           selection.TotalPrice,
		Status:               models.StatusPending,
		BookedMode:           models.BookedModeOnline,
		Notes:                input.Notes,
		BookedAt:             now,
		UpdatedAt:            now,
	}

	lines := make([]models.BookingServiceLine, 0, len(selection.Services))
	for _, service := range selection.Services {
		lines = append(lines, models.BookingServiceLine{
			ID:                uuid.New().String(),
			ServiceID:         service.ID,
			SalonID:           input.SalonID,
			PriceAtBooking:    service.Price,
			DurationAtBooking: service.DurationMinutes,
		})
	}

	bookingID, err := svc.writeBookingLedger(ctx, booking, lines)
	if err != nil {
		return nil, err
	}

	svc.scheduleReminder(booking)

	return &models.BookingCreatedResponse{
		BookingID:     bookingID,
		WorkstationID: workstationID,
	}, nil
}

// CreateAdminBooking creates a walk-in booking entered by a salon admin. The
// stylist is supplied directly and per-service price/duration snapshots are
// taken verbatim rather than recomputed from the catalog.
func (svc *DefaultBookingService) CreateAdminBooking(ctx context.Context, input models.AdminCreateBookingInput) (*models.BookingCreatedResponse, error) {
	if input.NonOnlineCustomerID == "" {
		return nil, NewValidationError(CodeInvalidInput, "non-online customer id is required")
	}
	if input.SalonID == "" {
		return nil, NewValidationError(CodeInvalidInput, "salon id is required")
	}
	if input.Start.IsZero() {
		return nil, NewValidationError(CodeInvalidInput, "booking start is required")
	}
	if len(input.Services) == 0 {
		return nil, NewValidationError(CodeInvalidInput, "at least one service is required")
	}

	stylist, err := svc.Catalog.GetStylistByID(ctx, input.StylistID)
	if err != nil {
		return nil, NewStorageError("failed to fetch stylist", err)
	}
	if stylist == nil || stylist.SalonID != input.SalonID {
		return nil, NewNotFoundError(CodeMultipleOrNoStylist,
			fmt.Sprintf("stylist %s not found in this salon", input.StylistID))
	}

	totalDuration := 0
	totalPrice := decimal.Zero
	for _, line := range input.Services {
		if line.DurationAtBooking <= 0 {
			return nil, NewValidationError(CodeInvalidInput,
				fmt.Sprintf("service %s has a non-positive duration", line.ServiceID))
		}
		totalDuration += line.DurationAtBooking
		totalPrice = totalPrice.Add(decimal.NewFromFloat(line.PriceAtBooking))
	}

	start := input.Start.UTC()
	end := start.Add(time.Duration(totalDuration) * time.Minute)

	workstationID, release, err := svc.allocateWorkstation(ctx, input.SalonID, start, end)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		NonOnlineCustomerID:  input.NonOnlineCustomerID,
		SalonID:              input.SalonID,
		StylistID:            stylist.ID,
		WorkstationID:        workstationID,
		Start:                start,
		End:                  end,
		TotalDurationMinutes: totalDuration,
		TotalPrice:           totalPrice.InexactFloat64(),
		Status:               models.StatusPending,
		BookedMode:           models.BookedModeAdmin,
		Notes:                input.Notes,
		BookedAt:             now,
		UpdatedAt:            now,
	}

	lines := make([]models.BookingServiceLine, 0, len(input.Services))
	for _, lineInput := range input.Services {
		lines = append(lines, models.BookingServiceLine{
			ID:                uuid.New().String(),
			ServiceID:         lineInput.ServiceID,
			SalonID:           input.SalonID,
			PriceAtBooking:    lineInput.PriceAtBooking,
			DurationAtBooking: lineInput.DurationAtBooking,
			Notes:             lineInput.Notes,
		})
	}

	bookingID, err := svc.writeBookingLedger(ctx, booking, lines)
	if err != nil {
		return nil, err
	}

	return &models.BookingCreatedResponse{
		BookingID:     bookingID,
		WorkstationID: workstationID,
	}, nil
}

// scheduleReminder enqueues a best-effort pre-appointment reminder. A failed
// enqueue never fails the booking.
func (svc *DefaultBookingService) scheduleReminder(booking *models.Booking) {
	if svc.Reminders == nil || booking.UserID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Reminders.ScheduleReminder(ctx, booking); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
