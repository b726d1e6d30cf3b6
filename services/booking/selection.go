package booking

import (
	"context"
	"fmt"

	"salonbook/models"

	"github.com/shopspring/decimal"
)

// ServiceSelection is the resolved outcome for a set of requested services:
// the single responsible stylist plus the totals charged at booking time.
type ServiceSelection struct {
	Stylist              models.Stylist
	Services             []models.Service
	TotalDurationMinutes int
	TotalPrice           float64
}

// resolveServiceSelection validates the requested service ids against the
// catalog and resolves the one stylist able to perform all of them. It has no
// side effects.
func (svc *DefaultBookingService) resolveServiceSelection(ctx context.Context, salonID string, serviceIDs []string) (*ServiceSelection, error) {
	if len(serviceIDs) == 0 {
		return nil, NewValidationError(CodeInvalidInput, "at least one service is required")
	}

	services, err := svc.Catalog.GetServicesByIDs(ctx, salonID, serviceIDs)
	if err != nil {
		return nil, NewStorageError("failed to fetch services", err)
	}
	if len(services) != len(serviceIDs) {
		return nil, NewValidationError(CodeServicesNotFound,
			fmt.Sprintf("requested %d services but only %d exist in this salon", len(serviceIDs), len(services)))
	}
	for _, service := range services {
		if !service.IsAvailable {
			return nil, NewValidationError(CodeServicesNotFound,
				fmt.Sprintf("service %s is not available", service.ID))
		}
	}

	stylists, err := svc.Catalog.GetStylistsForServices(ctx, salonID, serviceIDs)
	if err != nil {
		return nil, NewStorageError("failed to resolve stylists", err)
	}
	// A booking spans a single stylist; zero or several candidates is a
	// caller-fixable selection problem.
	if len(stylists) != 1 {
		return nil, NewValidationError(CodeMultipleOrNoStylist,
			fmt.Sprintf("%d stylists are mapped to the requested services, exactly one is required", len(stylists)))
	}
	stylist := stylists[0]
	if !stylist.IsActive {
		return nil, NewValidationError(CodeStylistInactive,
			fmt.Sprintf("stylist %s is inactive", stylist.ID))
	}

	totalDuration := 0
	totalPrice := decimal.Zero
	for _, service := range services {
		totalDuration += service.DurationMinutes
		totalPrice = totalPrice.Add(decimal.NewFromFloat(service.Price))
	}

	return &ServiceSelection{
		Stylist:              stylist,
		Services:             services,
		TotalDurationMinutes: totalDuration,
		TotalPrice:           totalPrice.InexactFloat64(),
	}, nil
}
