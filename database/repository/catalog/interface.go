package catalogRepo

import (
	"context"

	"salonbook/models"
)

// CatalogRepository defines the read-side access to catalog entities used by the
// booking core. Catalog CRUD itself belongs to the salon administration surface.
type CatalogRepository interface {
	// GetServicesByIDs retrieves the services with the given ids within a salon.
	// Ids that do not exist are simply absent from the result.
	GetServicesByIDs(ctx context.Context, salonID string, serviceIDs []string) ([]models.Service, error)
	// GetStylistByID retrieves a stylist by its unique ID.
	GetStylistByID(ctx context.Context, stylistID string) (*models.Stylist, error)
	// GetStylistsForServices retrieves the stylists of a salon able to perform
	// every one of the given services.
	GetStylistsForServices(ctx context.Context, salonID string, serviceIDs []string) ([]models.Stylist, error)
	// GetWorkstationsBySalon retrieves a salon's workstations in stable order.
	GetWorkstationsBySalon(ctx context.Context, salonID string) ([]models.Workstation, error)
}
