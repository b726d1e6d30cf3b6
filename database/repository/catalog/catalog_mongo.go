package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/config"
	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	serviceColl     *mongo.Collection
	stylistColl     *mongo.Collection
	workstationColl *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoCatalogRepo{
		serviceColl:     db.Collection("services"),
		stylistColl:     db.Collection("stylists"),
		workstationColl: db.Collection("workstations"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: failed to ensure catalog indexes: %v\n", err)
	}
	return repo
}

// GetServicesByIDs retrieves the requested services within a salon.
func (repo *MongoCatalogRepo) GetServicesByIDs(ctx context.Context, salonID string, serviceIDs []string) ([]models.Service, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"salon_id": salonID,
		"id":       bson.M{"$in": serviceIDs},
	}
	cursor, err := repo.serviceColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching services: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var services []models.Service
	if err := cursor.All(ctxWithTimeout, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// GetStylistByID retrieves a stylist document by ID.
func (repo *MongoCatalogRepo) GetStylistByID(ctx context.Context, stylistID string) (*models.Stylist, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var stylist models.Stylist
	filter := bson.M{"id": stylistID}
	if err := repo.stylistColl.FindOne(ctxWithTimeout, filter).Decode(&stylist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching stylist with id %s: %w", stylistID, err)
	}
	return &stylist, nil
}

// GetStylistsForServices retrieves the stylists mapped to the full set of services.
func (repo *MongoCatalogRepo) GetStylistsForServices(ctx context.Context, salonID string, serviceIDs []string) ([]models.Stylist, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"salon_id":    salonID,
		"service_ids": bson.M{"$all": serviceIDs},
	}
	cursor, err := repo.stylistColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching stylists: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var stylists []models.Stylist
	if err := cursor.All(ctxWithTimeout, &stylists); err != nil {
		return nil, fmt.Errorf("error decoding stylists: %w", err)
	}
	return stylists, nil
}

// GetWorkstationsBySalon retrieves a salon's workstations, ordered by position
// then id so enumeration is stable across requests.
func (repo *MongoCatalogRepo) GetWorkstationsBySalon(ctx context.Context, salonID string) ([]models.Workstation, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"salon_id": salonID}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := repo.workstationColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching workstations for salon %s: %w", salonID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var workstations []models.Workstation
	if err := cursor.All(ctxWithTimeout, &workstations); err != nil {
		return nil, fmt.Errorf("error decoding workstations: %w", err)
	}
	return workstations, nil
}
