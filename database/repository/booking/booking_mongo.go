package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/config"
	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	lineColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		lineColl:    db.Collection("booking_service_lines"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: failed to ensure booking indexes: %v\n", err)
	}
	return repo
}

// InsertBooking inserts a new booking header document and returns its id.
func (repo *MongoBookingRepo) InsertBooking(ctx context.Context, booking *models.Booking) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctxWithTimeout, booking); err != nil {
		return "", fmt.Errorf("error creating booking: %w", err)
	}
	return booking.ID, nil
}

// InsertServiceLines inserts all service line documents for a booking.
func (repo *MongoBookingRepo) InsertServiceLines(ctx context.Context, lines []models.BookingServiceLine) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, line)
	}
	if _, err := repo.lineColl.InsertMany(ctxWithTimeout, docs); err != nil {
		return fmt.Errorf("error creating booking service lines: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking header. A zero delete count is not an error.
func (repo *MongoBookingRepo) DeleteBooking(ctx context.Context, bookingID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	if _, err := repo.bookingColl.DeleteOne(ctxWithTimeout, filter); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", bookingID, err)
	}
	return nil
}

// DeleteServiceLines removes all service lines belonging to a booking.
func (repo *MongoBookingRepo) DeleteServiceLines(ctx context.Context, bookingID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID}
	if _, err := repo.lineColl.DeleteMany(ctxWithTimeout, filter); err != nil {
		return fmt.Errorf("error deleting service lines for booking %s: %w", bookingID, err)
	}
	return nil
}

// GetBookingByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// GetServiceLines retrieves the service lines of a booking.
func (repo *MongoBookingRepo) GetServiceLines(ctx context.Context, bookingID string) ([]models.BookingServiceLine, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.lineColl.Find(ctxWithTimeout, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error fetching service lines for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var lines []models.BookingServiceLine
	if err := cursor.All(ctxWithTimeout, &lines); err != nil {
		return nil, fmt.Errorf("error decoding service lines: %w", err)
	}
	return lines, nil
}

// ConditionalUpdate applies set fields under an optimistic precondition: the
// booking must still carry one of the expected statuses (and start instant, when
// given) observed by the caller's earlier read. A concurrent transition makes
// the filter miss and the caller sees matched=false.
func (repo *MongoBookingRepo) ConditionalUpdate(ctx context.Context, bookingID string, expectedStatuses []string, expectedStart time.Time, set map[string]any) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$in": expectedStatuses},
	}
	if !expectedStart.IsZero() {
		filter["start"] = expectedStart
	}

	update := bson.M{"$set": bson.M(set)}
	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return false, fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return res.MatchedCount > 0, nil
}
