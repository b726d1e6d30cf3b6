package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (repo *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Conflict counting scans a workstation's bookings by start range.
		{Keys: bson.D{{Key: "workstation_id", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: -1}}},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, bookingIdx); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	lineIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}
	if _, err := repo.lineColl.Indexes().CreateMany(ctx, lineIdx); err != nil {
		return fmt.Errorf("failed to create service line indexes: %w", err)
	}

	return nil
}
