package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CountOverlapping counts non-cancelled bookings on a workstation intersecting
// the half-open candidate interval [start, end). Both boundary comparisons are
// strict, so a booking ending exactly at the candidate start does not count.
func (repo *MongoBookingRepo) CountOverlapping(ctx context.Context, workstationID string, start, end time.Time) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"workstation_id": workstationID,
		"status":         bson.M{"$ne": models.StatusCancelled},
		"start":          bson.M{"$lt": end},
		"end":            bson.M{"$gt": start},
	}
	count, err := repo.bookingColl.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

// ListOngoing returns a user's pending, confirmed and in-progress bookings
// ordered by start time ascending.
func (repo *MongoBookingRepo) ListOngoing(ctx context.Context, userID string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed, models.StatusInProgress}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching ongoing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding ongoing bookings: %w", err)
	}
	return bookings, nil
}

// ListHistory returns one page of a user's terminal-status bookings ordered by
// start time descending, plus the total number of history rows.
func (repo *MongoBookingRepo) ListHistory(ctx context.Context, userID string, offset, limit int64) ([]models.Booking, int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$in": []string{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow}},
	}

	total, err := repo.bookingColl.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting booking history: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error fetching booking history: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding booking history: %w", err)
	}
	return bookings, total, nil
}
