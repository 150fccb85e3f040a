package bookingRepo

import (
	"fmt"
	"time"

	"questbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByUser retrieves a user's bookings, newest slot first.
func (r *MongoBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "slot", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetConfirmedInRange retrieves confirmed bookings for a location whose slot
// falls within [from, to] inclusive.
func (r *MongoBookingRepo) GetConfirmedInRange(locationID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"locationId": locationID,
		"slot":       bson.M{"$gte": from, "$lte": to},
		"status":     models.BookingConfirmed,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings for location %s: %w", locationID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Find retrieves bookings matching the admin filter.
func (r *MongoBookingRepo) Find(filter models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.LocationID != "" {
		query["locationId"] = filter.LocationID
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		slotRange := bson.M{}
		if filter.DateFrom != nil {
			slotRange["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			slotRange["$lte"] = *filter.DateTo
		}
		query["slot"] = slotRange
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// CountByUser counts a user's bookings.
func (r *MongoBookingRepo) CountByUser(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for user %s: %w", userID, err)
	}
	return count, nil
}

// StatsByUser aggregates a user's booking summary: totals, upcoming confirmed
// bookings relative to now, and the latest slot.
func (r *MongoBookingRepo) StatsByUser(userID string, now time.Time) (*models.BookingStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"userId": userID}},
		{"$group": bson.M{
			"_id":           nil,
			"totalBookings": bson.M{"$sum": 1},
			"upcomingBookings": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$status", models.BookingConfirmed}},
					bson.M{"$gt": bson.A{"$slot", now}},
				}},
				1,
				0,
			}}},
			"lastBookingDate": bson.M{"$max": "$slot"},
		}},
		{"$project": bson.M{"_id": 0}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking stats for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var results []models.BookingStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode booking stats: %w", err)
	}
	if len(results) == 0 {
		return &models.BookingStats{}, nil
	}
	return &results[0], nil
}

// FavoriteLocationByUser returns the location a user books most often,
// joined with the locations collection for its name; nil if the user has no
// bookings.
func (r *MongoBookingRepo) FavoriteLocationByUser(userID string) (*models.FavoriteLocation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"userId": userID}},
		{"$group": bson.M{"_id": "$locationId", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 1},
		{"$lookup": bson.M{
			"from":         "locations",
			"localField":   "_id",
			"foreignField": "id",
			"as":           "location",
		}},
		{"$unwind": "$location"},
		{"$project": bson.M{
			"_id":          0,
			"locationId":   "$_id",
			"locationName": "$location.name",
			"gamesCount":   "$count",
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate favorite location for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var results []models.FavoriteLocation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode favorite location: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
