package statsRepo

import (
	"fmt"
	"time"

	"questbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// accuracyExpr computes the rounded accuracy percentage of a stats document.
func accuracyExpr() bson.M {
	return bson.M{"$round": bson.A{
		bson.M{"$multiply": bson.A{
			bson.M{"$divide": bson.A{"$correctAnswers", "$totalQuestions"}},
			100,
		}},
		2,
	}}
}

// SummaryByUser aggregates a user's overall play statistics.
func (r *MongoGameStatsRepo) SummaryByUser(userID string) (*models.GameStatsSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"userId": userID}},
		{"$group": bson.M{
			"_id":            nil,
			"totalGames":     bson.M{"$sum": 1},
			"totalCorrect":   bson.M{"$sum": "$correctAnswers"},
			"totalQuestions": bson.M{"$sum": "$totalQuestions"},
			"avgAccuracy": bson.M{"$avg": bson.M{"$multiply": bson.A{
				bson.M{"$divide": bson.A{"$correctAnswers", "$totalQuestions"}},
				100,
			}}},
			"avgCompletionTime": bson.M{"$avg": "$completionTime"},
		}},
		{"$project": bson.M{
			"_id":               0,
			"totalGames":        1,
			"totalCorrect":      1,
			"totalQuestions":    1,
			"avgAccuracy":       bson.M{"$round": bson.A{"$avgAccuracy", 2}},
			"avgCompletionTime": bson.M{"$round": bson.A{"$avgCompletionTime", 2}},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats summary for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var results []models.GameStatsSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode stats summary: %w", err)
	}
	if len(results) == 0 {
		return &models.GameStatsSummary{}, nil
	}
	return &results[0], nil
}

// RecentByUser retrieves a user's most recent games, joined with location
// names, newest first.
func (r *MongoGameStatsRepo) RecentByUser(userID string, limit int) ([]models.PlayedGame, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"userId": userID}},
		{"$sort": bson.M{"date": -1}},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         "locations",
			"localField":   "locationId",
			"foreignField": "id",
			"as":           "location",
		}},
		{"$unwind": "$location"},
		{"$project": bson.M{
			"_id":            0,
			"gameId":         1,
			"date":           1,
			"locationName":   "$location.name",
			"correctAnswers": 1,
			"totalQuestions": 1,
			"accuracy":       accuracyExpr(),
			"completionTime": 1,
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recent games for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var games []models.PlayedGame
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode recent games: %w", err)
	}
	return games, nil
}

// AdminReport retrieves all matching game stats rows joined with user and
// location details, newest first.
func (r *MongoGameStatsRepo) AdminReport(filter models.GameStatsFilter) ([]models.AdminGameStatsRow, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	match := bson.M{}
	if filter.LocationID != "" {
		match["locationId"] = filter.LocationID
	}
	if filter.GameID != "" {
		match["gameId"] = filter.GameID
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		dateRange := bson.M{}
		if filter.DateFrom != nil {
			dateRange["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			dateRange["$lte"] = *filter.DateTo
		}
		match["date"] = dateRange
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "id",
			"as":           "user",
		}},
		{"$unwind": "$user"},
		{"$lookup": bson.M{
			"from":         "locations",
			"localField":   "locationId",
			"foreignField": "id",
			"as":           "location",
		}},
		{"$unwind": "$location"},
		{"$project": bson.M{
			"_id":            0,
			"userName":       "$user.profile.name",
			"userEmail":      "$user.email",
			"locationName":   "$location.name",
			"gameId":         1,
			"correctAnswers": 1,
			"totalQuestions": 1,
			"accuracy":       accuracyExpr(),
			"completionTime": 1,
			"date":           1,
		}},
		{"$sort": bson.M{"date": -1}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate admin stats report: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.AdminGameStatsRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode admin stats report: %w", err)
	}
	return rows, nil
}
