package statsRepo

import (
	"context"
	"fmt"
	"time"

	"questbook/database"
	"questbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGameStatsRepo implements GameStatsRepository using MongoDB.
type MongoGameStatsRepo struct {
	coll *mongo.Collection
}

// NewMongoGameStatsRepo creates a new instance of GameStatsRepository using MongoDB.
func NewMongoGameStatsRepo() GameStatsRepository {
	coll := database.Collection("gamestats")
	repo := &MongoGameStatsRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoGameStatsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "locationId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new game stats document.
func (r *MongoGameStatsRepo) Create(stats *models.GameStats) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	stats.CreatedAt = now
	stats.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, stats)
	if err != nil {
		return fmt.Errorf("failed to create game stats: %w", err)
	}
	return nil
}
