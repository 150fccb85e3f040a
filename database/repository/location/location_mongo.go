package locationRepo

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

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo creates a new instance of LocationRepository using MongoDB.
func NewMongoLocationRepo() LocationRepository {
	coll := database.Collection("locations")
	repo := &MongoLocationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLocationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a location by its unique ID; nil if absent.
func (r *MongoLocationRepo) GetByID(id string) (*models.Location, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var loc models.Location
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&loc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch location with id %s: %w", id, err)
	}
	return &loc, nil
}

// GetActive retrieves all active locations.
func (r *MongoLocationRepo) GetActive() ([]models.Location, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []models.Location
	for cursor.Next(ctx) {
		var loc models.Location
		if err := cursor.Decode(&loc); err != nil {
			return nil, fmt.Errorf("failed to decode location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// Create inserts a new location document.
func (r *MongoLocationRepo) Create(location *models.Location) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// Update modifies an existing location document.
func (r *MongoLocationRepo) Update(location *models.Location) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	location.UpdatedAt = time.Now()
	filter := bson.M{"id": location.ID}
	update := bson.M{"$set": location}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update location with id %s: %w", location.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("location with id %s not found", location.ID)
	}
	return nil
}
