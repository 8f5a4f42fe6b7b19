package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/antigravity-hq/antigravity/backend/internal/apperr"
	"github.com/antigravity-hq/antigravity/backend/internal/models"
)

// MongoStore handles report CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("reports")}
}

// Insert persists a new report and returns it with its generated id.
func (s *MongoStore) Insert(ctx context.Context, report *models.Report) (*models.Report, error) {
	report.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	report.ID = res.InsertedID.(primitive.ObjectID)
	return report, nil
}

// ListByUser returns the user's reports, newest first.
func (s *MongoStore) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []models.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetByIDForUser fetches a report scoped to its owner. A malformed id, a
// missing report and a report owned by someone else all look the same.
func (s *MongoStore) GetByIDForUser(ctx context.Context, id, userID string) (*models.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("report not found")
	}
	var report models.Report
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("report not found")
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
