// Package recommendations credits referrers whose recommendation token
// accompanied a submission.
package recommendations

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"goodjob/db"
	"goodjob/models"
)

// Store reads and updates the recommendations collection.
type Store interface {
	// FindByID returns nil, nil when no recommendation has that id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recommendation, error)
	IncrementCount(ctx context.Context, user models.UserRef) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Resolve maps a token to its referrer. It returns the referring
// models.UserRef when the token names a recommendation and the raw token
// when it is malformed or unknown. Only storage failures are errors.
func (s *Service) Resolve(ctx context.Context, token string) (any, error) {
	if token == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(token)
	if err != nil {
		return token, nil
	}
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find recommendation: %w", err)
	}
	if rec == nil {
		return token, nil
	}
	return rec.User, nil
}

// Increment credits user with one more referred submission.
func (s *Service) Increment(ctx context.Context, user models.UserRef) error {
	return s.store.IncrementCount(ctx, user)
}

// MongoStore keeps one recommendation document per referrer.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (m *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if db.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *MongoStore) IncrementCount(ctx context.Context, user models.UserRef) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"user.id": user.ID, "user.type": user.Type},
		bson.M{"$inc": bson.M{"count": 1}},
	)
	return err
}
