package workings

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goodjob/apperr"
	"goodjob/db"
	"goodjob/models"
)

// MongoStore keeps workings in the workings collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Insert stores w and sets its generated id.
func (m *MongoStore) Insert(ctx context.Context, w *models.Working) error {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	if _, err := m.coll.InsertOne(ctx, w); err != nil {
		return err
	}
	return nil
}

func (m *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Working, error) {
	var w models.Working
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if db.IsNotFound(err) {
		return nil, apperr.NotFound("working not found")
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("find working: %w", err))
	}
	return &w, nil
}

func (m *MongoStore) SetArchive(ctx context.Context, id primitive.ObjectID, archive models.Archive) (*models.Working, error) {
	var w models.Working
	err := m.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"archive": archive}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&w)
	if db.IsNotFound(err) {
		return nil, apperr.NotFound("working not found")
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("archive working: %w", err))
	}
	return &w, nil
}

func (m *MongoStore) IncrementReportCount(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"report_count": 1}})
	if err != nil {
		return apperr.Internal(fmt.Errorf("count report: %w", err))
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("working not found")
	}
	return nil
}
