package reports

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
	"goodjob/utils"
)

// MongoStore keeps reports in the reports collection. Duplicates are
// rejected by the unique {reported_by, working_id} index created in
// db.EnsureIndexes, so two concurrent reports cannot both land.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (m *MongoStore) Insert(ctx context.Context, r *models.Report) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := m.coll.InsertOne(ctx, r)
	if db.IsDuplicateKeyError(err) {
		return apperr.Conflict("you have already reported this working")
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("insert report: %w", err))
	}
	return nil
}

func (m *MongoStore) ListByWorking(ctx context.Context, workingID primitive.ObjectID, page utils.Page) ([]models.Report, error) {
	cursor, err := m.coll.Find(ctx,
		bson.M{"working_id": workingID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(page.Skip()).
			SetLimit(int64(page.Limit)),
	)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("find reports: %w", err))
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, apperr.Internal(fmt.Errorf("decode reports: %w", err))
	}
	return reports, nil
}
