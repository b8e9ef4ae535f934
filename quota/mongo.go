package quota

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goodjob/models"
)

// CountField is the counter field stored on the user document.
const CountField = "time_and_salary_count"

// MongoCounter keeps the counter on the users collection, one document per
// {user_id, type}.
type MongoCounter struct {
	coll *mongo.Collection
}

func NewMongoCounter(coll *mongo.Collection) *MongoCounter {
	return &MongoCounter{coll: coll}
}

func userFilter(user models.UserRef) bson.M {
	return bson.M{"user_id": user.ID, "type": user.Type}
}

// Increment upserts the user document and returns the counter after the
// increment.
func (c *MongoCounter) Increment(ctx context.Context, user models.UserRef) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{CountField: 1})

	var doc struct {
		Count int `bson:"time_and_salary_count"`
	}
	err := c.coll.FindOneAndUpdate(ctx, userFilter(user), bson.M{"$inc": bson.M{CountField: 1}}, opts).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Count, nil
}

func (c *MongoCounter) Decrement(ctx context.Context, user models.UserRef) error {
	_, err := c.coll.UpdateOne(ctx, userFilter(user), bson.M{"$inc": bson.M{CountField: -1}})
	return err
}
