package quota

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"goodjob/db"
)

func TestMongoCounter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("increment returns the updated count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{{Key: CountField, Value: 3}}},
		))

		n, err := NewMongoCounter(mt.Coll).Increment(context.Background(), alice)
		require.NoError(mt, err)
		assert.Equal(mt, 3, n)
	})

	mt.Run("racing upsert surfaces as duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error collection: goodjob.users index: unique_user",
		}))

		_, err := NewMongoCounter(mt.Coll).Increment(context.Background(), alice)
		require.Error(mt, err)
		assert.True(mt, db.IsDuplicateKeyError(err))
	})

	mt.Run("decrement", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, NewMongoCounter(mt.Coll).Decrement(context.Background(), alice))
	})
}
