// Package companies resolves the company a working refers to.
package companies

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goodjob/apperr"
	"goodjob/logger"
	"goodjob/models"
)

// lookupLimit is enough to tell a unique match from an ambiguous one.
const lookupLimit = 2

// Finder looks up company records. Results are capped at two entries.
type Finder interface {
	FindByID(ctx context.Context, id string) ([]models.CompanyRecord, error)
	FindByQuery(ctx context.Context, query string) ([]models.CompanyRecord, error)
}

// Resolver turns a company id or free-text query into a canonical Company.
type Resolver struct {
	finder Finder
	cache  Cache
}

// NewResolver builds a Resolver. cache may be nil.
func NewResolver(finder Finder, cache Cache) *Resolver {
	return &Resolver{finder: finder, cache: cache}
}

// Resolve returns the company identified by id, or matched by query when
// id is empty. An unknown id is a 404; a query that matches zero or several
// companies resolves to its uppercased text without an id.
func (r *Resolver) Resolve(ctx context.Context, id, query string) (models.Company, error) {
	if id != "" {
		records, err := r.lookup(ctx, idKey(id), func() ([]models.CompanyRecord, error) {
			return r.finder.FindByID(ctx, id)
		})
		if err != nil {
			return models.Company{}, err
		}
		if len(records) == 0 {
			return models.Company{}, apperr.NotFound(fmt.Sprintf("company %q not found", id))
		}
		return models.Company{ID: records[0].ID, Name: records[0].Name}, nil
	}

	name := strings.ToUpper(query)
	records, err := r.lookup(ctx, queryKey(name), func() ([]models.CompanyRecord, error) {
		return r.finder.FindByQuery(ctx, name)
	})
	if err != nil {
		return models.Company{}, err
	}
	if len(records) == 1 {
		return models.Company{ID: records[0].ID, Name: records[0].Name}, nil
	}
	return models.Company{Name: name}, nil
}

func (r *Resolver) lookup(ctx context.Context, key string, load func() ([]models.CompanyRecord, error)) ([]models.CompanyRecord, error) {
	if r.cache != nil {
		if records, ok := r.cache.Get(ctx, key); ok {
			logger.Debug("company cache hit", zap.String("key", key))
			return records, nil
		}
	}
	records, err := load()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("find company: %w", err))
	}
	// misses are not cached so newly added companies resolve at once
	if r.cache != nil && len(records) > 0 {
		r.cache.Set(ctx, key, records)
	}
	return records, nil
}

// MongoFinder reads the companies collection.
type MongoFinder struct {
	coll *mongo.Collection
}

func NewMongoFinder(coll *mongo.Collection) *MongoFinder {
	return &MongoFinder{coll: coll}
}

func (f *MongoFinder) FindByID(ctx context.Context, id string) ([]models.CompanyRecord, error) {
	return f.find(ctx, bson.M{"id": id})
}

// FindByQuery matches the query against the company name or id.
func (f *MongoFinder) FindByQuery(ctx context.Context, query string) ([]models.CompanyRecord, error) {
	return f.find(ctx, bson.M{"$or": bson.A{
		bson.M{"name": query},
		bson.M{"id": query},
	}})
}

func (f *MongoFinder) find(ctx context.Context, filter bson.M) ([]models.CompanyRecord, error) {
	cursor, err := f.coll.Find(ctx, filter, options.Find().SetLimit(lookupLimit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CompanyRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
