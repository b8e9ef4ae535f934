package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	WorkingsCollection        = "workings"
	UsersCollection           = "users"
	CompaniesCollection       = "companies"
	RecommendationsCollection = "recommendations"
	ReportsCollection         = "reports"
)

// Database bundles the client and the collections used by the service.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database

	Workings        *mongo.Collection
	Users           *mongo.Collection
	Companies       *mongo.Collection
	Recommendations *mongo.Collection
	Reports         *mongo.Collection
}

// Connect opens a client against uri, pings it and binds the collections of
// database name.
func Connect(ctx context.Context, uri, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return New(client, name), nil
}

// New binds the collections of database name on an existing client.
func New(client *mongo.Client, name string) *Database {
	d := client.Database(name)
	return &Database{
		Client:          client,
		DB:              d,
		Workings:        d.Collection(WorkingsCollection),
		Users:           d.Collection(UsersCollection),
		Companies:       d.Collection(CompaniesCollection),
		Recommendations: d.Collection(RecommendationsCollection),
		Reports:         d.Collection(ReportsCollection),
	}
}

// EnsureIndexes creates the indexes the write paths rely on. The unique
// user index is what turns a concurrent first-time quota upsert into a
// duplicate-key error instead of two user documents.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	if _, err := d.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_user"),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	if _, err := d.Companies.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"id": 1}, Options: options.Index().SetName("company_id")},
		{Keys: bson.M{"name": 1}, Options: options.Index().SetName("company_name")},
	}); err != nil {
		return fmt.Errorf("companies index: %w", err)
	}

	if _, err := d.Workings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author.id", Value: 1}, {Key: "author.type", Value: 1}}, Options: options.Index().SetName("author")},
		{Keys: bson.M{"company.id": 1}, Options: options.Index().SetName("company")},
		{Keys: bson.M{"created_at": -1}, Options: options.Index().SetName("created_at")},
	}); err != nil {
		return fmt.Errorf("workings index: %w", err)
	}

	if _, err := d.Reports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "reported_by.id", Value: 1},
			{Key: "reported_by.type", Value: 1},
			{Key: "working_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("unique_report"),
	}); err != nil {
		return fmt.Errorf("reports index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// IsDuplicateKeyError detects duplicate key errors from inserts and
// upserting findAndModify commands alike.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}

// IsNotFound reports whether err means a single-document lookup matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
