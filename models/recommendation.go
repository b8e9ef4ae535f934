package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Recommendation maps a shareable token (the document id) to the referring user.
type Recommendation struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	User  UserRef            `bson:"user" json:"user"`
	Count int                `bson:"count" json:"count"`
}
