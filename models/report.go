package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a user's flag on a working.
type Report struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkingID      primitive.ObjectID `bson:"working_id" json:"working_id"`
	ReportedBy     UserRef            `bson:"reported_by" json:"-"`
	ReasonCategory string             `bson:"reason_category" json:"reason_category"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         string             `bson:"status" json:"status"` // pending, resolved
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
