package models

// Author is the identity of a submitter, taken from the authenticated
// request, never from the payload.
type Author struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Type  string `bson:"type" json:"type"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// Ref returns the identity key used by per-user counters.
func (a Author) Ref() UserRef {
	return UserRef{ID: a.ID, Type: a.Type}
}

// UserRef identifies a user across login providers.
type UserRef struct {
	ID   string `bson:"id" json:"id"`
	Type string `bson:"type" json:"type"`
}
