package models

// Company is the canonical company identity attached to a working. ID is
// empty when a free-text query did not resolve to a single company.
type Company struct {
	ID   string `bson:"id,omitempty" json:"id,omitempty"`
	Name string `bson:"name" json:"name"`
}

// CompanyRecord is a document of the companies directory.
type CompanyRecord struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}
