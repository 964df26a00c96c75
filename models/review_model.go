package models

import "time"

type Review struct {
	ID           string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	SessionID    string    `gorm:"size:64;index" bson:"sessionId" json:"sessionId"`
	StudentEmail string    `gorm:"size:255" bson:"studentEmail" json:"studentEmail"`
	StudentName  string    `gorm:"size:255" bson:"studentName,omitempty" json:"studentName,omitempty"`
	Rating       int       `bson:"rating" json:"rating"`
	Comment      string    `gorm:"type:text" bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Reviews are written to two collections: ReviewsCollection, which the session
// details view joins, and the older LegacyReviewCollection.
const (
	ReviewsCollection      = "reviews"
	LegacyReviewCollection = "review"
)
