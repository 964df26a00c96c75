package models

import "time"

// Material belongs to a session only through SessionID; nothing enforces that the session exists.
type Material struct {
	ID         string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	Title      string    `gorm:"size:255;not null" bson:"title" json:"title"`
	SessionID  string    `gorm:"size:64;index" bson:"sessionId" json:"sessionId"`
	TutorEmail string    `gorm:"size:255;index" bson:"tutorEmail" json:"tutorEmail"`
	Image      string    `gorm:"type:text" bson:"image,omitempty" json:"image,omitempty"`
	Link       string    `gorm:"type:text" bson:"link,omitempty" json:"link,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

func (Material) TableName() string { return "materials" }

// SessionMaterial is one row of the student materials view: a booked session joined
// with one of its materials.
type SessionMaterial struct {
	ID           string `bson:"_id" json:"_id"`
	SessionID    string `bson:"sessionId" json:"sessionId"`
	SessionTitle string `bson:"sessionTitle,omitempty" json:"sessionTitle,omitempty"`
	Title        string `bson:"title" json:"title"`
	Image        string `bson:"image,omitempty" json:"image,omitempty"`
	Link         string `bson:"link,omitempty" json:"link,omitempty"`
	TutorEmail   string `bson:"tutorEmail" json:"tutorEmail"`
}
