package models

import "time"

type Note struct {
	ID          string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	Email       string    `gorm:"size:255;index" bson:"email" json:"email"`
	Title       string    `gorm:"size:255;not null" bson:"title" json:"title"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (Note) TableName() string { return "notes" }
