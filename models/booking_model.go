package models

import "time"

type Booking struct {
	ID            string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	SessionID     string    `gorm:"size:64;not null;uniqueIndex:idx_booking_session_student" bson:"sessionId" json:"sessionId"`
	SessionTitle  string    `gorm:"size:255" bson:"sessionTitle,omitempty" json:"sessionTitle,omitempty"`
	StudentEmail  string    `gorm:"size:255;not null;uniqueIndex:idx_booking_session_student" bson:"studentEmail" json:"studentEmail"`
	TutorEmail    string    `gorm:"size:255" bson:"tutorEmail,omitempty" json:"tutorEmail,omitempty"`
	Fee           float64   `gorm:"type:numeric(10,2);default:0" bson:"fee" json:"fee"`
	TransactionID string    `gorm:"size:255" bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

func (Booking) TableName() string { return "bookings" }
