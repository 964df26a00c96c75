package models

import "time"

type Payment struct {
	ID          string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	Email       string    `gorm:"size:255;index;not null" bson:"email" json:"email"`
	SessionID   string    `gorm:"size:64" bson:"sessionId" json:"sessionId"`
	Amount      float64   `gorm:"type:numeric(10,2);not null" bson:"amount" json:"amount"`
	Currency    string    `gorm:"size:3" bson:"currency" json:"currency"`
	Provider    string    `gorm:"size:50;not null" bson:"provider" json:"provider"`
	ProviderRef string    `gorm:"size:255" bson:"providerRef,omitempty" json:"providerRef,omitempty"`
	Status      string    `gorm:"size:20;not null" bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }
