package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// User is keyed by email. An empty Role means the account holds no privileges.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	Name      string    `gorm:"size:255" bson:"name,omitempty" json:"name,omitempty"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" bson:"email" json:"email"`
	Photo     string    `gorm:"type:text" bson:"photo,omitempty" json:"photo,omitempty"`
	Role      Role      `gorm:"size:20" bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (User) TableName() string { return "users" }
