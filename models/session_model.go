package models

import "time"

type SessionStatus string

const (
	StatusPending  SessionStatus = "Pending"
	StatusApproved SessionStatus = "Approved"
	StatusRejected SessionStatus = "Rejected"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// transitions lists, per actor, the states a session may move into and the
// states it may leave to get there.
var transitions = map[Role]map[SessionStatus][]SessionStatus{
	RoleAdmin: {
		StatusApproved: {StatusPending},
		StatusRejected: {StatusPending},
	},
	RoleTutor: {
		StatusPending: {StatusRejected},
	},
}

// AllowedFrom returns the states from which actor may move a session to target.
// A nil result means the transition is not permitted at all.
func AllowedFrom(actor Role, target SessionStatus) []SessionStatus {
	return transitions[actor][target]
}

type Tutor struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type StudySession struct {
	ID                    string        `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	Title                 string        `gorm:"size:255;not null" bson:"title" json:"title"`
	Description           string        `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	Tutor                 Tutor         `gorm:"embedded;embeddedPrefix:tutor_" bson:"tutor" json:"tutor"`
	RegistrationStartDate time.Time     `bson:"registrationStartDate" json:"registrationStartDate"`
	RegistrationEndDate   time.Time     `bson:"registrationEndDate" json:"registrationEndDate"`
	ClassStartDate        time.Time     `gorm:"index" bson:"classStartDate" json:"classStartDate"`
	ClassEndDate          time.Time     `bson:"classEndDate" json:"classEndDate"`
	Duration              string        `gorm:"size:50" bson:"duration,omitempty" json:"duration,omitempty"`
	Fee                   float64       `gorm:"type:numeric(10,2);default:0" bson:"fee" json:"fee"`
	Status                SessionStatus `gorm:"size:20;not null;index" bson:"status" json:"status"`
	Reason                string        `gorm:"type:text" bson:"reason,omitempty" json:"reason,omitempty"`
	Feedback              string        `gorm:"type:text" bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt             time.Time     `bson:"createdAt" json:"createdAt"`
}

func (StudySession) TableName() string { return "study_sessions" }

// SessionDetails is a session together with the reviews whose sessionId matches its id.
type SessionDetails struct {
	StudySession `bson:",inline"`
	Reviews      []Review `gorm:"-" bson:"reviews" json:"reviews"`
}
