package database

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/study_platform/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	// InsertIfAbsent stores u unless a user with the same email exists, in which
	// case it returns ErrDuplicate without writing anything.
	InsertIfAbsent(ctx context.Context, u *models.User) (models.InsertResult, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, search string) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateRole(ctx context.Context, email string, role models.Role) (models.UpdateResult, error)
}

type SessionFilter struct {
	TutorEmail       string
	Status           models.SessionStatus
	ClassStartAfter  time.Time
	ClassStartBefore time.Time
	Limit            int
}

// SessionChange is applied by Transition. Owner, when set, restricts the update to
// sessions whose tutor email matches.
type SessionChange struct {
	Owner    string
	From     []models.SessionStatus
	Status   models.SessionStatus
	Fee      *float64
	Reason   *string
	Feedback *string
}

type SessionRepository interface {
	Insert(ctx context.Context, s *models.StudySession) (models.InsertResult, error)
	FindByID(ctx context.Context, id string) (*models.StudySession, error)
	List(ctx context.Context, f SessionFilter) ([]models.StudySession, error)
	// Transition performs a single conditional update: the session must have the
	// given id and currently be in one of ch.From.
	Transition(ctx context.Context, id string, ch SessionChange) (models.UpdateResult, error)
	Delete(ctx context.Context, id string) (models.DeleteResult, error)
	// Details returns the session with every review from the reviews collection
	// whose sessionId equals the session id. ErrNotFound when the id is unknown.
	Details(ctx context.Context, id string) (*models.SessionDetails, error)
}

type MaterialChange struct {
	Title *string
	Image *string
	Link  *string
}

type MaterialRepository interface {
	Insert(ctx context.Context, m *models.Material) (models.InsertResult, error)
	FindByID(ctx context.Context, id string) (*models.Material, error)
	// List returns materials by tutor email, or all materials when tutorEmail is empty.
	List(ctx context.Context, tutorEmail string) ([]models.Material, error)
	// Update and Delete only touch the material when owner is empty or equals its tutor email.
	Update(ctx context.Context, id, owner string, ch MaterialChange) (models.UpdateResult, error)
	Delete(ctx context.Context, id, owner string) (models.DeleteResult, error)
	// ForStudent joins the student's bookings with the materials of the booked
	// sessions, one row per material. An empty result is not an error.
	ForStudent(ctx context.Context, studentEmail string) ([]models.SessionMaterial, error)
}

type NoteChange struct {
	Title       *string
	Description *string
}

type NoteRepository interface {
	Insert(ctx context.Context, n *models.Note) (models.InsertResult, error)
	FindByID(ctx context.Context, id string) (*models.Note, error)
	ListByEmail(ctx context.Context, email string) ([]models.Note, error)
	Update(ctx context.Context, id, owner string, ch NoteChange) (models.UpdateResult, error)
	Delete(ctx context.Context, id, owner string) (models.DeleteResult, error)
}

type BookingRepository interface {
	// InsertIfAbsent returns ErrDuplicate when the student already booked the session.
	InsertIfAbsent(ctx context.Context, b *models.Booking) (models.InsertResult, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByStudent(ctx context.Context, email string) ([]models.Booking, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Booking, error)
}

type ReviewRepository interface {
	Insert(ctx context.Context, r *models.Review) (models.InsertResult, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Review, error)
}

type PaymentRepository interface {
	Insert(ctx context.Context, p *models.Payment) (models.InsertResult, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type Conn interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store is opened once at start-up and shared by every handler.
type Store struct {
	Conn
	Users         UserRepository
	Sessions      SessionRepository
	Materials     MaterialRepository
	Notes         NoteRepository
	Bookings      BookingRepository
	Reviews       ReviewRepository
	LegacyReviews ReviewRepository
	Payments      PaymentRepository
}

func NewID() string {
	return uuid.NewString()
}

// Stamp fills in an id and creation time for documents that arrive without them.
func Stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = NewID()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
