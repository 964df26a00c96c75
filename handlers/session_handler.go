package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/spf13/cast"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
)

// CreateSessionRequest takes dates as strings so clients may send either a
// plain date or a full timestamp.
type CreateSessionRequest struct {
	Title             string       `json:"title" validate:"required"`
	Description       string       `json:"description"`
	Tutor             models.Tutor `json:"tutor"`
	RegistrationStart string       `json:"registrationStartDate"`
	RegistrationEnd   string       `json:"registrationEndDate"`
	ClassStart        string       `json:"classStartDate"`
	ClassEnd          string       `json:"classEndDate"`
	Duration          string       `json:"duration"`
	Fee               float64      `json:"fee" validate:"min=0"`
}

type ApproveRequest struct {
	Fee *float64 `json:"fee" validate:"omitempty,min=0"`
}

type RejectRequest struct {
	Reason   *string `json:"reason"`
	Feedback *string `json:"feedback"`
}

type StatusRequest struct {
	Status models.SessionStatus `json:"status" validate:"required,oneof=Pending Approved Rejected"`
}

func parseDates(dst map[*time.Time]string) error {
	for field, raw := range dst {
		if raw == "" {
			continue
		}
		t, err := cast.ToTimeE(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date: "+raw)
		}
		*field = t.UTC()
	}
	return nil
}

// CreateSession stores a new session owned by the caller, always in Pending.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	var session models.StudySession
	if err := copier.Copy(&session, &req); err != nil {
		return err
	}
	err := parseDates(map[*time.Time]string{
		&session.RegistrationStartDate: req.RegistrationStart,
		&session.RegistrationEndDate:   req.RegistrationEnd,
		&session.ClassStartDate:        req.ClassStart,
		&session.ClassEndDate:          req.ClassEnd,
	})
	if err != nil {
		return err
	}
	session.Tutor.Email = middleware.Email(c)
	session.Status = models.StatusPending

	res, err := h.Store.Sessions.Insert(c.UserContext(), &session)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) listSessions(c *fiber.Ctx, f database.SessionFilter) error {
	sessions, err := h.Store.Sessions.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

func (h *Handler) GetTutorSessions(c *fiber.Ctx) error {
	return h.listSessions(c, database.SessionFilter{
		TutorEmail: c.Params("email"),
		Status:     models.SessionStatus(c.Query("status")),
	})
}

func (h *Handler) GetApprovedSessions(c *fiber.Ctx) error {
	return h.listSessions(c, database.SessionFilter{
		Status: models.StatusApproved,
		Limit:  cast.ToInt(c.Query("limit")),
	})
}

func (h *Handler) GetAllSessions(c *fiber.Ctx) error {
	return h.listSessions(c, database.SessionFilter{Status: models.SessionStatus(c.Query("status"))})
}

// GetSessionDetails returns the session joined with its reviews.
func (h *Handler) GetSessionDetails(c *fiber.Ctx) error {
	details, err := h.Store.Sessions.Details(c.UserContext(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return message(c, fiber.StatusNotFound, "Session not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(details)
}

func (h *Handler) ApproveSession(c *fiber.Ctx) error {
	var req ApproveRequest
	if err := bindOptional(c, &req); err != nil {
		return err
	}
	res, err := h.Store.Sessions.Transition(c.UserContext(), c.Params("id"), database.SessionChange{
		From:   models.AllowedFrom(models.RoleAdmin, models.StatusApproved),
		Status: models.StatusApproved,
		Fee:    req.Fee,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) RejectSession(c *fiber.Ctx) error {
	var req RejectRequest
	if err := bindOptional(c, &req); err != nil {
		return err
	}
	res, err := h.Store.Sessions.Transition(c.UserContext(), c.Params("id"), database.SessionChange{
		From:     models.AllowedFrom(models.RoleAdmin, models.StatusRejected),
		Status:   models.StatusRejected,
		Reason:   req.Reason,
		Feedback: req.Feedback,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ChangeSessionStatus lets a tutor move one of their own sessions along the
// transitions open to tutors.
func (h *Handler) ChangeSessionStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	from := models.AllowedFrom(models.RoleTutor, req.Status)
	if from == nil {
		return message(c, fiber.StatusBadRequest, "tutors cannot move a session to "+string(req.Status))
	}
	res, err := h.Store.Sessions.Transition(c.UserContext(), c.Params("id"), database.SessionChange{
		Owner:  middleware.Email(c),
		From:   from,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	res, err := h.Store.Sessions.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}
