package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/middleware"
	"github.com/anjiri1684/study_platform/models"
)

type NoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateNoteRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

func (h *Handler) CreateNote(c *fiber.Ctx) error {
	var req NoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	note := models.Note{
		Email:       middleware.Email(c),
		Title:       req.Title,
		Description: req.Description,
	}
	res, err := h.Store.Notes.Insert(c.UserContext(), &note)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) GetNotes(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != middleware.Email(c) {
		return forbidden(c)
	}
	notes, err := h.Store.Notes.ListByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (h *Handler) GetNote(c *fiber.Ctx) error {
	note, err := h.Store.Notes.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return message(c, fiber.StatusNotFound, "Note not found")
	}
	if err != nil {
		return err
	}
	if note.Email != middleware.Email(c) {
		return forbidden(c)
	}
	return c.JSON(note)
}

func (h *Handler) UpdateNote(c *fiber.Ctx) error {
	var req UpdateNoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.Store.Notes.Update(c.UserContext(), c.Params("id"), middleware.Email(c), database.NoteChange{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *Handler) DeleteNote(c *fiber.Ctx) error {
	res, err := h.Store.Notes.Delete(c.UserContext(), c.Params("id"), middleware.Email(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}
