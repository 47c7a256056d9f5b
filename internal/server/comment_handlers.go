package server

import (
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments. Text is trimmed and
// length-checked here; the store receives it as-is.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	text, err := validation.ValidateCommentText(req.Text)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	comment, err := s.content.AddComment(c.UserContext(), currentUserID(c), postID, text)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	if comment == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId. Allowed
// for the comment's author and the owning post's author; a vanished target
// yields 204, matching the store's idempotent delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.content.DeleteComment(c.UserContext(), currentUserID(c), postID, commentID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
