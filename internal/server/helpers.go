package server

import (
	"errors"
	"strconv"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.UserIDLocal).(string)
	return id
}

// parseID extracts a route parameter by name as a positive int64 post or
// comment id. On failure it writes a 400 JSON response and returns
// errResponseWritten; callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return id, nil
}

func humanizeParam(param string) string {
	switch param {
	case "id":
		return "ID"
	case "commentId":
		return "comment ID"
	default:
		return param
	}
}

// statusForError maps store error codes onto HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeDuplicateEmail, models.CodeDuplicateUsername:
		return fiber.StatusConflict
	case models.CodeInvalidCredentials:
		return fiber.StatusUnauthorized
	case models.CodeUnauthorized:
		return fiber.StatusForbidden
	case models.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
