package utils

import (
	"film-catalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message" example:"Film not found"`
}

// SuccessResponse sends data as the JSON body with the given status.
func SuccessResponse(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(data)
}

// ErrorResponse sends {"message": message} with the given status.
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(MessageResponse{Message: message})
}

// HandleError maps err onto its status code and message and writes the
// response. Database and internal failures are logged at error level.
func HandleError(c *fiber.Ctx, log *logrus.Logger, err error) error {
	code, message := apperrors.StatusCode(err)

	entry := log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"status": code,
	})
	switch apperrors.KindOf(err) {
	case apperrors.KindDatabase, apperrors.KindInternal:
		entry.Error("Request failed")
	default:
		entry.Debug("Request rejected")
	}

	return ErrorResponse(c, code, message)
}
