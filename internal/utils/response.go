package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/submission-gateway/internal/dto"
)

// APIResponse is the envelope used by operational endpoints such as health.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends an enveloped success response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendJSON writes data as the response body without an envelope.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(data)
}

// SendMessage writes a {"message": ...} body.
func SendMessage(c *fiber.Ctx, status int, message string) error {
	return SendJSON(c, status, dto.MessageResponse{Message: message})
}

// SendFailure writes a {"message": ..., "error": ...} body.
func SendFailure(c *fiber.Ctx, status int, message string, cause error) error {
	body := dto.MessageResponse{Message: message}
	if cause != nil {
		body.Error = cause.Error()
	}

	return SendJSON(c, status, body)
}

// SendText writes a plain text body.
func SendText(c *fiber.Ctx, status int, text string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(text)
}
