package handler

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/submission-gateway/internal/dto"
	"github.com/noah-isme/submission-gateway/internal/service"
	"github.com/noah-isme/submission-gateway/internal/utils"
)

// AllowedMethods is advertised in the Allow header of 405 responses.
const AllowedMethods = "GET, POST, OPTIONS"

// Response messages of the submissions endpoint.
const (
	MessageInvalidSubmission = "Invalid submission data."
	MessageSaved             = "Data saved successfully."
	MessageRetrieveFailed    = "Failed to retrieve data: "
	MessageSaveFailed        = "Failed to save data: "
	MessageFetchUnexpected   = "An unexpected error occurred while fetching data."
	MessageSaveUnexpected    = "An unexpected error occurred while saving data."
)

// SubmissionHandler serves the single submissions endpoint.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the endpoint to the provided router group. Every method is
// routed here so that unsupported ones get a 405 instead of a 404.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.All("", h.handle)
}

func (h *SubmissionHandler) handle(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodOptions:
		return c.Status(fiber.StatusOK).Send(nil)
	case fiber.MethodGet:
		return h.list(c)
	case fiber.MethodPost:
		return h.create(c)
	default:
		c.Set(fiber.HeaderAllow, AllowedMethods)
		return utils.SendText(c, fiber.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", c.Method()))
	}
}

func (h *SubmissionHandler) list(c *fiber.Ctx) (err error) {
	defer h.recoverUnexpected(c, MessageFetchUnexpected, &err)

	submissions, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err, MessageRetrieveFailed, MessageFetchUnexpected)
	}

	return utils.SendJSON(c, fiber.StatusOK, submissions)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) (err error) {
	defer h.recoverUnexpected(c, MessageSaveUnexpected, &err)

	var payload *dto.SubmissionRequest
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &payload); err != nil {
			return utils.SendMessage(c, fiber.StatusBadRequest, MessageInvalidSubmission)
		}
	}

	if err := h.service.Create(c.UserContext(), payload); err != nil {
		return h.handleError(c, err, MessageSaveFailed, MessageSaveUnexpected)
	}

	return utils.SendMessage(c, fiber.StatusCreated, MessageSaved)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error, storePrefix, unexpected string) error {
	if errors.Is(err, service.ErrInvalidSubmission) {
		return utils.SendMessage(c, fiber.StatusBadRequest, MessageInvalidSubmission)
	}

	logger := requestLogger(h.logger, c)
	if storeErr, ok := service.IsStoreError(err); ok {
		logger.Error().Err(storeErr.Err).Str("operation", storeErr.Op).Msg("store operation failed")
		return utils.SendMessage(c, fiber.StatusInternalServerError, storePrefix+storeErr.Err.Error())
	}

	logger.Error().Err(err).Msg("unexpected error")
	return utils.SendFailure(c, fiber.StatusInternalServerError, unexpected, err)
}

// recoverUnexpected turns a panic in a method's handling path into the
// unexpected-error response for that method.
func (h *SubmissionHandler) recoverUnexpected(c *fiber.Ctx, message string, err *error) {
	recovered := recover()
	if recovered == nil {
		return
	}

	cause, ok := recovered.(error)
	if !ok {
		cause = fmt.Errorf("%v", recovered)
	}

	requestLogger(h.logger, c).Error().Err(cause).Msg("recovered from panic")
	*err = utils.SendFailure(c, fiber.StatusInternalServerError, message, cause)
}
