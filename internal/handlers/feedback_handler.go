package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
	}
}

// HandleSubmit handles POST /feedback. Scoring runs on the worker pool;
// the caller gets the queued job id right away.
func (h *FeedbackHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	feedback, err := h.feedback.Submit(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusAccepted, models.FeedbackAccepted{
		ID:     feedback.ID.String(),
		Status: string(feedback.Status),
	})
}

// HandleLatest handles GET /interviews/:id/feedback?userId=
func (h *FeedbackHandler) HandleLatest(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid interview ID format")
	}

	feedback, err := h.feedback.Latest(c.UserContext(), interviewID, c.Query("userId"))
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, feedback)
}
