package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
	"alfredoptarigan/interview-prep/internal/services"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
	similarity    services.SimilarityService
	promptBuilder *services.PromptBuilder
}

// NewInterviewHandler accepts a nil similarity service; the similar
// endpoint then answers 503.
func NewInterviewHandler(interviewRepo repositories.InterviewRepository, similarity services.SimilarityService) *InterviewHandler {
	return &InterviewHandler{
		interviewRepo: interviewRepo,
		similarity:    similarity,
		promptBuilder: services.NewPromptBuilder(),
	}
}

// HandleGet handles GET /interviews/:id
func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid interview ID format")
	}

	interview, err := h.interviewRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return respondRepoError(c, "Interview not found", err)
	}

	return respondSuccess(c, fiber.StatusOK, interview)
}

// HandleListByUser handles GET /users/:userId/interviews
func (h *InterviewHandler) HandleListByUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return respondMessage(c, fiber.StatusBadRequest, "userId is required")
	}

	interviews, err := h.interviewRepo.FindByUser(c.UserContext(), userID)
	if err != nil {
		return respondRepoError(c, "Interviews not found", err)
	}

	return respondSuccess(c, fiber.StatusOK, nonNil(interviews))
}

// HandleLatest handles GET /interviews/latest?userId=&limit=
// It lists finalized interviews created by other users.
func (h *InterviewHandler) HandleLatest(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		return respondMessage(c, fiber.StatusBadRequest, "userId is required")
	}

	interviews, err := h.interviewRepo.FindLatest(c.UserContext(), userID, queryLimit(c))
	if err != nil {
		return respondRepoError(c, "Interviews not found", err)
	}

	return respondSuccess(c, fiber.StatusOK, nonNil(interviews))
}

// HandleSimilar handles GET /interviews/:id/similar?limit=
func (h *InterviewHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.similarity == nil {
		return respondMessage(c, fiber.StatusServiceUnavailable, "similar interview search is not configured")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid interview ID format")
	}

	similar, err := h.similarity.FindSimilar(c.UserContext(), id, queryLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	if similar == nil {
		similar = []models.SimilarInterview{}
	}

	return respondSuccess(c, fiber.StatusOK, similar)
}

// HandleScript handles GET /interviews/:id/script
func (h *InterviewHandler) HandleScript(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid interview ID format")
	}

	interview, err := h.interviewRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return respondRepoError(c, "Interview not found", err)
	}

	return respondSuccess(c, fiber.StatusOK, models.InterviewScript{
		InterviewID: interview.ID,
		Questions:   h.promptBuilder.BuildInterviewerScript(interview.QuestionTexts()),
	})
}

func queryLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func nonNil(interviews []models.Interview) []models.Interview {
	if interviews == nil {
		return []models.Interview{}
	}
	return interviews
}
