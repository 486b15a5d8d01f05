package handlers

import (
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
)

type GenerateHandler struct {
	generator services.InterviewGenerator
}

func NewGenerateHandler(generator services.InterviewGenerator) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
	}
}

// HandleGenerate handles POST /interviews/generate
func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	interview, err := h.generator.GenerateFromParameters(c.UserContext(), models.ParameterRequest{
		Role:          strings.TrimSpace(req.Role),
		Level:         strings.TrimSpace(req.Level),
		TechStack:     splitTechStack(req.TechStack),
		Focus:         models.Focus(strings.ToLower(strings.TrimSpace(req.Type))),
		QuestionCount: int(req.Amount),
		RequesterID:   strings.TrimSpace(req.UserID),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, interview)
}

// HandleGenerateFromResume handles POST /interviews/generate/resume. Type and
// size limits are enforced by the extractor.
func (h *GenerateHandler) HandleGenerateFromResume(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.FormValue("userid"))
	fileHeader, err := c.FormFile("file")
	if err != nil || userID == "" {
		return respondMessage(c, fiber.StatusBadRequest, "Missing userid or valid PDF file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	interview, err := h.generator.GenerateFromResume(c.UserContext(), models.ResumeRequest{
		Document:    data,
		MediaType:   detectMediaType(fileHeader.Header.Get(fiber.HeaderContentType), fileHeader.Filename),
		FileName:    fileHeader.Filename,
		RequesterID: userID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, interview)
}

func splitTechStack(raw string) []string {
	var stack []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			stack = append(stack, item)
		}
	}
	return stack
}

// detectMediaType trusts the part's declared type and falls back to the
// file extension when the client sent a generic one.
func detectMediaType(declared, fileName string) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != fiber.MIMEOctetStream {
		return mediaType
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return config.MediaTypePDF
	case ".docx":
		return config.MediaTypeDOCX
	}
	return declared
}
