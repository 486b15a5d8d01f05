package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
	"alfredoptarigan/interview-prep/internal/services"
)

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

func resumeURL(id uuid.UUID) string {
	return fmt.Sprintf("/api/v1/resumes/%s", id)
}

// HandleUpload handles POST /resumes. A user keeps a single résumé, the
// previous file is removed once the new row is stored.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.FormValue("userId"))
	fileHeader, err := c.FormFile("resume")
	if err != nil || userID == "" {
		return respondMessage(c, fiber.StatusBadRequest, "Missing userId or file")
	}

	if fileHeader.Size > h.maxFileSize {
		return respondMessage(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds %d bytes limit", h.maxFileSize))
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

	ctx := c.UserContext()
	fileType := detectMediaType(fileHeader.Header.Get(fiber.HeaderContentType), fileHeader.Filename)
	key := services.NewStorageKey("resume", fileHeader.Filename)

	if err := h.storageService.SaveFile(ctx, key, data, fileType); err != nil {
		log.Printf("❌ Failed to save résumé file for %s: %v", userID, err)
		return respondMessage(c, fiber.StatusInternalServerError, "failed to save résumé file")
	}

	resume := &models.Resume{
		ID:         uuid.New(),
		UserID:     userID,
		FileName:   fileHeader.Filename,
		FileType:   fileType,
		StorageKey: key,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}

	previous, err := h.resumeRepo.Replace(ctx, resume)
	if err != nil {
		// Cleanup uploaded file if database insert fails
		if delErr := h.storageService.DeleteFile(ctx, key); delErr != nil {
			log.Printf("⚠️ Failed to clean up %s: %v", key, delErr)
		}
		log.Printf("❌ Failed to save résumé record for %s: %v", userID, err)
		return respondMessage(c, fiber.StatusInternalServerError, "failed to save résumé record")
	}

	for _, old := range previous {
		if err := h.storageService.DeleteFile(ctx, old.StorageKey); err != nil {
			log.Printf("⚠️ Failed to delete replaced résumé file %s: %v", old.StorageKey, err)
		}
	}

	log.Printf("✅ Stored résumé %s for user %s (replaced %d)", resume.ID, userID, len(previous))
	return respondSuccess(c, fiber.StatusOK, models.ResumeUploadResponse{
		ID:      resume.ID.String(),
		FileURL: resumeURL(resume.ID),
	})
}

// HandleList handles GET /resumes
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.FindAll(c.UserContext())
	if err != nil {
		return respondRepoError(c, "Resumes not found", err)
	}

	items := make([]models.ResumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, models.ResumeListItem{
			ID:         r.ID.String(),
			UserID:     r.UserID,
			FileName:   r.FileName,
			FileType:   r.FileType,
			UploadedAt: r.UploadedAt.UTC().Format(time.RFC3339),
			FileURL:    resumeURL(r.ID),
		})
	}

	return respondSuccess(c, fiber.StatusOK, items)
}

// HandleDownload handles GET /resumes/:id?inline=true
func (h *ResumeHandler) HandleDownload(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "Invalid file ID format")
	}

	resume, err := h.resumeRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return respondRepoError(c, "File not found", err)
	}

	data, err := h.storageService.ReadFile(c.UserContext(), resume.StorageKey)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return respondMessage(c, fiber.StatusNotFound, "File not found")
		}
		log.Printf("❌ Failed to read résumé file %s: %v", resume.StorageKey, err)
		return respondMessage(c, fiber.StatusInternalServerError, "Failed to retrieve file")
	}

	fileName := resume.FileName
	if fileName == "" {
		fileName = "resume.pdf"
	}
	fileType := resume.FileType
	if fileType == "" {
		fileType = "application/pdf"
	}

	c.Set(fiber.HeaderContentType, fileType)
	if c.QueryBool("inline", false) {
		c.Set(fiber.HeaderContentDisposition, "inline")
	} else {
		c.Set(fiber.HeaderContentDisposition, attachmentDisposition(fileName))
	}

	return c.Status(fiber.StatusOK).Send(data)
}

// attachmentDisposition encodes non-ASCII names as an RFC 2231 filename*.
func attachmentDisposition(fileName string) string {
	if disposition := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); disposition != "" {
		return disposition
	}
	return "attachment"
}
