package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
	"alfredoptarigan/interview-prep/internal/services"
)

func respondSuccess(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(models.APIResponse{
		Success: true,
		Data:    data,
	})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondError renders a service error. Model output is echoed back only
// for the two kinds caused by it.
func respondError(c *fiber.Ctx, err error) error {
	var pe *services.PipelineError
	if !errors.As(err, &pe) {
		log.Printf("❌ Unclassified error on %s %s: %v", c.Method(), c.Path(), err)
		return respondMessage(c, fiber.StatusInternalServerError, "internal server error")
	}

	resp := models.APIResponse{
		Success: false,
		Error:   pe.Message,
	}
	switch pe.Kind {
	case services.KindMalformedGenerationOutput, services.KindSchemaViolation:
		resp.RawResponse = pe.RawResponse
	}

	return c.Status(statusForKind(pe.Kind)).JSON(resp)
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidInput:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondRepoError is for handlers that read straight from a repository.
func respondRepoError(c *fiber.Ctx, notFound string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return respondMessage(c, fiber.StatusNotFound, notFound)
	}
	log.Printf("❌ Storage error on %s %s: %v", c.Method(), c.Path(), err)
	return respondMessage(c, fiber.StatusInternalServerError, "storage error")
}

// ErrorHandler is the app-wide fiber error handler. A body rejected by the
// server's size limit on a generation route is an oversized document, so it
// gets the same 400 the extractor returns.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code == fiber.StatusRequestEntityTooLarge && strings.Contains(c.Path(), "/interviews/generate") {
		return respondError(c, &services.PipelineError{
			Kind:    services.KindInvalidInput,
			Message: "document exceeds the upload size limit",
			Cause:   err,
		})
	}

	return c.Status(code).JSON(models.APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}
