package handlers

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

// ImageField is the multipart field carrying the photo.
const ImageField = "image"

// ImageUploader stores an employee photo and returns its path.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// ImageHandler accepts employee photo uploads.
type ImageHandler struct {
	uploader ImageUploader
}

// NewImageHandler constructs handler.
func NewImageHandler(uploader ImageUploader) *ImageHandler {
	return &ImageHandler{uploader: uploader}
}

// Upload POST /console/employees/image.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	if _, err := currentSession(c); err != nil {
		return err
	}
	header, err := c.FormFile(ImageField)
	if err != nil {
		return apperrors.NewValidationError("image file required", map[string]any{"field": ImageField})
	}
	file, err := header.Open()
	if err != nil {
		return apperrors.NewValidationError("could not read image", nil)
	}
	defer file.Close()

	path, err := h.uploader.Upload(c.UserContext(), file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"imageUrl": path}})
}
