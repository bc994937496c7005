package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/secondhandshop/backend/internal/application/catalog"
)

// ImageProcessingHandler previews background removal for admins
type ImageProcessingHandler struct {
	BaseHandler
	images BackgroundPreviewer
}

// NewImageProcessingHandler creates an ImageProcessingHandler
func NewImageProcessingHandler(images BackgroundPreviewer) *ImageProcessingHandler {
	return &ImageProcessingHandler{images: images}
}

// Preview godoc
// @Summary      Remove background preview
// @Description  Returns the uploaded image as a PNG with its background removed
// @Tags         admin-images
// @Accept       multipart/form-data
// @Produce      png
// @Param        file formData file true "Image (JPEG, PNG or WEBP, up to 10 MB)"
// @Success      200 {file} file
// @Failure      400 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      502 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/images/remove-background-preview [post]
func (h *ImageProcessingHandler) Preview(c *gin.Context) {
	input, err := h.readUpload(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.images.RemoveBackgroundPreview(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName}))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// readUpload reads the "file" form field. A missing file gives an empty
// input so the service reports it like any other invalid upload.
func (h *ImageProcessingHandler) readUpload(c *gin.Context) (catalogapp.PreviewInput, error) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return catalogapp.PreviewInput{}, err
		}
		return catalogapp.PreviewInput{}, nil
	}

	input := catalogapp.PreviewInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	// Oversized files are rejected by the service from Size alone.
	if header.Size > h.images.MaxFileSize() {
		return input, nil
	}

	f, err := header.Open()
	if err != nil {
		return input, err
	}
	defer f.Close()

	input.Content, err = io.ReadAll(io.LimitReader(f, h.images.MaxFileSize()+1))
	return input, err
}
