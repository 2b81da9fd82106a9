package handler

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/application/service"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/response"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

// FileHandler handles object store HTTP requests
type FileHandler struct {
	storageService *service.StorageService
}

// NewFileHandler creates a new file handler
func NewFileHandler(storageService *service.StorageService) *FileHandler {
	return &FileHandler{storageService: storageService}
}

// Upload handles a multipart file upload into a bucket
// @Summary Upload File
// @Description Upload a file into a named bucket
// @Tags files
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param bucket formData string true "Bucket name"
// @Param file formData file true "File to upload"
// @Success 201 {object} response.APIResponse
// @Router /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	bucket := c.PostForm("bucket")
	if bucket == "" {
		response.BadRequest(c, "Bucket is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read upload")
		return
	}
	defer src.Close()

	file, err := h.storageService.Upload(c.Request.Context(), &service.UploadInput{
		Bucket:      bucket,
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      src,
		UploadedBy:  *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "File uploaded successfully", gin.H{
		"file": file,
		"ref":  file.Ref(),
	})
}

// Download streams a stored object back to the client
// @Summary Download File
// @Description Download a stored file by ID
// @Tags files
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {file} binary
// @Router /files/{id} [get]
func (h *FileHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid file ID")
		return
	}

	file, reader, err := h.storageService.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer reader.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("Content-Type", contentType)
	c.Status(200)
	_, _ = io.Copy(c.Writer, reader)
}

// List handles listing the contents of a bucket
// @Summary List Files
// @Description List all files in a bucket
// @Tags files
// @Security BearerAuth
// @Produce json
// @Param bucket query string true "Bucket name"
// @Success 200 {object} response.APIResponse
// @Router /files [get]
func (h *FileHandler) List(c *gin.Context) {
	bucket := c.Query("bucket")
	if bucket == "" {
		response.BadRequest(c, "Bucket is required")
		return
	}

	files, err := h.storageService.ListBucket(c.Request.Context(), bucket)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Files retrieved successfully", gin.H{
		"files": files,
	})
}

// Delete removes a stored object
// @Summary Delete File
// @Description Delete a stored file by ID
// @Tags files
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 204
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid file ID")
		return
	}

	if err := h.storageService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
