package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"union-site-backend/internal/gateway"
	"union-site-backend/pkg/logger"
	"union-site-backend/pkg/utils"
)

var allowedUploadExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

type UploadHandler struct {
	storage gateway.StorageGateway
	maxSize int64
}

func NewUploadHandler(storage gateway.StorageGateway, maxSize int64) *UploadHandler {
	return &UploadHandler{storage: storage, maxSize: maxSize}
}

// Upload stores one file and returns its public URL. Files land under a
// per-day prefix with a slugged, collision-proof name.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if file.Size > h.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the upload size limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedUploadExts[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxSize+1))
	if err != nil || int64(len(data)) > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	base := utils.GenerateSlug(strings.TrimSuffix(filepath.Base(file.Filename), ext))
	if base == "" {
		base = "file"
	}
	path := fmt.Sprintf("%s/%s-%s%s", time.Now().UTC().Format("2006/01"), base, uuid.NewString()[:8], ext)

	url, err := h.storage.Upload(c.Request.Context(), "", path, data, contentType)
	if err != nil {
		logger.Error(err, "Upload failed", map[string]interface{}{"path": path})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url, "path": path})
}

// Delete removes a previously uploaded object.
func (h *UploadHandler) Delete(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), "", req.Path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Object deleted"})
}

// Rename moves an object to a new path.
func (h *UploadHandler) Rename(c *gin.Context) {
	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.storage.Move(c.Request.Context(), "", req.From, req.To); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rename failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Object renamed"})
}
