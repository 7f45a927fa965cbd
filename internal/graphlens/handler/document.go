package handler

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/graphlens/internal/graphlens/biz"
	"github.com/kart-io/graphlens/pkg/errors"
)

// DocumentHandler handles document ingestion and management requests.
type DocumentHandler struct {
	service *biz.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(service *biz.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// UploadRequest is the upload request body. FileContent is base64 encoded.
type UploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	FileContent string `json:"fileContent" binding:"required"`
	ContentType string `json:"contentType"`
}

// UploadResponse is the upload response payload.
type UploadResponse struct {
	StoragePath      string `json:"storagePath"`
	FileName         string `json:"fileName"`
	Size             int64  `json:"size"`
	Fingerprint      string `json:"fingerprint"`
	ChunksCreated    int    `json:"chunksCreated"`
	Status           string `json:"status"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
}

// Upload handles POST /upload?tenant_id=..&user_id=..
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ErrBadRequest.WithCause(err))
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		writeError(c, errors.ErrInvalidParam.WithMessage("fileContent is not valid base64"))
		return
	}

	res, err := h.service.Upload(c.Request.Context(), &biz.UploadRequest{
		TenantID:    c.Query("tenant_id"),
		UserID:      c.Query("user_id"),
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Content:     content,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, UploadResponse{
		StoragePath:      res.Record.StoragePath,
		FileName:         res.Record.FileName,
		Size:             res.Record.Size,
		Fingerprint:      res.Record.Fingerprint,
		ChunksCreated:    res.Record.ChunkCount,
		Status:           res.Record.Status,
		AlreadyProcessed: res.Deduplicated,
	})
}

// List handles GET /documents?user_id=..
func (h *DocumentHandler) List(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, gin.H{"documents": recs, "total": len(recs)})
}

// Delete handles DELETE /documents?user_id=..&storage_path=..
func (h *DocumentHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(),
		c.Query("tenant_id"),
		c.Query("user_id"),
		c.Query("storage_path"),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, nil)
}
