package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/graphlens/internal/graphlens/biz"
	"github.com/kart-io/graphlens/pkg/errors"
)

// QueryHandler handles comparison query requests.
type QueryHandler struct {
	service *biz.QueryService
	reset   *biz.ResetService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(service *biz.QueryService, reset *biz.ResetService) *QueryHandler {
	return &QueryHandler{service: service, reset: reset}
}

// QueryRequest is the comparison query request body.
type QueryRequest struct {
	Query    string `json:"query" binding:"required"`
	TenantID string `json:"tenant_id"`
}

// Query handles POST /query. The result carries both retrieval branches
// side by side.
func (h *QueryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ErrBadRequest.WithCause(err))
		return
	}

	res, err := h.service.Query(c.Request.Context(), req.TenantID, req.Query)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, res)
}

// ResetResponse is the reset response payload.
type ResetResponse struct {
	TenantID         string `json:"tenantId"`
	DocumentsRemoved int64  `json:"documentsRemoved"`
	Partial          bool   `json:"partial"`
}

// Reset handles POST /reset-graph?tenant_id=..&user_id=..
func (h *QueryHandler) Reset(c *gin.Context) {
	tenantID := c.Query("tenant_id")

	res, err := h.reset.Reset(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := ResetResponse{
		TenantID:         tenantID,
		DocumentsRemoved: res.DocumentsRemoved,
		Partial:          res.Partial,
	}
	if res.Partial {
		// Indexes are gone but registry cleanup is still pending in the
		// background; the caller must not treat the reset as complete.
		writeErrorWithData(c, errors.ErrPartialReset, resp)
		return
	}
	writeSuccess(c, resp)
}
