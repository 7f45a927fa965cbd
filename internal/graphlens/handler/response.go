// Package handler provides the HTTP handlers for the graphlens service.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/graphlens/pkg/errors"
)

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "ok", Data: data})
}

func writeError(c *gin.Context, err error) {
	e := errors.FromError(err)
	c.JSON(e.HTTPStatus(), ErrorResponse{Code: e.Code, Message: e.MessageEN})
}

// writeErrorWithData writes an error envelope that still carries a payload,
// for operations that partially succeeded.
func writeErrorWithData(c *gin.Context, e *errors.Errno, data interface{}) {
	c.JSON(e.HTTPStatus(), SuccessResponse{Code: e.Code, Message: e.MessageEN, Data: data})
}
