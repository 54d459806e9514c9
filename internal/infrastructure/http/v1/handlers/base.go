// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// HandleError registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler
// (single source of truth).
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
