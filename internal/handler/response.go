package handler

import (
	"errors"
	"log"
	"net/http"

	"taskboard/internal/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string                `json:"message"`
	Type    string                `json:"type"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// respondError writes err as an error envelope. Internal failures are logged
// and reported with a generic message.
func respondError(c *gin.Context, err error) {
	status, kind := apperror.Status(err)
	body := &ErrorBody{Message: err.Error(), Type: kind}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Details = appErr.Details
	}

	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		body.Message = "Internal server error"
		body.Details = nil
	}

	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: body})
}

// NotFound answers requests that match no route.
func NotFound(c *gin.Context) {
	respondError(c, apperror.NotFound("Not found"))
}
