package response

import (
	"isml_backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is a plain acknowledgement returned by write endpoints.
type SuccessResponse struct {
	Message string `json:"message" example:"Batch deleted successfully"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Human readable message
	// example: Invalid course ID
	Error string `json:"error"`

	// Machine readable code
	// example: INVALID_COURSE
	Code string `json:"code,omitempty"`

	// Lower-level message, when there is one
	// example: pq: duplicate key value violates unique constraint
	Details string `json:"details,omitempty"`
}

// Fail writes err as an ErrorResponse with the status its kind maps to.
func Fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	appErr, ok := apperr.As(err)
	if !ok {
		c.AbortWithStatusJSON(status, ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details(),
	})
}

// Invalid reports a request binding failure.
func Invalid(c *gin.Context, message string, err error) {
	body := ErrorResponse{Error: message, Code: apperr.ErrValidation.Code}
	if err != nil {
		body.Details = err.Error()
	}
	c.AbortWithStatusJSON(apperr.Status(apperr.ErrValidation), body)
}
