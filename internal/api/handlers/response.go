package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/api/middleware"
	"github.com/rohit/cms-editorial/internal/auth"
	"github.com/rohit/cms-editorial/internal/domain/errors"
)

// ErrorBody is the JSON error envelope
type ErrorBody struct {
	Error *errors.AppError `json:"error"`
}

// respondError renders err with its status code. Internal details are not exposed.
func respondError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	c.Set(middleware.ErrorCodeKey, appErr.Code)
	if appErr.StatusCode >= http.StatusInternalServerError {
		appErr = errors.NewAppError(errors.ErrCodeInternalError, "internal error", http.StatusInternalServerError)
	}
	c.JSON(appErr.StatusCode, ErrorBody{Error: appErr})
}

func identity(c *gin.Context) *auth.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, errors.ErrInvalidRequest("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body into dst. An empty body is accepted when optional is set.
func bindJSON(c *gin.Context, dst interface{}, optional bool) bool {
	if optional && c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, errors.ErrInvalidRequest("invalid request body: "+err.Error()))
		return false
	}
	return true
}
