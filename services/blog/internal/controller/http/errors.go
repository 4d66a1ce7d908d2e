package http

import (
	"errors"
	"net/http"

	"blog-api/services/blog/internal/entity"

	"github.com/gin-gonic/gin"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{entity.ErrUserNotFound, http.StatusNotFound},
	{entity.ErrPostNotFound, http.StatusNotFound},
	{entity.ErrSelfLike, http.StatusForbidden},
	{entity.ErrUserNotConfirmed, http.StatusForbidden},
	{entity.ErrUserStatusRemoved, http.StatusBadRequest},
	{entity.ErrConflict, http.StatusConflict},
}

// translateError returns the response status and the stable message for err.
// Errors outside the domain taxonomy are internal errors.
func translateError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (h *BlogHandler) respondError(c *gin.Context, err error) {
	status, message := translateError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	} else {
		h.logger.Warn("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, ErrorResponse{Error: message})
}
