// util/http_util.go
package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "requestID"

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("requestId", GetRequestIDFromContext(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// RespondWithServiceError maps a data service error to a status code. Messages
// of configuration and retrieval errors are meant for the user; their causes are only logged.
func RespondWithServiceError(c *gin.Context, err error) {
	var appErr *listpane_errors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case listpane_errors.KindConfiguration:
			RespondWithError(c, http.StatusBadRequest, appErr.Message, err)
			return
		case listpane_errors.KindRetrieval:
			RespondWithError(c, http.StatusBadGateway, appErr.Message, err)
			return
		}
	}
	RespondWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("%w: %w", listpane_errors.ErrInternalServer, err))
}

func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
