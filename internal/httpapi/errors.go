package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

const (
	codeInternal = "INTERNAL_ERROR"
	codeTimeout  = "TIMEOUT"
	codeNotFound = "NOT_FOUND"
)

// statusFor maps an error to its HTTP status and response code.
func statusFor(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, codeTimeout
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, codeInternal
	}

	switch de.Kind {
	case domain.KindInvalidInput, domain.KindInvalidURL:
		if de.Reason == domain.ReasonTooLarge {
			return http.StatusRequestEntityTooLarge, string(de.Kind)
		}
		return http.StatusBadRequest, string(de.Kind)
	case domain.KindAccessBlocked:
		return http.StatusForbidden, string(de.Kind)
	case domain.KindConversion:
		return http.StatusUnprocessableEntity, string(de.Kind)
	case domain.KindProvider:
		if de.Reason == domain.ReasonRateLimited {
			return http.StatusServiceUnavailable, string(de.Kind)
		}
		return http.StatusBadGateway, string(de.Kind)
	default:
		return http.StatusInternalServerError, string(de.Kind)
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := domain.UserMessage(err)
	if code == codeTimeout {
		msg = "processing took too long and was cancelled"
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "Request failed: %v", err)
	} else {
		s.logger.Warn(c.Request.Context(), "Request rejected: %v", err)
	}
	c.JSON(status, errorResponse{Success: false, Error: msg, Code: code})
}
