package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape. Successful responses carry the
// payload in Data; failures omit it.
type Envelope struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newEnvelope(data any) Envelope {
	return Envelope{
		Status:    http.StatusOK,
		Message:   "Success",
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func newErrorEnvelope(err error) Envelope {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	return Envelope{
		Status:    errx.Code.HTTPStatus(),
		Message:   errx.Message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func writeResponse(ginCtx *gin.Context, resp Envelope) {
	common.PromCounters[common.HTTPRequestTotal].
		WithLabelValues(ginCtx.Request.Method, http.StatusText(resp.Status)).Inc()

	ginCtx.JSON(resp.Status, resp)
}
