package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/pkg/router"
	"github.com/forumlab/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// Logger logs every finished request and feeds the duration histogram.
func Logger() router.CloserFunc {
	return func(ctx context.Context, statusCode int) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx))

		if statusCode >= 500 {
			xcontext.Logger(ctx).Errorf("%s | %s | %d | %v", req.Method, req.URL.Path, statusCode, elapsed)
		} else {
			xcontext.Logger(ctx).Infof("%s | %s | %d | %v", req.Method, req.URL.Path, statusCode, elapsed)
		}

		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(req.Method, fmt.Sprint(statusCode)).
			Observe(elapsed.Seconds())
	}
}
