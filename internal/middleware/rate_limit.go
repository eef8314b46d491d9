package middleware

import (
	"context"
	"net"
	"sync"

	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/router"
	"github.com/forumlab/backend/pkg/xcontext"

	"golang.org/x/time/rate"
)

type rateLimiter struct {
	mutex    sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter throttles requests per client IP with a token bucket of
// perMinute refills and the given burst.
func NewRateLimiter(perMinute, burst int) router.MiddlewareFunc {
	l := &rateLimiter{
		limiters: map[string]*rate.Limiter{},
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}

	return func(ctx context.Context) (context.Context, error) {
		ip, _, err := net.SplitHostPort(xcontext.HTTPRequest(ctx).RemoteAddr)
		if err != nil {
			ip = xcontext.HTTPRequest(ctx).RemoteAddr
		}

		if !l.limiter(ip).Allow() {
			return nil, errorx.New(errorx.TooManyRequests, "Too many requests")
		}

		return ctx, nil
	}
}

func (l *rateLimiter) limiter(ip string) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}

	return limiter
}
