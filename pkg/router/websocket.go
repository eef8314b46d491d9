package router

import (
	"context"
	"net/http"

	"github.com/forumlab/backend/pkg/ws"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebsocketFunc serves a single websocket session. It returns when the
// session is over; the connection is closed by the router.
type WebsocketFunc[Request any] func(ctx context.Context, req *Request) error

// Websocket registers a websocket endpoint. Middlewares run before the
// upgrade, so an unauthenticated request is rejected with a plain envelope.
func Websocket[Request any](r *Router, pattern string, handler WebsocketFunc[Request]) {
	r.Inner.GET(pattern, func(ginCtx *gin.Context) {
		ctx := r.baseContext(ginCtx)

		for _, before := range r.befores {
			var err error
			if ctx, err = before(ctx); err != nil {
				writeResponse(ginCtx, newErrorEnvelope(err))
				return
			}
		}

		var req Request
		if err := ginCtx.ShouldBindQuery(&req); err != nil {
			writeResponse(ginCtx, newErrorEnvelope(badBindError(err)))
			return
		}

		conn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot upgrade the connection: %v", err)
			return
		}

		client := ws.NewClient(conn)
		defer client.Close()

		ctx = xcontext.WithWSClient(ctx, client)
		if err := handler(ctx, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Websocket session ended with error: %v", err)
		}
	})
}
