package router

import (
	"context"
	"net/http"

	"github.com/forumlab/backend/pkg/errorx"

	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := r.baseContext(ginCtx)

		for _, before := range r.befores {
			var err error
			if ctx, err = before(ctx); err != nil {
				writeResponse(ginCtx, newErrorEnvelope(err))
				runClosers(r, ctx, ginCtx)
				return
			}
		}

		var req Request
		if len(ginCtx.Params) > 0 {
			if err := ginCtx.ShouldBindUri(&req); err != nil {
				writeResponse(ginCtx, newErrorEnvelope(badBindError(err)))
				runClosers(r, ctx, ginCtx)
				return
			}
		}

		var err error
		switch method {
		case http.MethodGet, http.MethodDelete:
			err = ginCtx.ShouldBindQuery(&req)
		default:
			if ginCtx.Request.ContentLength > 0 {
				err = ginCtx.ShouldBindJSON(&req)
			}
		}
		if err != nil {
			writeResponse(ginCtx, newErrorEnvelope(badBindError(err)))
			runClosers(r, ctx, ginCtx)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeResponse(ginCtx, newErrorEnvelope(err))
		} else {
			writeResponse(ginCtx, newEnvelope(resp))
		}

		runClosers(r, ctx, ginCtx)
	}
}

func badBindError(err error) error {
	return errorx.New(errorx.BadRequest, "Cannot bind the request: %v", err)
}

func runClosers(r *Router, ctx context.Context, ginCtx *gin.Context) {
	for _, after := range r.afters {
		after(ctx, ginCtx.Writer.Status())
	}
}
