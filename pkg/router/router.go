package router

import (
	"context"
	"net/http"

	"github.com/forumlab/backend/config"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/pkg/logger"
	"github.com/forumlab/backend/pkg/token"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of every endpoint handler. The router binds
// the request object, builds the context, and renders the response envelope.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context; a
// returned error aborts the request with an error envelope.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written.
type CloserFunc func(ctx context.Context, statusCode int)

type Router struct {
	Inner gin.IRouter

	engine  *gin.Engine
	cfg     config.Configs
	logger  logger.Logger
	db      *gorm.DB
	node    *snowflake.Node
	tokens  token.Engine[model.AccessToken]
	befores []MiddlewareFunc
	afters  []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	node, err := snowflake.NewNode(cfg.Chat.SnowflakeNodeID)
	if err != nil {
		panic(err)
	}

	return &Router{
		Inner:  engine,
		engine: engine,
		cfg:    cfg,
		logger: l,
		db:     db,
		node:   node,
		tokens: token.NewEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.TokenExpiration),
	}
}

// Branch creates a router sharing the base wiring but with its own
// middleware chain.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]CloserFunc{}, r.afters...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.Inner.Static(relativePath, root)
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.Inner.GET(pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.PUT(pattern, wrapHandler(r, http.MethodPut, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.DELETE(pattern, wrapHandler(r, http.MethodDelete, handler))
}

// baseContext attaches the request-scoped values every handler relies on.
func (r *Router) baseContext(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithSnowFlake(ctx, r.node)
	ctx = xcontext.WithTokenEngine(ctx, r.tokens)
	ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
	return ctx
}
