package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunhub/backend/pkg/errorx"
	"github.com/volunhub/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. Returning a non-nil context
// replaces the request context for everything after it.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler with its final error (nil on success).
type CloserFunc func(ctx context.Context, err error)

type Router struct {
	mux gin.IRouter
	ctx context.Context

	befores []MiddlewareFunc
	afters  []CloserFunc
}

// New creates a router whose requests derive from the given base context. The
// base context should carry configs, logger, database, and token engine.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{mux: gin.New(), ctx: ctx}
}

// Branch clones the router so middlewares registered on the branch do not
// affect routes registered on the original.
func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		ctx:     r.ctx,
		befores: slices.Clone(r.befores),
		afters:  slices.Clone(r.afters),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return r.mux.(*gin.Engine)
}

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := slices.Clone(r.befores)
	afters := slices.Clone(r.afters)

	return func(ginCtx *gin.Context) {
		ctx := xcontext.WithHTTPRequest(r.ctx, ginCtx.Request)

		err := func() (err error) {
			// A panic in a handler must not take the server down.
			defer func() {
				if v := recover(); v != nil {
					xcontext.Logger(ctx).Errorf("Panic in handler: %v", v)
					err = errorx.New(errorx.Internal, "Internal server error")
				}
			}()

			var req Request
			var bindErr error
			switch method {
			case http.MethodGet:
				bindErr = ginCtx.ShouldBindQuery(&req)
			case http.MethodPost:
				bindErr = ginCtx.ShouldBindJSON(&req)
			}
			if bindErr != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", bindErr)
				return errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			for _, m := range befores {
				newCtx, err := m(ctx)
				if err != nil {
					return err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return err
			}

			ginCtx.JSON(http.StatusOK, newResponse(resp))
			return nil
		}()

		if err != nil {
			ginCtx.JSON(http.StatusOK, newErrorResponse(err))
		}

		for _, closer := range afters {
			closer(ctx, err)
		}
	}
}
