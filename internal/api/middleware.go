package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/newsboard/internal/route"
)

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
	CtxKeyRoute
	CtxKeyID
)

// Logger puts a request-scoped logger on the context.
func (a *API) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := a.logger.With("requestId", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, logger)))
	})
}

// LoggerFrom returns the request logger, or a no-op logger outside a request.
func LoggerFrom(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(CtxKeyLogger).(*zap.SugaredLogger); ok {
		return logger
	}

	return zap.NewNop().Sugar()
}

// Metrics records every completed request under its matched chi pattern.
func (a *API) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		pattern := "unroutable"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		a.metrics.ObserveRequest(r.Context(), pattern, r.Method, ww.Status(), time.Since(start))
	})
}

// Classify rewrites the routing path to the canonical path of its route, so
// "/articles/1/", "//articles/1" and "/articles/1/anything" all reach the
// /articles/{id} handlers. Paths without segments route nowhere.
// Classification runs on the escaped path, so an encoded "/" stays inside
// its segment and URL parameters reach handlers still escaped.
func Classify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt, _ := route.Classify(r.URL.EscapedPath())

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rctx.RoutePath = rt.Path()
		}

		ctx := context.WithValue(r.Context(), CtxKeyRoute, rt)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RouteFrom returns the classified route of the request.
func RouteFrom(ctx context.Context) (route.Route, bool) {
	rt, ok := ctx.Value(CtxKeyRoute).(route.Route)

	return rt, ok
}

// IDCtx parses the {id} URL parameter. A value that is not an integer is
// stored as 0, which every operation treats as an id that cannot exist.
func IDCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			id = 0
		}

		ctx := context.WithValue(r.Context(), CtxKeyID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func idFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(CtxKeyID).(int64)

	return id
}
