// Package api exposes the content manager over JSON/HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/newsboard/internal/content"
	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/telemetry"
)

type API struct {
	content *content.Manager
	logger  *zap.SugaredLogger
	metrics *telemetry.Metrics
}

// New returns an API serving m. metrics may be nil.
func New(m *content.Manager, logger *zap.SugaredLogger, metrics *telemetry.Metrics) *API {
	return &API{
		content: m,
		logger:  logger,
		metrics: metrics,
	}
}

// Router builds the route table. Paths are classified and rewritten to their
// canonical form before chi matches them, and every (path, method) pair
// without a handler is answered with 400 and an empty body.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(a.Metrics)
	r.Use(Classify)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(unroutable)
	r.MethodNotAllowed(unroutable)

	r.Post("/users", a.RegisterUser)
	r.Get("/users/{username}", a.GetUser)

	r.Get("/articles", a.ListArticles)
	r.Post("/articles", a.CreateArticle)
	r.Post("/comments", a.CreateComment)

	// id-parameterized routes; a non-numeric id reaches the handler as 0
	r.Group(func(r chi.Router) {
		r.Use(IDCtx)

		r.Get("/articles/{id}", a.GetArticle)
		r.Put("/articles/{id}", a.UpdateArticle)
		r.Delete("/articles/{id}", a.DeleteArticle)
		r.Put("/articles/{id}/{action:^(upvote|downvote)$}", a.VoteArticle)

		r.Put("/comments/{id}", a.UpdateComment)
		r.Delete("/comments/{id}", a.DeleteComment)
		r.Put("/comments/{id}/{action:^(upvote|downvote)$}", a.VoteComment)
	})

	return r
}

func unroutable(w http.ResponseWriter, r *http.Request) {
	fail(w, r, errresponse.ErrUnroutable)
}

// fail logs err with the request logger and answers with its status.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := errresponse.FromError(err)
	rt, _ := RouteFrom(r.Context())
	LoggerFrom(r.Context()).Infow("request failed",
		"route", rt.Key(),
		"method", r.Method,
		"status", resp.HTTPStatusCode,
		"error", resp.Error(),
	)
	resp.Respond(w, r)
}

func respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		LoggerFrom(r.Context()).Errorw("render response", "error", err)
	}
}
