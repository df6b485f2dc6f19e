package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/payload"
)

// RegisterUser returns the posted user, creating it first when it does not
// exist yet (201) and echoing it otherwise (200).
func (a *API) RegisterUser(w http.ResponseWriter, r *http.Request) {
	data := &payload.UserRequest{}
	if err := render.Bind(r, data); err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	u, created, err := a.content.RegisterUser(r.Context(), data.Username)
	if err != nil {
		fail(w, r, err)

		return
	}

	if created {
		render.Status(r, http.StatusCreated)
	}
	respond(w, r, payload.NewUserResponse(u))
}

// GetUser returns the user with the articles and comments it wrote.
func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	username, err := url.PathUnescape(chi.URLParam(r, "username"))
	if err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	d, err := a.content.User(r.Context(), username)
	if err != nil {
		fail(w, r, err)

		return
	}

	respond(w, r, payload.NewUserDetailResponse(d))
}
