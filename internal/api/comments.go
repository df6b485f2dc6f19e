package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/payload"
)

func (a *API) CreateComment(w http.ResponseWriter, r *http.Request) {
	data := &payload.CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	comment, err := a.content.CreateComment(r.Context(), data.Draft())
	if err != nil {
		fail(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	respond(w, r, payload.NewCommentResponse(comment))
}

func (a *API) UpdateComment(w http.ResponseWriter, r *http.Request) {
	data := &payload.CommentUpdateRequest{}
	if err := render.Bind(r, data); err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	comment, err := a.content.UpdateComment(r.Context(), idFrom(r.Context()), data.Patch())
	if err != nil {
		fail(w, r, err)

		return
	}

	respond(w, r, payload.NewCommentResponse(comment))
}

func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteComment(r.Context(), idFrom(r.Context())); err != nil {
		fail(w, r, err)

		return
	}

	render.NoContent(w, r)
}
