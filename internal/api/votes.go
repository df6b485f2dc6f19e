package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/payload"
	"github.com/SergeyParamoshkin/newsboard/internal/vote"
)

func (a *API) VoteArticle(w http.ResponseWriter, r *http.Request) {
	data, d, ok := bindVote(w, r)
	if !ok {
		return
	}

	article, err := a.content.VoteArticle(r.Context(), idFrom(r.Context()), data.Username, d)
	if err != nil {
		fail(w, r, err)

		return
	}

	respond(w, r, payload.NewArticleResponse(article))
}

func (a *API) VoteComment(w http.ResponseWriter, r *http.Request) {
	data, d, ok := bindVote(w, r)
	if !ok {
		return
	}

	comment, err := a.content.VoteComment(r.Context(), idFrom(r.Context()), data.Username, d)
	if err != nil {
		fail(w, r, err)

		return
	}

	respond(w, r, payload.NewCommentResponse(comment))
}

func bindVote(w http.ResponseWriter, r *http.Request) (*payload.UserRequest, vote.Direction, bool) {
	d, ok := vote.ParseDirection(chi.URLParam(r, "action"))
	if !ok {
		fail(w, r, errresponse.ErrUnroutable)

		return nil, 0, false
	}

	data := &payload.UserRequest{}
	if err := render.Bind(r, data); err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return nil, 0, false
	}

	return data, d, true
}

