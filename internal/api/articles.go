package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/payload"
)

func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	respond(w, r, payload.NewArticleListResponse(a.content.Articles(r.Context())))
}

// CreateArticle stores the posted article and returns it back to the client
// as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &payload.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := a.content.CreateArticle(r.Context(), data.Draft())
	if err != nil {
		fail(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	respond(w, r, payload.NewArticleResponse(article))
}

// GetArticle returns the article with its comments inlined.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	d, err := a.content.Article(r.Context(), idFrom(r.Context()))
	if err != nil {
		fail(w, r, err)

		return
	}

	respond(w, r, payload.NewArticleDetailResponse(d))
}

// UpdateArticle overwrites the non-empty fields of the posted article.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	data := &payload.ArticleUpdateRequest{}
	if err := render.Bind(r, data); err != nil {
		fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := a.content.UpdateArticle(r.Context(), idFrom(r.Context()), data.Patch())
	if err != nil {
		fail(w, r, err)

		return
	}

	respond(w, r, payload.NewArticleResponse(article))
}

// DeleteArticle removes the article and its comments.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteArticle(r.Context(), idFrom(r.Context())); err != nil {
		fail(w, r, err)

		return
	}

	render.NoContent(w, r)
}
