package payload

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/newsboard/internal/content"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// ArticleRequest is the body of POST /articles.
type ArticleRequest struct {
	Article *ArticleFields `json:"article" validate:"required"`
}

type ArticleFields struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Username string `json:"username" validate:"required"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	return validate.Struct(a)
}

func (a *ArticleRequest) Draft() content.ArticleDraft {
	return content.ArticleDraft{
		Title:    a.Article.Title,
		URL:      a.Article.URL,
		Username: a.Article.Username,
	}
}

// ArticleUpdateRequest is the body of PUT /articles/{id}. Every field is
// optional; an empty one leaves the saved value alone.
type ArticleUpdateRequest struct {
	Article *struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"article"`
}

func (a *ArticleUpdateRequest) Bind(r *http.Request) error {
	// a.Article is nil if no Article fields are sent in the request.
	if a.Article == nil {
		return errors.New("missing required article fields")
	}

	return nil
}

func (a *ArticleUpdateRequest) Patch() *content.ArticlePatch {
	return &content.ArticlePatch{Title: a.Article.Title, URL: a.Article.URL}
}

type ArticleResponse struct {
	Article *model.Article `json:"article"`
}

func NewArticleResponse(a *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: a}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleWithComments is an article with its comments inlined.
type ArticleWithComments struct {
	*model.Article

	Comments []*model.Comment `json:"comments"`
}

type ArticleDetailResponse struct {
	Article *ArticleWithComments `json:"article"`
}

func NewArticleDetailResponse(d *content.ArticleDetail) *ArticleDetailResponse {
	return &ArticleDetailResponse{
		Article: &ArticleWithComments{Article: d.Article, Comments: d.Comments},
	}
}

func (rd *ArticleDetailResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ArticleListResponse struct {
	Articles []*model.Article `json:"articles"`
}

func NewArticleListResponse(articles []*model.Article) *ArticleListResponse {
	if articles == nil {
		articles = []*model.Article{}
	}

	return &ArticleListResponse{Articles: articles}
}

func (rd *ArticleListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
