package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/newsboard/internal/content"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	m := content.NewManager()
	a := New(m, zap.NewNop().Sugar(), nil)

	return &testServer{t: t, handler: a.Router()}
}

// do sends body (marshalled to JSON unless nil) and returns the recorder.
func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

type userBody struct {
	User         model.User      `json:"user"`
	UserArticles []model.Article `json:"userArticles"`
	UserComments []model.Comment `json:"userComments"`
}

type articleBody struct {
	Article struct {
		model.Article
		Comments []model.Comment `json:"comments"`
	} `json:"article"`
}

type commentBody struct {
	Comment model.Comment `json:"comment"`
}

func TestScenarioCascadeDelete(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	var u userBody
	decode(t, w, &u)
	assert.Equal(t, "alice", u.User.Username)

	w = s.do(http.MethodPost, "/articles", map[string]interface{}{
		"article": map[string]string{"title": "T", "url": "u", "username": "alice"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var a articleBody
	decode(t, w, &a)
	assert.Equal(t, int64(1), a.Article.ID)

	w = s.do(http.MethodPost, "/comments", map[string]interface{}{
		"comment": map[string]interface{}{"body": "hi", "username": "alice", "articleId": 1},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var c commentBody
	decode(t, w, &c)
	assert.Equal(t, int64(1), c.Comment.ID)

	w = s.do(http.MethodDelete, "/articles/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())

	w = s.do(http.MethodPut, "/comments/1", map[string]interface{}{"comment": map[string]string{"body": "x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/users/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &u)
	assert.Empty(t, u.User.ArticleIDs)
	assert.Empty(t, u.User.CommentIDs)
	assert.Empty(t, u.UserArticles)
	assert.Empty(t, u.UserComments)
}

func TestRegisterTwiceReturnsSameUser(t *testing.T) {
	s := newTestServer(t)

	first := s.do(http.MethodPost, "/users", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := s.do(http.MethodPost, "/users", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	w := s.do(http.MethodPost, "/users", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingArticle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/articles/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, w.Body.Len())

	w = s.do(http.MethodGet, "/articles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteNotFoundAsymmetry(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodDelete, "/articles/5", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/comments/5", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/comments/abc", nil).Code)
}

func seedArticle(t *testing.T, s *testServer) {
	t.Helper()

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/users", map[string]string{"username": "alice"}).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/articles", map[string]interface{}{
		"article": map[string]string{"title": "T", "url": "u", "username": "alice"},
	}).Code)
}

func TestVoteByUnknownUser(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)

	w := s.do(http.MethodPut, "/articles/1/upvote", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/articles/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a articleBody
	decode(t, w, &a)
	assert.Empty(t, a.Article.UpvotedBy)
	assert.Empty(t, a.Article.DownvotedBy)
}

func TestVoteToggle(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/users", map[string]string{"username": "bob"}).Code)

	w := s.do(http.MethodPut, "/articles/1/upvote", map[string]string{"username": "bob"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/articles/1/downvote/", map[string]string{"username": "bob"})
	require.Equal(t, http.StatusOK, w.Code)
	var a articleBody
	decode(t, w, &a)
	assert.Empty(t, a.Article.UpvotedBy)
	assert.Equal(t, []string{"bob"}, a.Article.DownvotedBy)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/comments", map[string]interface{}{
		"comment": map[string]interface{}{"body": "hi", "username": "bob", "articleId": 1},
	}).Code)
	for i := 0; i < 2; i++ {
		w = s.do(http.MethodPut, "/comments/1/upvote", map[string]string{"username": "alice"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	var c commentBody
	decode(t, w, &c)
	assert.Equal(t, []string{"alice"}, c.Comment.UpvotedBy)
}

func TestUpdateArticle(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)

	w := s.do(http.MethodPut, "/articles/1", map[string]interface{}{"article": map[string]string{"title": ""}})
	require.Equal(t, http.StatusOK, w.Code)
	var a articleBody
	decode(t, w, &a)
	assert.Equal(t, "T", a.Article.Title)

	w = s.do(http.MethodPut, "/articles/1", map[string]interface{}{"article": map[string]string{"title": "New"}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &a)
	assert.Equal(t, "New", a.Article.Title)
	assert.Equal(t, "u", a.Article.URL)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/articles/1", map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/articles/9",
		map[string]interface{}{"article": map[string]string{"title": "x"}}).Code)
}

func TestGetArticleJoinsComments(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/comments", map[string]interface{}{
		"comment": map[string]interface{}{"body": "first", "username": "alice", "articleId": 1},
	}).Code)

	w := s.do(http.MethodGet, "/articles/1/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a articleBody
	decode(t, w, &a)
	require.Len(t, a.Article.Comments, 1)
	assert.Equal(t, "first", a.Article.Comments[0].Body)

	// the join is not stored on the article
	w = s.do(http.MethodGet, "/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"comments"`)
}

func TestListArticlesNewestFirst(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":[]}`, w.Body.String())

	seedArticle(t, s)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/articles", map[string]interface{}{
		"article": map[string]string{"title": "T2", "url": "u2", "username": "alice"},
	}).Code)

	w = s.do(http.MethodGet, "/articles?sort=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Articles []model.Article `json:"articles"`
	}
	decode(t, w, &list)
	require.Len(t, list.Articles, 2)
	assert.Equal(t, int64(2), list.Articles[0].ID)
}

func TestCreateValidation(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"article without wrapper", "/articles", map[string]string{"title": "T"}},
		{"article missing url", "/articles", map[string]interface{}{
			"article": map[string]string{"title": "T", "username": "alice"}}},
		{"article by unknown user", "/articles", map[string]interface{}{
			"article": map[string]string{"title": "T", "url": "u", "username": "eve"}}},
		{"comment missing body", "/comments", map[string]interface{}{
			"comment": map[string]interface{}{"username": "alice", "articleId": 1}}},
		{"comment on missing article", "/comments", map[string]interface{}{
			"comment": map[string]interface{}{"body": "b", "username": "alice", "articleId": 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, w.Body.Len())
		})
	}

	w := s.do(http.MethodGet, "/articles", nil)
	var list struct {
		Articles []model.Article `json:"articles"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Articles, 1, "rejected requests change nothing")
}

func TestUnroutable(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/widgets"},
		{http.MethodGet, "/widgets/1"},
		{http.MethodDelete, "/users"},
		{http.MethodPost, "/users/alice"},
		{http.MethodGet, "/comments/1"},
		{http.MethodGet, "/articles/1/upvote"},
		{http.MethodPut, "/users/alice/upvote"},
		{http.MethodOptions, "/articles"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := s.do(tt.method, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, w.Body.Len())
		})
	}
}

func TestLooseRouting(t *testing.T) {
	s := newTestServer(t)
	seedArticle(t, s)

	for _, path := range []string{"/articles/1", "//articles//1//", "/articles/1/comments"} {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, nil).Code, path)
	}

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/users/alice/articles", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/users/bob", nil).Code)
}

func TestEscapedUsername(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"a/b", "a b", "what?", "100%"} {
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/users", map[string]string{"username": name}).Code, name)

		w := s.do(http.MethodGet, "/users/"+url.PathEscape(name), nil)
		require.Equal(t, http.StatusOK, w.Code, name)

		var u userBody
		decode(t, w, &u)
		assert.Equal(t, name, u.User.Username)
	}

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/users/a/b", nil).Code)
}
