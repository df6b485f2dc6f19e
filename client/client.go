// Package client is a Go client for the newsboard REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// UserDetail is the body of GET /users/{username}.
type UserDetail struct {
	User         *model.User      `json:"user"`
	UserArticles []*model.Article `json:"userArticles"`
	UserComments []*model.Comment `json:"userComments"`
}

// ArticleDetail is an article with its comments, as returned by GetArticle.
type ArticleDetail struct {
	*model.Article

	Comments []*model.Comment `json:"comments"`
}

// Ping calls the diagnostics listener at addr.
func (c *Client) Ping(ctx context.Context, addr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// RegisterUser fetches or creates the user.
func (c *Client) RegisterUser(ctx context.Context, username string) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	err := c.call(ctx, http.MethodPost, "/users", map[string]string{"username": username}, &out)

	return out.User, err
}

func (c *Client) GetUser(ctx context.Context, username string) (*UserDetail, error) {
	out := &UserDetail{}
	if err := c.call(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]*model.Article, error) {
	var out struct {
		Articles []*model.Article `json:"articles"`
	}
	err := c.call(ctx, http.MethodGet, "/articles", nil, &out)

	return out.Articles, err
}

func (c *Client) CreateArticle(ctx context.Context, title, url, username string) (*model.Article, error) {
	in := map[string]interface{}{
		"article": map[string]string{"title": title, "url": url, "username": username},
	}

	return c.article(ctx, http.MethodPost, "/articles", in)
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*ArticleDetail, error) {
	var out struct {
		Article *ArticleDetail `json:"article"`
	}
	if err := c.call(ctx, http.MethodGet, articlePath(id), nil, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

// UpdateArticle sends a partial update; empty strings leave fields unchanged.
func (c *Client) UpdateArticle(ctx context.Context, id int64, title, url string) (*model.Article, error) {
	in := map[string]interface{}{
		"article": map[string]string{"title": title, "url": url},
	}

	return c.article(ctx, http.MethodPut, articlePath(id), in)
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, articlePath(id), nil, nil)
}

// VoteArticle casts username's vote; action is "upvote" or "downvote".
func (c *Client) VoteArticle(ctx context.Context, id int64, username, action string) (*model.Article, error) {
	return c.article(ctx, http.MethodPut, articlePath(id)+"/"+action, map[string]string{"username": username})
}

func (c *Client) CreateComment(ctx context.Context, body, username string, articleID int64) (*model.Comment, error) {
	in := map[string]interface{}{
		"comment": map[string]interface{}{"body": body, "username": username, "articleId": articleID},
	}

	return c.comment(ctx, http.MethodPost, "/comments", in)
}

func (c *Client) UpdateComment(ctx context.Context, id int64, body string) (*model.Comment, error) {
	in := map[string]interface{}{
		"comment": map[string]string{"body": body},
	}

	return c.comment(ctx, http.MethodPut, commentPath(id), in)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, commentPath(id), nil, nil)
}

func (c *Client) VoteComment(ctx context.Context, id int64, username, action string) (*model.Comment, error) {
	return c.comment(ctx, http.MethodPut, commentPath(id)+"/"+action, map[string]string{"username": username})
}

func (c *Client) article(ctx context.Context, method, path string, in interface{}) (*model.Article, error) {
	var out struct {
		Article *model.Article `json:"article"`
	}
	if err := c.call(ctx, method, path, in, &out); err != nil {
		return nil, err
	}

	return out.Article, nil
}

func (c *Client) comment(ctx context.Context, method, path string, in interface{}) (*model.Comment, error) {
	var out struct {
		Comment *model.Comment `json:"comment"`
	}
	if err := c.call(ctx, method, path, in, &out); err != nil {
		return nil, err
	}

	return out.Comment, nil
}

// call sends in as JSON and decodes the response into out. Either may be nil.
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}

func commentPath(id int64) string {
	return "/comments/" + strconv.FormatInt(id, 10)
}
