package payload

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/newsboard/internal/content"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// CommentRequest is the body of POST /comments.
type CommentRequest struct {
	Comment *CommentFields `json:"comment" validate:"required"`
}

type CommentFields struct {
	Body      string `json:"body" validate:"required"`
	Username  string `json:"username" validate:"required"`
	ArticleID int64  `json:"articleId" validate:"required"`
}

func (c *CommentRequest) Bind(r *http.Request) error {
	return validate.Struct(c)
}

func (c *CommentRequest) Draft() content.CommentDraft {
	return content.CommentDraft{
		Body:      c.Comment.Body,
		Username:  c.Comment.Username,
		ArticleID: c.Comment.ArticleID,
	}
}

// CommentUpdateRequest is the body of PUT /comments/{id}.
type CommentUpdateRequest struct {
	Comment *struct {
		Body string `json:"body"`
	} `json:"comment"`
}

func (c *CommentUpdateRequest) Bind(r *http.Request) error {
	if c.Comment == nil {
		return errors.New("missing required comment fields")
	}

	return nil
}

func (c *CommentUpdateRequest) Patch() *content.CommentPatch {
	return &content.CommentPatch{Body: c.Comment.Body}
}

type CommentResponse struct {
	Comment *model.Comment `json:"comment"`
}

func NewCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{Comment: c}
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
