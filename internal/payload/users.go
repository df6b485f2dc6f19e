package payload

import (
	"net/http"

	"github.com/SergeyParamoshkin/newsboard/internal/content"
	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// UserRequest is the body of POST /users and of every vote request.
type UserRequest struct {
	Username string `json:"username" validate:"required"`
}

func (u *UserRequest) Bind(r *http.Request) error {
	return validate.Struct(u)
}

type UserResponse struct {
	User *model.User `json:"user"`
}

func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{User: u}
}

func (u *UserResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// UserDetailResponse is a user with the articles and comments it wrote.
type UserDetailResponse struct {
	User         *model.User      `json:"user"`
	UserArticles []*model.Article `json:"userArticles"`
	UserComments []*model.Comment `json:"userComments"`
}

func NewUserDetailResponse(d *content.UserDetail) *UserDetailResponse {
	return &UserDetailResponse{
		User:         d.User,
		UserArticles: d.Articles,
		UserComments: d.Comments,
	}
}

func (u *UserDetailResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
