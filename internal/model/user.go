package model

// User data model. Username is the primary key and never changes.
type User struct {
	Username   string  `json:"username" yaml:"username"`
	ArticleIDs []int64 `json:"articleIds" yaml:"articleIds"`
	CommentIDs []int64 `json:"commentIds" yaml:"commentIds"`
}

func NewUser(username string) *User {
	return &User{
		Username:   username,
		ArticleIDs: []int64{},
		CommentIDs: []int64{},
	}
}

func (u *User) Clone() *User {
	return &User{
		Username:   u.Username,
		ArticleIDs: append([]int64{}, u.ArticleIDs...),
		CommentIDs: append([]int64{}, u.CommentIDs...),
	}
}
