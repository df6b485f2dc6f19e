package model

// Comment data model.
type Comment struct {
	ID        int64  `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	Body      string `json:"body" yaml:"body"`
	ArticleID int64  `json:"articleId" yaml:"articleId"`

	Votes `yaml:",inline"`
}

func NewComment(id int64, body, username string, articleID int64) *Comment {
	return &Comment{
		ID:        id,
		Username:  username,
		Body:      body,
		ArticleID: articleID,
		Votes:     NewVotes(),
	}
}

func (c *Comment) Clone() *Comment {
	cp := *c
	cp.Votes = c.Votes.Clone()

	return &cp
}
