package model

// Article data model. CommentIDs keeps creation order.
type Article struct {
	ID         int64   `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	URL        string  `json:"url" yaml:"url"`
	Username   string  `json:"username" yaml:"username"` // the author
	CommentIDs []int64 `json:"commentIds" yaml:"commentIds"`

	Votes `yaml:",inline"`
}

// NewArticle returns an article with empty comment and vote lists.
func NewArticle(id int64, title, url, username string) *Article {
	return &Article{
		ID:         id,
		Title:      title,
		URL:        url,
		Username:   username,
		CommentIDs: []int64{},
		Votes:      NewVotes(),
	}
}

// Clone returns a deep copy so callers can hand the article out without
// sharing its slices with the store.
func (a *Article) Clone() *Article {
	c := *a
	c.CommentIDs = append([]int64{}, a.CommentIDs...)
	c.Votes = a.Votes.Clone()

	return &c
}
