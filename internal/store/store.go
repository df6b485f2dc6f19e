// Package store holds the three entity collections and their id counters.
//
// The store performs no validation. Callers are responsible for keeping
// back-references consistent; see package content.
package store

import (
	"sort"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// Store is the in-memory entity store. It is not safe for concurrent use.
type Store struct {
	users    map[string]*model.User
	articles map[int64]*model.Article
	comments map[int64]*model.Comment

	nextArticleID int64
	nextCommentID int64
}

func New() *Store {
	return &Store{
		users:         make(map[string]*model.User),
		articles:      make(map[int64]*model.Article),
		comments:      make(map[int64]*model.Comment),
		nextArticleID: 1,
		nextCommentID: 1,
	}
}

func (s *Store) User(username string) (*model.User, bool) {
	u, ok := s.users[username]

	return u, ok
}

func (s *Store) SetUser(u *model.User) {
	s.users[u.Username] = u
}

func (s *Store) Article(id int64) (*model.Article, bool) {
	a, ok := s.articles[id]

	return a, ok
}

func (s *Store) SetArticle(a *model.Article) {
	s.articles[a.ID] = a
}

// DeleteArticle removes the slot entirely so later lookups report not found.
func (s *Store) DeleteArticle(id int64) {
	delete(s.articles, id)
}

// Articles returns every live article ordered by id descending.
func (s *Store) Articles() []*model.Article {
	list := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		list = append(list, a)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })

	return list
}

func (s *Store) Comment(id int64) (*model.Comment, bool) {
	c, ok := s.comments[id]

	return c, ok
}

func (s *Store) SetComment(c *model.Comment) {
	s.comments[c.ID] = c
}

func (s *Store) DeleteComment(id int64) {
	delete(s.comments, id)
}

// NextArticleID returns the next article id and advances the counter.
func (s *Store) NextArticleID() int64 {
	id := s.nextArticleID
	s.nextArticleID++

	return id
}

// NextCommentID returns the next comment id and advances the counter.
func (s *Store) NextCommentID() int64 {
	id := s.nextCommentID
	s.nextCommentID++

	return id
}

// Counters reports the ids the next creations will receive.
func (s *Store) Counters() (article, comment int64) {
	return s.nextArticleID, s.nextCommentID
}
