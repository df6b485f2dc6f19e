package store

import "github.com/SergeyParamoshkin/newsboard/internal/model"

// Snapshot is a point-in-time copy of the three collections keyed by their
// natural identifiers.
type Snapshot struct {
	Users    map[string]*model.User
	Articles map[int64]*model.Article
	Comments map[int64]*model.Comment
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Users:    make(map[string]*model.User),
		Articles: make(map[int64]*model.Article),
		Comments: make(map[int64]*model.Comment),
	}
}

// Snapshot deep-copies the current contents of the store.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Users:    make(map[string]*model.User, len(s.users)),
		Articles: make(map[int64]*model.Article, len(s.articles)),
		Comments: make(map[int64]*model.Comment, len(s.comments)),
	}

	for k, u := range s.users {
		snap.Users[k] = u.Clone()
	}
	for k, a := range s.articles {
		snap.Articles[k] = a.Clone()
	}
	for k, c := range s.comments {
		snap.Comments[k] = c.Clone()
	}

	return snap
}

// Restore merges snap into the store. Counters move to at least one past the
// largest id restored and never move backwards. Nil entries are skipped and
// nil lists are replaced by empty ones.
func (s *Store) Restore(snap Snapshot) {
	for _, u := range snap.Users {
		if u == nil || u.Username == "" {
			continue
		}
		u = u.Clone()
		s.users[u.Username] = u
	}

	for _, a := range snap.Articles {
		if a == nil || a.ID <= 0 {
			continue
		}
		a = a.Clone()
		s.articles[a.ID] = a
		if a.ID >= s.nextArticleID {
			s.nextArticleID = a.ID + 1
		}
	}

	for _, c := range snap.Comments {
		if c == nil || c.ID <= 0 {
			continue
		}
		c = c.Clone()
		s.comments[c.ID] = c
		if c.ID >= s.nextCommentID {
			s.nextCommentID = c.ID + 1
		}
	}
}
