package content

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// UserDetail is a user with its articles and comments resolved.
type UserDetail struct {
	User     *model.User
	Articles []*model.Article
	Comments []*model.Comment
}

// RegisterUser returns the user named username, creating it when absent.
// created reports whether a new user was stored.
func (m *Manager) RegisterUser(ctx context.Context, username string) (u *model.User, created bool, err error) {
	if username == "" {
		return nil, false, fmt.Errorf("username is required: %w", ErrInvalid)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.store.User(username); ok {
		return existing.Clone(), false, nil
	}

	u = model.NewUser(username)
	m.store.SetUser(u)
	m.persist(ctx)

	return u.Clone(), true, nil
}

// User fetches a user together with the entities it references.
func (m *Manager) User(ctx context.Context, username string) (*UserDetail, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalid)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.store.User(username)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	d := &UserDetail{
		User:     u.Clone(),
		Articles: make([]*model.Article, 0, len(u.ArticleIDs)),
		Comments: make([]*model.Comment, 0, len(u.CommentIDs)),
	}
	for _, id := range u.ArticleIDs {
		if a, ok := m.store.Article(id); ok {
			d.Articles = append(d.Articles, a.Clone())
		}
	}
	for _, id := range u.CommentIDs {
		if c, ok := m.store.Comment(id); ok {
			d.Comments = append(d.Comments, c.Clone())
		}
	}

	return d, nil
}
