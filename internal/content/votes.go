package content

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
	"github.com/SergeyParamoshkin/newsboard/internal/vote"
)

// VoteArticle toggles username's vote on an article. Unknown articles and
// users are both invalid requests.
func (m *Manager) VoteArticle(ctx context.Context, id int64, username string, d vote.Direction) (*model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.store.Article(id)
	if !ok {
		return nil, fmt.Errorf("article %d does not exist: %w", id, ErrInvalid)
	}
	if err := m.requireVoter(username); err != nil {
		return nil, err
	}

	vote.Toggle(&a.Votes, username, d)
	m.persist(ctx)

	return a.Clone(), nil
}

func (m *Manager) VoteComment(ctx context.Context, id int64, username string, d vote.Direction) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.store.Comment(id)
	if !ok {
		return nil, fmt.Errorf("comment %d does not exist: %w", id, ErrInvalid)
	}
	if err := m.requireVoter(username); err != nil {
		return nil, err
	}

	vote.Toggle(&c.Votes, username, d)
	m.persist(ctx)

	return c.Clone(), nil
}

func (m *Manager) requireVoter(username string) error {
	if username == "" {
		return fmt.Errorf("username is required: %w", ErrInvalid)
	}
	if _, ok := m.store.User(username); !ok {
		return fmt.Errorf("voter %q is not registered: %w", username, ErrInvalid)
	}

	return nil
}
