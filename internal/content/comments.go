package content

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type CommentDraft struct {
	Body      string
	Username  string
	ArticleID int64
}

// CommentPatch is a partial comment update. An empty body means "no change".
type CommentPatch struct {
	Body string
}

func (p CommentPatch) Apply(c *model.Comment) {
	if p.Body != "" {
		c.Body = p.Body
	}
}

func (m *Manager) CreateComment(ctx context.Context, d CommentDraft) (*model.Comment, error) {
	if d.Body == "" || d.Username == "" || d.ArticleID == 0 {
		return nil, fmt.Errorf("body, username and articleId are required: %w", ErrInvalid)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.store.User(d.Username)
	if !ok {
		return nil, fmt.Errorf("author %q is not registered: %w", d.Username, ErrInvalid)
	}
	a, ok := m.store.Article(d.ArticleID)
	if !ok {
		return nil, fmt.Errorf("article %d does not exist: %w", d.ArticleID, ErrInvalid)
	}

	c := model.NewComment(m.store.NextCommentID(), d.Body, d.Username, d.ArticleID)
	m.store.SetComment(c)
	u.CommentIDs = append(u.CommentIDs, c.ID)
	a.CommentIDs = append(a.CommentIDs, c.ID)
	m.persist(ctx)

	return c.Clone(), nil
}

func (m *Manager) UpdateComment(ctx context.Context, id int64, p *CommentPatch) (*model.Comment, error) {
	if id <= 0 || p == nil {
		return nil, fmt.Errorf("comment id and update payload are required: %w", ErrInvalid)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.store.Comment(id)
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	p.Apply(c)
	m.persist(ctx)

	return c.Clone(), nil
}

// DeleteComment removes the comment and its two back-references. Any id that
// does not resolve, including zero, is ErrNotFound.
func (m *Manager) DeleteComment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.store.Comment(id)
	if !ok {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	if author, ok := m.store.User(c.Username); ok {
		author.CommentIDs = model.RemoveID(author.CommentIDs, id)
	}
	if a, ok := m.store.Article(c.ArticleID); ok {
		a.CommentIDs = model.RemoveID(a.CommentIDs, id)
	}
	m.store.DeleteComment(id)
	m.persist(ctx)

	return nil
}
