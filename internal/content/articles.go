package content

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

// ArticleDraft carries the fields of a new article. All are required.
type ArticleDraft struct {
	Title    string
	URL      string
	Username string
}

// ArticlePatch is a partial article update. Empty fields mean "no change".
type ArticlePatch struct {
	Title string
	URL   string
}

// Apply overwrites the fields of a that are set in p.
func (p ArticlePatch) Apply(a *model.Article) {
	if p.Title != "" {
		a.Title = p.Title
	}
	if p.URL != "" {
		a.URL = p.URL
	}
}

// ArticleDetail is an article with its comments resolved. The comments are
// joined at read time and never stored on the article.
type ArticleDetail struct {
	Article  *model.Article
	Comments []*model.Comment
}

func (m *Manager) CreateArticle(ctx context.Context, d ArticleDraft) (*model.Article, error) {
	if d.Title == "" || d.URL == "" || d.Username == "" {
		return nil, fmt.Errorf("title, url and username are required: %w", ErrInvalid)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.store.User(d.Username)
	if !ok {
		return nil, fmt.Errorf("author %q is not registered: %w", d.Username, ErrInvalid)
	}

	a := model.NewArticle(m.store.NextArticleID(), d.Title, d.URL, d.Username)
	m.store.SetArticle(a)
	u.ArticleIDs = append(u.ArticleIDs, a.ID)
	m.persist(ctx)

	return a.Clone(), nil
}

// Articles lists every article, newest first.
func (m *Manager) Articles(ctx context.Context) []*model.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.store.Articles()
	for i, a := range list {
		list[i] = a.Clone()
	}

	return list
}

func (m *Manager) Article(ctx context.Context, id int64) (*ArticleDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("article id must be positive: %w", ErrInvalid)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.store.Article(id)
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}

	d := &ArticleDetail{
		Article:  a.Clone(),
		Comments: make([]*model.Comment, 0, len(a.CommentIDs)),
	}
	for _, cid := range a.CommentIDs {
		if c, ok := m.store.Comment(cid); ok {
			d.Comments = append(d.Comments, c.Clone())
		}
	}

	return d, nil
}

// UpdateArticle applies p to the article. A nil patch is an invalid request.
func (m *Manager) UpdateArticle(ctx context.Context, id int64, p *ArticlePatch) (*model.Article, error) {
	if id <= 0 || p == nil {
		return nil, fmt.Errorf("article id and update payload are required: %w", ErrInvalid)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.store.Article(id)
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}

	p.Apply(a)
	m.persist(ctx)

	return a.Clone(), nil
}

// DeleteArticle removes the article, its comments and every back-reference
// to them. A missing article is reported as ErrInvalid (400), not
// ErrNotFound; existing clients expect it.
func (m *Manager) DeleteArticle(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.store.Article(id)
	if !ok {
		return fmt.Errorf("article %d does not exist: %w", id, ErrInvalid)
	}

	for _, cid := range a.CommentIDs {
		c, ok := m.store.Comment(cid)
		if !ok {
			continue
		}
		if author, ok := m.store.User(c.Username); ok {
			author.CommentIDs = model.RemoveID(author.CommentIDs, cid)
		}
		m.store.DeleteComment(cid)
	}

	if owner, ok := m.store.User(a.Username); ok {
		owner.ArticleIDs = model.RemoveID(owner.ArticleIDs, id)
	}
	m.store.DeleteArticle(id)
	m.persist(ctx)

	return nil
}
