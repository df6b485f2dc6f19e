// Package content keeps users, articles and comments mutually consistent.
//
// Every operation validates its input before touching the store, so a
// rejected request never leaves a partial change behind. Successful
// mutations are followed by a synchronous snapshot save; save failures are
// logged and never reach the caller.
package content

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

var (
	// ErrInvalid reports a malformed or incomplete request. Nothing was changed.
	ErrInvalid = errors.New("invalid request")
	// ErrNotFound reports a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
)

// Gateway loads and persists whole snapshots of the store.
type Gateway interface {
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
}

// PersistObserver is told about every snapshot save attempt.
type PersistObserver interface {
	SnapshotSaved(ctx context.Context)
	SnapshotFailed(ctx context.Context)
}

// Manager owns the entity store. All access goes through one lock, so
// a mutation and its snapshot save finish before the next request starts.
type Manager struct {
	mu    sync.RWMutex
	store *store.Store

	gateway  Gateway
	observer PersistObserver
	logger   *zap.SugaredLogger
}

type Option func(*Manager)

func WithGateway(g Gateway) Option {
	return func(m *Manager) { m.gateway = g }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithObserver(o PersistObserver) Option {
	return func(m *Manager) { m.observer = o }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:  store.New(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Load merges the gateway's snapshot into the store. A failing gateway may
// still return a partial snapshot; whatever was read is restored and the
// error is logged and returned for the caller to report.
func (m *Manager) Load(ctx context.Context) error {
	if m.gateway == nil {
		return nil
	}

	snap, err := m.gateway.Load(ctx)
	if err != nil {
		m.logger.Errorw("snapshot load failed", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Restore(snap)

	articleID, commentID := m.store.Counters()
	m.logger.Infow("snapshot loaded",
		"users", len(snap.Users),
		"articles", len(snap.Articles),
		"comments", len(snap.Comments),
		"nextArticleId", articleID,
		"nextCommentId", commentID,
	)

	return err
}

// persist must be called with mu held.
func (m *Manager) persist(ctx context.Context) {
	if m.gateway == nil {
		return
	}

	if err := m.gateway.Save(ctx, m.store.Snapshot()); err != nil {
		m.logger.Errorw("snapshot save failed", "error", err)
		if m.observer != nil {
			m.observer.SnapshotFailed(ctx)
		}

		return
	}

	if m.observer != nil {
		m.observer.SnapshotSaved(ctx)
	}
}
