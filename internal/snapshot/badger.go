package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

const (
	usersPrefix    = "users/"
	articlesPrefix = "articles/"
	commentsPrefix = "comments/"
)

type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// Logger receives badger's own log output. Nil disables it.
	Logger *zap.SugaredLogger
	// MemTableSize overrides badger's memtable size, which also bounds how
	// much one transaction can hold. Zero keeps the default.
	MemTableSize int64
}

// Badger stores every entity under "<collection>/<key>" with a YAML value.
type Badger struct {
	db *badger.DB
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}

	if cfg.MemTableSize > 0 {
		opts = opts.WithMemTableSize(cfg.MemTableSize)
		if limit := cfg.MemTableSize * 15 / 100; opts.ValueThreshold > limit {
			opts = opts.WithValueThreshold(limit)
		}
	}

	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &Badger{db: db}, nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}

func (b *Badger) Load(ctx context.Context) (store.Snapshot, error) {
	snap := store.NewSnapshot()

	err := b.db.View(func(txn *badger.Txn) error {
		if err := scan(txn, usersPrefix, func(_ string, v []byte) error {
			u := &model.User{}
			if err := yaml.Unmarshal(v, u); err != nil {
				return err
			}
			snap.Users[u.Username] = u

			return nil
		}); err != nil {
			return err
		}

		if err := scan(txn, articlesPrefix, func(_ string, v []byte) error {
			a := &model.Article{}
			if err := yaml.Unmarshal(v, a); err != nil {
				return err
			}
			snap.Articles[a.ID] = a

			return nil
		}); err != nil {
			return err
		}

		return scan(txn, commentsPrefix, func(_ string, v []byte) error {
			c := &model.Comment{}
			if err := yaml.Unmarshal(v, c); err != nil {
				return err
			}
			snap.Comments[c.ID] = c

			return nil
		})
	})
	if err != nil {
		return snap, fmt.Errorf("load badger snapshot: %w", err)
	}

	return snap, nil
}

// Save replaces the stored collections with snap. Writes go through a
// WriteBatch, which commits in as many transactions as badger's batch limits
// need, so a large store never fails with ErrTxnTooBig. Keys missing from snap
// are deleted.
func (b *Badger) Save(ctx context.Context, snap store.Snapshot) error {
	want := make(map[string][]byte, len(snap.Users)+len(snap.Articles)+len(snap.Comments))
	for name, u := range snap.Users {
		if err := encode(want, usersPrefix+name, u); err != nil {
			return err
		}
	}
	for id, a := range snap.Articles {
		if err := encode(want, articlesPrefix+strconv.FormatInt(id, 10), a); err != nil {
			return err
		}
	}
	for id, c := range snap.Comments {
		if err := encode(want, commentsPrefix+strconv.FormatInt(id, 10), c); err != nil {
			return err
		}
	}

	var stale [][]byte
	if err := b.db.View(func(txn *badger.Txn) error {
		for _, prefix := range []string{usersPrefix, articlesPrefix, commentsPrefix} {
			for _, k := range keys(txn, prefix) {
				if _, ok := want[string(k)]; !ok {
					stale = append(stale, k)
				}
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("save badger snapshot: %w", err)
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for _, k := range stale {
		if err := wb.Delete(k); err != nil {
			return fmt.Errorf("save badger snapshot: %w", err)
		}
	}
	for k, v := range want {
		if err := wb.Set([]byte(k), v); err != nil {
			return fmt.Errorf("save badger snapshot: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("save badger snapshot: %w", err)
	}

	return nil
}

func encode(dst map[string][]byte, key string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	dst[key] = data

	return nil
}

func scan(txn *badger.Txn, prefix string, fn func(key string, value []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		key := string(item.Key())
		if err := item.Value(func(v []byte) error { return fn(key, v) }); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

func keys(txn *badger.Txn, prefix string) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var out [][]byte
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		out = append(out, it.Item().KeyCopy(nil))
	}

	return out
}
