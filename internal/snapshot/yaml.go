package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

const (
	UsersFile    = "users.yml"
	ArticlesFile = "articles.yml"
	CommentsFile = "comments.yml"
)

// YAML stores one file per collection in Dir.
type YAML struct {
	Dir string
}

func NewYAML(dir string) *YAML {
	return &YAML{Dir: dir}
}

// Load reads the three files. A missing file is an empty collection. Each
// file is read independently, so one bad file does not hide the others.
func (y *YAML) Load(ctx context.Context) (store.Snapshot, error) {
	snap := store.NewSnapshot()

	err := multierr.Combine(
		y.read(UsersFile, &snap.Users),
		y.read(ArticlesFile, &snap.Articles),
		y.read(CommentsFile, &snap.Comments),
	)

	return snap, err
}

// Save writes all three files. Each file is replaced atomically.
func (y *YAML) Save(ctx context.Context, snap store.Snapshot) error {
	if err := os.MkdirAll(y.Dir, 0o750); err != nil {
		return fmt.Errorf("create snapshot directory %s: %w", y.Dir, err)
	}

	return multierr.Combine(
		y.write(UsersFile, snap.Users),
		y.write(ArticlesFile, snap.Articles),
		y.write(CommentsFile, snap.Comments),
	)
}

func (y *YAML) read(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(y.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	return nil
}

func (y *YAML) write(name string, v interface{}) (err error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(y.Dir, name+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(y.Dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}

	return nil
}
