// Package snapshot persists store snapshots. Each gateway keeps the three
// collections separately, keyed by username or id.
package snapshot

import (
	"context"

	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

// Nop never loads anything and discards every save. It backs test mode.
type Nop struct{}

func (Nop) Load(context.Context) (store.Snapshot, error) {
	return store.NewSnapshot(), nil
}

func (Nop) Save(context.Context, store.Snapshot) error {
	return nil
}
