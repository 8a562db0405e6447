package testutil

import (
	"path/filepath"
	"testing"

	"github.com/canchalibre/canchaops/internal/entity/entitystore"
)

// NewTestStore creates a temporary SQLite entity store with migrations applied.
func NewTestStore(t *testing.T) *entitystore.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := entitystore.Open(dbPath)
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
