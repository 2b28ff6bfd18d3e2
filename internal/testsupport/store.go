package testsupport

import (
	"path/filepath"
	"testing"

	"voxlog/internal/queue"
)

// MustOpenStore opens a queue store on a per-test database and closes it at
// cleanup.
func MustOpenStore(t *testing.T) *queue.Store {
	t.Helper()
	store, err := queue.OpenPath(filepath.Join(t.TempDir(), "queue.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}
