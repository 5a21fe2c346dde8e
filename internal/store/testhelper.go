package store

import (
	"context"
	"os"
	"testing"
	"time"

	"ari-server/internal/observability"

	"github.com/google/uuid"
)

// TestDB wraps a Store bound to a throwaway database.
type TestDB struct {
	Store *Store
}

// SetupTestDB connects to the MongoDB instance named by TEST_MONGO_URI and
// returns a Store bound to a uniquely named database, dropped when the test
// finishes. Tests are skipped when no instance is available.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := New(ctx, uri, "ari_test_"+uuid.New().String()[:8], observability.NewLogger())
	if err != nil {
		t.Fatalf("failed to setup test database: %v", err)
	}

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.db.Drop(cleanupCtx)
		_ = s.Close(cleanupCtx)
	})

	return &TestDB{Store: s}
}
