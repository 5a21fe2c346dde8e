package store

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestStore_UpsertPartialTranscript(t *testing.T) {
	t.Parallel()
	testDB := SetupTestDB(t)

	ctx := context.Background()

	t.Run("successive chunks keep one document with the latest text", func(t *testing.T) {
		if err := testDB.Store.UpsertPartialTranscript(ctx, "call-1", "client-1", "Hello"); err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}
		if err := testDB.Store.UpsertPartialTranscript(ctx, "call-1", "client-1", "Hello, how can I help"); err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}

		count, err := testDB.Store.collection(collectionCallTranscripts).
			CountDocuments(ctx, bson.M{"callId": "call-1"})
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("document count = %d, want 1", count)
		}

		transcript, err := testDB.Store.GetTranscriptByCallID(ctx, "call-1")
		if err != nil {
			t.Fatalf("get transcript failed: %v", err)
		}
		if transcript.Transcript != "Hello, how can I help" {
			t.Errorf("Transcript = %q, want latest chunk", transcript.Transcript)
		}
		if transcript.ClientID != "client-1" {
			t.Errorf("ClientID = %q, want client-1", transcript.ClientID)
		}
	})

	t.Run("distinct call ids get their own documents", func(t *testing.T) {
		if err := testDB.Store.UpsertPartialTranscript(ctx, "call-2", "client-1", "First call"); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if err := testDB.Store.UpsertPartialTranscript(ctx, "call-3", "client-1", "Second call"); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		count, err := testDB.Store.collection(collectionCallTranscripts).
			CountDocuments(ctx, bson.M{"callId": bson.M{"$in": []string{"call-2", "call-3"}}})
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("document count = %d, want 2", count)
		}
	})

	t.Run("partial documents are excluded from completed counts", func(t *testing.T) {
		if err := testDB.Store.UpsertPartialTranscript(ctx, "call-4", "client-2", "In flight"); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		count, err := testDB.Store.CountCompletedCallsByClient(ctx, "client-2")
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("completed count = %d, want 0", count)
		}
	})
}
