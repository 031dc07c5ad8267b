package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mixdown/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndListRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	rec := history.Record{
		SessionID:      "session-1",
		ProjectPath:    "/projects/demo.mixproj",
		OutputPath:     "/out/final.mp4",
		Encoder:        "h264_nvenc",
		Hardware:       true,
		Success:        true,
		ElapsedSeconds: 42.5,
		OutputBytes:    1 << 20,
	}

	added, err := store.Add(ctx, rec)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if added.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if added.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	got := records[0]
	if got.SessionID != "session-1" || got.Encoder != "h264_nvenc" || !got.Hardware || !got.Success {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.ElapsedSeconds != 42.5 || got.OutputBytes != 1<<20 {
		t.Fatalf("unexpected numeric fields: %+v", got)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := store.Add(ctx, history.Record{
			SessionID:  "s",
			OutputPath: "/out/final.mp4",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Add %d returned error: %v", i, err)
		}
	}

	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if !records[0].CreatedAt.After(records[1].CreatedAt) {
		t.Fatalf("expected newest first: %v then %v", records[0].CreatedAt, records[1].CreatedAt)
	}
}

func TestFailedAndCancelledRecords(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, history.Record{
		SessionID:    "failed",
		OutputPath:   "/out/a.mp4",
		ErrorMessage: "engine exited with code 1",
	}); err != nil {
		t.Fatalf("Add failed record: %v", err)
	}
	if _, err := store.Add(ctx, history.Record{
		SessionID:  "cancelled",
		OutputPath: "/out/b.mp4",
		Cancelled:  true,
	}); err != nil {
		t.Fatalf("Add cancelled record: %v", err)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	for _, rec := range records {
		switch rec.SessionID {
		case "failed":
			if rec.ErrorMessage != "engine exited with code 1" || rec.Success {
				t.Fatalf("unexpected failed record: %+v", rec)
			}
		case "cancelled":
			if !rec.Cancelled || rec.Success {
				t.Fatalf("unexpected cancelled record: %+v", rec)
			}
		default:
			t.Fatalf("unexpected session: %q", rec.SessionID)
		}
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := store.Add(ctx, history.Record{SessionID: "s", OutputPath: "/out/final.mp4"}); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected two removed, got %d", removed)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}
