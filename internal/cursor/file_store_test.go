package cursor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadBootstrapsMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "last_timestamp.txt")
	store := NewFileStore(path, nil)
	store.now = func() time.Time {
		return time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("bootstrap cursor = %v, want %v", got, want)
	}

	// The default must be persisted immediately.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("bootstrap was not persisted: %v", err)
	}
	if string(raw) != "2025-06-15T00:00:00.000000Z" {
		t.Fatalf("unexpected persisted value: %s", raw)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "last_timestamp.txt")
	store := NewFileStore(path, nil)

	ts := time.Date(2025, time.June, 15, 14, 22, 9, 123456000, time.UTC)
	if err := store.Save(ts); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !got.Equal(ts) {
		t.Fatalf("round trip = %v, want %v", got, ts)
	}
}

func TestSaveRefusesZeroTimestamp(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "ts.txt"), nil)
	if err := store.Save(time.Time{}); err == nil {
		t.Fatal("expected error saving zero timestamp")
	}
}

func TestLoadMalformedFallsBackWithoutOverwriting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ts.txt")
	if err := os.WriteFile(path, []byte("not-a-timestamp"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store := NewFileStore(path, nil)
	store.now = func() time.Time {
		return time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("fallback cursor = %v, want %v", got, want)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) != "not-a-timestamp" {
		t.Fatalf("malformed file was overwritten: %s", raw)
	}
}
