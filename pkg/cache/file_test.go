package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestFileCache(t *testing.T) (*FileCache, *time.Time) {
	t.Helper()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	png := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	if err := c.Set(ctx, "artifact:png:1", png, time.Hour); err != nil {
		t.Fatal(err)
	}
	got, hit, err := c.Get(ctx, "artifact:png:1")
	if err != nil || !hit || !bytes.Equal(got, png) {
		t.Fatalf("Get = %v, %v, %v; want stored bytes", got, hit, err)
	}

	if _, hit, _ := c.Get(ctx, "artifact:png:2"); hit {
		t.Error("unknown key should miss")
	}

	if err := c.Delete(ctx, "artifact:png:1"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:png:1"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "artifact:png:1"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, now := newTestFileCache(t)

	_ = c.Set(ctx, "short", []byte("a"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("b"), 0)
	*now = now.Add(time.Hour)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed on read")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	path := c.path("broken")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "broken"); hit || err != nil {
		t.Errorf("truncated entry = hit %v, err %v; want a silent miss", hit, err)
	}
}

func TestFileCacheClearAndPrune(t *testing.T) {
	ctx := context.Background()
	c, now := newTestFileCache(t)

	_ = c.Set(ctx, "a", []byte("a"), time.Minute)
	_ = c.Set(ctx, "b", []byte("b"), time.Minute)
	_ = c.Set(ctx, "c", []byte("c"), 48*time.Hour)
	*now = now.Add(time.Hour)

	n, err := c.Prune()
	if err != nil || n != 2 {
		t.Fatalf("Prune() = %d, %v; want 2", n, err)
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("Prune removed a live entry")
	}

	n, err = c.Clear()
	if err != nil || n != 1 {
		t.Fatalf("Clear() = %d, %v; want 1", n, err)
	}
	dirs, _ := os.ReadDir(c.Dir())
	if len(dirs) != 0 {
		t.Errorf("Clear left %d fan-out directories", len(dirs))
	}
}

func TestFileCacheClearMissingDir(t *testing.T) {
	c := &FileCache{dir: filepath.Join(t.TempDir(), "gone"), now: time.Now}
	if n, err := c.Clear(); n != 0 || err != nil {
		t.Errorf("Clear() on missing dir = %d, %v", n, err)
	}
}
