package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/flowviz/pkg/cache"
)

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	out := captureUI(t)

	if err := runCLI(t, "cache", "prune"); err != nil {
		t.Fatalf("prune on missing dir: %v", err)
	}
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("output = %q, want empty notice", out.String())
	}

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "live", []byte("svg"), time.Hour)
	_ = fc.Set(ctx, "stale", []byte("svg"), time.Nanosecond)
	time.Sleep(time.Millisecond)

	out.Reset()
	if err := runCLI(t, "cache", "prune"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Pruned 1 cached entries") {
		t.Errorf("prune output = %q", out.String())
	}

	out.Reset()
	if err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entries") {
		t.Errorf("clear output = %q", out.String())
	}
}

func TestCacheSubcommandsRejectArgs(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, sub := range []string{"clear", "prune", "path"} {
		if err := runCLI(t, "cache", sub, "extra"); err == nil {
			t.Errorf("cache %s accepted an argument", sub)
		}
	}
}
