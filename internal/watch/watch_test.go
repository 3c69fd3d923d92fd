package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) handle(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func (r *recorder) unique() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.all() {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func startWatcher(t *testing.T, dir string) *recorder {
	t.Helper()
	rec := &recorder{}
	w, err := New(dir, rec.handle, Options{Debounce: 20 * time.Millisecond, Ignore: []string{"node_modules"}},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, w.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return rec
}

func TestWatcher_ReportsSourcePages(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, dir)

	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte("<p>a</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html.twig"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		return len(rec.all()) > 0
	}, 3*time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{page}, rec.unique())
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	rec := startWatcher(t, dir)

	sub := filepath.Join(dir, "blog")
	require.NoError(t, os.Mkdir(sub, 0o755))
	page := filepath.Join(sub, "post.md")
	assert.Eventually(t, func() bool {
		// The directory watch is added asynchronously; rewrite until seen.
		_ = os.WriteFile(page, []byte("# Post"), 0o644)
		for _, p := range rec.all() {
			if p == page {
				return true
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)
}

func TestWatcher_SkipsIgnoredDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))
	rec := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "x.html"), []byte("x"), 0o644))
	page := filepath.Join(dir, "a.htm")
	require.NoError(t, os.WriteFile(page, []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		return len(rec.all()) > 0
	}, 3*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{page}, rec.unique())
}
