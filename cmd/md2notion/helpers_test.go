package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2notion/internal/notion"
	"github.com/alnah/go-md2notion/internal/notionapi"
)

// testEnv returns an Environment with captured output and a fixed process
// environment, so tests never touch the real one.
func testEnv(vars map[string]string, up Uploader) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
		NewUploader: func(cfg notionapi.Config) (Uploader, error) {
			if cfg.Token == "" {
				return nil, notionapi.ErrMissingToken
			}
			return up, nil
		},
	}
	return env, stdout, stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// fakeUploader records calls and hands out sequential ids.
type fakeUploader struct {
	mu       sync.Mutex
	pages    []string // titles of created pages
	appends  map[string]int
	next     int
	failWith error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{appends: map[string]int{}}
}

func (f *fakeUploader) CreatePage(_ context.Context, parentPageID, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return "", f.failWith
	}
	f.pages = append(f.pages, title)
	f.next++
	return fmt.Sprintf("page-%d", f.next), nil
}

func (f *fakeUploader) AppendChildren(_ context.Context, parentID string, blocks []*notion.Block) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.appends[parentID] += len(blocks)
	ids := make([]string, len(blocks))
	for i := range blocks {
		f.next++
		ids[i] = fmt.Sprintf("block-%d", f.next)
	}
	return ids, nil
}
