package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestRunConvert - End-to-end file conversion
// ---------------------------------------------------------------------------

func TestRunConvert(t *testing.T) {
	t.Parallel()

	t.Run("writes json next to source", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "groceries.md", "# Groceries\n\n- [x] Milk\n- [ ] Eggs\n")
		env, stdout, _ := testEnv(nil, nil)

		err := runConvert(context.Background(), []string{src}, &convertFlags{}, env)
		if err != nil {
			t.Fatalf("runConvert: %v", err)
		}

		out := filepath.Join(dir, "groceries.json")
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		for _, want := range []string{`"type": "heading_1"`, `"type": "to_do"`, `"checked": true`, `"content": "Milk"`} {
			if !strings.Contains(string(data), want) {
				t.Errorf("output missing %s:\n%s", want, data)
			}
		}
		if !strings.Contains(stdout.String(), "Created "+out) {
			t.Errorf("stdout = %q, want Created line", stdout.String())
		}
	})

	t.Run("directory into output dir", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := filepath.Join(dir, "in")
		writeFile(t, in, "a.md", "alpha")
		writeFile(t, in, filepath.Join("nested", "b.md"), "beta")
		outDir := filepath.Join(dir, "out")
		env, stdout, _ := testEnv(nil, nil)

		err := runConvert(context.Background(), []string{in}, &convertFlags{output: outDir, workers: 2}, env)
		if err != nil {
			t.Fatalf("runConvert: %v", err)
		}

		for _, p := range []string{filepath.Join(outDir, "a.json"), filepath.Join(outDir, "nested", "b.json")} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("expected %s: %v", p, err)
			}
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q, want summary", stdout.String())
		}
	})

	t.Run("env supplies input dir", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.md", "alpha")
		env, _, _ := testEnv(map[string]string{"MD2NOTION_INPUT_DIR": dir}, nil)

		if err := runConvert(context.Background(), nil, &convertFlags{}, env); err != nil {
			t.Fatalf("runConvert: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "a.json")); err != nil {
			t.Errorf("expected output: %v", err)
		}
	})

	t.Run("verbose lists degradations", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		src := writeFile(t, dir, "deep.md", "#### Deep\n")
		env, stdout, _ := testEnv(nil, nil)

		flags := &convertFlags{common: commonFlags{verbose: true}}
		if err := runConvert(context.Background(), []string{src}, flags, env); err != nil {
			t.Fatalf("runConvert: %v", err)
		}
		if !strings.Contains(stdout.String(), "heading_level_clamped") {
			t.Errorf("stdout = %q, want degradation line", stdout.String())
		}
		if !strings.Contains(stdout.String(), "(1 blocks,") {
			t.Errorf("stdout = %q, want block count", stdout.String())
		}
	})

	t.Run("empty file fails", func(t *testing.T) {
		t.Parallel()
		src := writeFile(t, t.TempDir(), "empty.md", "   \n")
		env, _, stderr := testEnv(nil, nil)

		err := runConvert(context.Background(), []string{src}, &convertFlags{}, env)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(stderr.String(), "FAILED "+src) {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
	})

	t.Run("invalid worker count", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil, nil)
		err := runConvert(context.Background(), []string{"a.md"}, &convertFlags{workers: maxPoolSize + 1}, env)
		if !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil, nil)
		err := runConvert(context.Background(), []string{"a.md"}, &convertFlags{timeout: "fast"}, env)
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("error = %v, want ErrInvalidTimeout", err)
		}
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil, nil)
		err := runConvert(context.Background(), nil, &convertFlags{}, env)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertBatch_Canceled - Canceled context marks every file
// ---------------------------------------------------------------------------

func TestConvertBatch_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []FileToConvert{
		{InputPath: writeFile(t, dir, "a.md", "a")},
		{InputPath: writeFile(t, dir, "b.md", "b")},
	}
	pool, err := NewConverterPool(1, nil)
	if err != nil {
		t.Fatalf("NewConverterPool: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range convertBatch(ctx, pool, files, nil) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag, env, default
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"default", "", 0, defaultTimeout, false},
		{"env", "", time.Minute, time.Minute, false},
		{"flag wins", "5s", time.Minute, 5 * time.Second, false},
		{"malformed", "soon", 0, 0, true},
		{"zero", "0s", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveTimeout(tt.flag, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTimeout(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}
