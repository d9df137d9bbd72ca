package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rokucommunity/release-dashboard/pkg/config"
)

// testStore runs the behaviour every backend shares.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = %v, %v; want false, nil", ok, err)
	}

	if err := s.Set(ctx, "http-request: https://example.com/a", "body-a"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	v, ok, err := s.Get(ctx, "http-request: https://example.com/a")
	if err != nil || !ok || v != "body-a" {
		t.Fatalf("Get() = %q, %v, %v; want body-a, true, nil", v, ok, err)
	}

	// Overwrite
	if err := s.Set(ctx, "http-request: https://example.com/a", "body-a2"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, _, _ := s.Get(ctx, "http-request: https://example.com/a"); v != "body-a2" {
		t.Errorf("Get() after overwrite = %q, want body-a2", v)
	}

	if err := s.Set(ctx, "other", "x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "other"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "other"); ok {
		t.Error("Get() after Delete should miss")
	}
	if err := s.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}

	if err := s.Set(ctx, "b", "2"); err != nil {
		t.Fatal(err)
	}
	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Error("Get() after Clear should miss")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStore(t, s)

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	if err := s.Set(context.Background(), "key", "value"); err != nil {
		t.Fatal(err)
	}
	// sha256("key")
	h := "2c70e12b7a0646f92279f427c7b38e7334d8e5389cff167a1dc30e73f826b683"
	if _, err := os.Stat(filepath.Join(dir, h[:2], h[2:]+".json")); err != nil {
		t.Errorf("entry not written at hashed path: %v", err)
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()

	path := s.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := s.Get(ctx, "key")
	if err != nil || ok {
		t.Fatalf("Get(corrupt) = %v, %v; want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileStoreSharedDir(t *testing.T) {
	dir := t.TempDir()
	a, _ := NewFileStore(dir)
	b, _ := NewFileStore(dir)
	ctx := context.Background()

	if err := a.Set(ctx, "shared", "v"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := b.Get(ctx, "shared"); !ok || v != "v" {
		t.Errorf("second store Get() = %q, %v; want v, true", v, ok)
	}
}

func TestFileStoreClearKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()

	foreign := []string{
		"package.json",
		filepath.Join("src", "tsconfig.json"),
		filepath.Join("ab", "notes.json"),
		filepath.Join("ab", strings.Repeat("0", 62)+".txt"),
	}
	for _, name := range foreign {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, key := range []string{"http-request: a", "http-request: b"} {
		if err := s.Set(ctx, key, "v"); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	for _, name := range foreign {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s removed by Clear: %v", name, err)
		}
	}
	if _, ok, _ := s.Get(ctx, "http-request: a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "key", "value"); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "key"); hit {
		t.Error("NullStore should not store data")
	}
	if n, err := s.Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v", n, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.Cache
		check   func(Store) bool
		wantErr bool
	}{
		{"none", config.Cache{Backend: config.BackendNone}, func(s Store) bool { _, ok := s.(*NullStore); return ok }, false},
		{"memory", config.Cache{Backend: config.BackendMemory}, func(s Store) bool { _, ok := s.(*MemoryStore); return ok }, false},
		{"file", config.Cache{Backend: config.BackendFile, Dir: t.TempDir()}, func(s Store) bool { _, ok := s.(*FileStore); return ok }, false},
		{"unknown", config.Cache{Backend: "etcd"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer s.Close()
			if !tt.check(s) {
				t.Errorf("Open() returned %T", s)
			}
		})
	}
}
