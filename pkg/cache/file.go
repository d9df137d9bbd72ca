package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// FileStore implements a file-based store for CLI usage.
// Each entry is a JSON file named after the SHA-256 of its key.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the cache entries.
func (s *FileStore) Dir() string { return s.dir }

// fileEntry wraps a cached value with the key it was stored under so that
// entries stay inspectable on disk.
type fileEntry struct {
	Key      string    `json:"key"`
	Value    string    `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// Get retrieves a value from the store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid entry - treat as miss
		_ = os.Remove(path)
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Set stores a value in the store.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	data, err := json.Marshal(fileEntry{Key: key, Value: value, StoredAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Write-then-rename so concurrent readers never see a torn file.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var (
	shardRe = regexp.MustCompile(`^[0-9a-f]{2}$`)
	entryRe = regexp.MustCompile(`^[0-9a-f]{62}\.json$`)
)

// Clear removes the entry files and the shard directories they empty. Only
// names matching the dir/ab/<62 hex>.json layout are touched, so other files
// in a shared directory survive.
func (s *FileStore) Clear(ctx context.Context) (int, error) {
	shards, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, shard := range shards {
		if !shard.IsDir() || !shardRe.MatchString(shard.Name()) {
			continue
		}
		shardDir := filepath.Join(s.dir, shard.Name())
		entries, err := os.ReadDir(shardDir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return count, err
			}
			if !e.Type().IsRegular() || !entryRe.MatchString(e.Name()) {
				continue
			}
			if err := os.Remove(filepath.Join(shardDir, e.Name())); err == nil {
				count++
			}
		}
		_ = os.Remove(shardDir) // fails unless empty
	}
	return count, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// path maps a key to dir/ab/cdef….json where abcdef… is the SHA-256 of the
// key. URLs are not safe file names.
func (s *FileStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(s.dir, name[:2], name[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
