package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

// FileStore keeps each record as a JSON file under a data directory:
// "<kind>.json" for CurrentKey and "<kind>_<key>.json" otherwise. Uploads
// go to an "uploads" subdirectory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates dir when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store needs a data directory")
	}
	if err := os.MkdirAll(filepath.Join(dir, "uploads"), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) recordPath(kind league.Kind, key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid record key %q", key)
	}
	if key == CurrentKey {
		return filepath.Join(s.dir, string(kind)+".json"), nil
	}
	return filepath.Join(s.dir, string(kind)+"_"+key+".json"), nil
}

// writeAtomic replaces path through a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Put writes the record file.
func (s *FileStore) Put(_ context.Context, kind league.Kind, key string, payload []byte) error {
	p, err := s.recordPath(kind, key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeAtomic(p, payload); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(p), err)
	}
	return nil
}

// Get reads the record file.
func (s *FileStore) Get(_ context.Context, kind league.Kind, key string) ([]byte, error) {
	p, err := s.recordPath(kind, key)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", kind, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(p), err)
	}
	return data, nil
}

// Delete removes the record file.
func (s *FileStore) Delete(_ context.Context, kind league.Kind, key string) error {
	p, err := s.recordPath(kind, key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s/%s: %w", kind, key, ErrNotFound)
	}
	return err
}

// Keys lists the keys stored for kind.
func (s *FileStore) Keys(_ context.Context, kind league.Kind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}
	keys := []string{}
	prefix := string(kind) + "_"
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		base := strings.TrimSuffix(name, ".json")
		switch {
		case base == string(kind):
			keys = append(keys, CurrentKey)
		case strings.HasPrefix(base, prefix):
			keys = append(keys, strings.TrimPrefix(base, prefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// SaveUpload writes the raw bytes and a metadata sidecar.
func (s *FileStore) SaveUpload(_ context.Context, u *Upload) error {
	prepareUpload(u)
	meta, err := json.Marshal(u)
	if err != nil {
		return err
	}
	base := filepath.Join(s.dir, "uploads", u.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeAtomic(base+".bin", u.Data); err != nil {
		return fmt.Errorf("writing upload: %w", err)
	}
	if err := writeAtomic(base+".json", meta); err != nil {
		return fmt.Errorf("writing upload metadata: %w", err)
	}
	return nil
}

// Uploads reads the archived uploads, oldest first.
func (s *FileStore) Uploads(_ context.Context, kind league.Kind) ([]Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dir := filepath.Join(s.dir, "uploads")
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var uploads []Upload
	for _, m := range matches {
		raw, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(m), err)
		}
		var u Upload
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", filepath.Base(m), err)
		}
		if kind != "" && u.Kind != kind {
			continue
		}
		if u.Data, err = os.ReadFile(strings.TrimSuffix(m, ".json") + ".bin"); err != nil {
			return nil, fmt.Errorf("reading upload %s: %w", u.ID, err)
		}
		uploads = append(uploads, u)
	}
	sort.SliceStable(uploads, func(i, j int) bool {
		if uploads[i].CreatedAt.Equal(uploads[j].CreatedAt) {
			return uploads[i].ID < uploads[j].ID
		}
		return uploads[i].CreatedAt.Before(uploads[j].CreatedAt)
	})
	return uploads, nil
}

// HealthCheck verifies the data directory is reachable.
func (s *FileStore) HealthCheck(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
