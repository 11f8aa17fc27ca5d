// Package prefstore provides PreferenceStore implementations: a JSON
// file store for single-node deployments, a Redis store for shared
// deployments, and a PostgreSQL store for durable server-synced profiles.
package prefstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/infrastructure/metrics"
)

const backendFile = "file"

// FileStore persists preferences as one file per profile and key under a
// base directory. Sets are stored as JSON arrays, scalars as raw strings,
// mirroring the browser localStorage layout the original profiles used.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file-backed store rooted at dir. The directory
// is created on first write, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// GetSet returns the persisted id list. Absent or corrupt values read as
// an empty list.
func (s *FileStore) GetSet(ctx context.Context, profileID, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(profileID, name))
	if err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendFile, metrics.PrefStatusSuccess).Inc()
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		// Corrupt value reads as empty, never as an error.
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendFile, metrics.PrefStatusSuccess).Inc()
		return []string{}, nil
	}

	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetSet, backendFile, metrics.PrefStatusSuccess).Inc()
	return ids, nil
}

// SetSet overwrites the persisted set.
func (s *FileStore) SetSet(ctx context.Context, profileID, name string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendFile, metrics.PrefStatusError).Inc()
		return fmt.Errorf("encode set %s: %w", name, err)
	}

	if err := s.write(profileID, name, data); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendFile, metrics.PrefStatusError).Inc()
		return err
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetSet, backendFile, metrics.PrefStatusSuccess).Inc()
	return nil
}

// GetScalar returns the persisted value and whether it was present.
func (s *FileStore) GetScalar(ctx context.Context, profileID, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(profileID, name))
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpGetScalar, backendFile, metrics.PrefStatusSuccess).Inc()
	if err != nil {
		return "", false, nil
	}
	return string(data), true, nil
}

// SetScalar overwrites the persisted value.
func (s *FileStore) SetScalar(ctx context.Context, profileID, name, value string) error {
	if err := s.write(profileID, name, []byte(value)); err != nil {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetScalar, backendFile, metrics.PrefStatusError).Inc()
		return err
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpSetScalar, backendFile, metrics.PrefStatusSuccess).Inc()
	return nil
}

// DeleteScalar removes the persisted value. Deleting an absent scalar is
// a no-op.
func (s *FileStore) DeleteScalar(ctx context.Context, profileID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(profileID, name))
	if err != nil && !os.IsNotExist(err) {
		metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpDeleteScalar, backendFile, metrics.PrefStatusError).Inc()
		return fmt.Errorf("delete scalar %s: %w", name, err)
	}
	metrics.PrefStoreOperationsTotal.WithLabelValues(metrics.PrefOpDeleteScalar, backendFile, metrics.PrefStatusSuccess).Inc()
	return nil
}

func (s *FileStore) path(profileID, name string) string {
	return filepath.Join(s.dir, profileID, name+".json")
}

// write persists data atomically: temp file in the same directory, then
// rename over the target.
func (s *FileStore) write(profileID, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.dir, profileID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(profileID, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// Compile-time verification that FileStore implements PreferenceStore.
var _ repository.PreferenceStore = (*FileStore)(nil)
