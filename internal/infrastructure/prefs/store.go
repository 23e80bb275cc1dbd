// Package prefs persists the confidence-weighted preference store backing
// `wtf memory` and the prompt context.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/pkg/atomicfile"
	"github.com/wtf-sh/wtf/internal/ports"
)

// FileStore keeps preference entries in a YAML document. Entries preserve
// insertion order; a re-set of an existing key overwrites in place.
type FileStore struct {
	path   string
	logger ports.Logger

	mu      sync.Mutex
	loaded  bool
	entries []domain.PreferenceEntry
	now     func() time.Time
}

type document struct {
	Entries []domain.PreferenceEntry `yaml:"entries"`
}

// NewFileStore builds a store backed by the given path (typically
// ~/.wtf/memories.yaml).
func NewFileStore(path string, logger ports.Logger) *FileStore {
	return &FileStore{path: path, logger: logger, now: time.Now}
}

// Set upserts an entry; confidence is derived from the source. Last write
// wins, including a lower-confidence source overwriting a higher one.
func (s *FileStore) Set(key, value string, source domain.PreferenceSource) (domain.PreferenceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return domain.PreferenceEntry{}, err
	}
	entry := domain.PreferenceEntry{
		Key:        key,
		Value:      value,
		Confidence: domain.ConfidenceFor(source),
		Source:     source,
		Timestamp:  s.now(),
	}
	replaced := false
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, entry)
	}
	if err := s.persist(); err != nil {
		return domain.PreferenceEntry{}, err
	}
	return entry, nil
}

// Get returns the entry for key.
func (s *FileStore) Get(key string) (domain.PreferenceEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return domain.PreferenceEntry{}, false, err
	}
	for _, entry := range s.entries {
		if entry.Key == key {
			return entry, true, nil
		}
	}
	return domain.PreferenceEntry{}, false, nil
}

// Remove deletes the entry for key; absent keys are a no-op.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	kept := s.entries[:0]
	removed := false
	for _, entry := range s.entries {
		if entry.Key == key {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept
	if !removed {
		return nil
	}
	return s.persist()
}

// All returns entries in insertion order.
func (s *FileStore) All() ([]domain.PreferenceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]domain.PreferenceEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Clear empties the store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.entries = nil
	return s.persist()
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Corrupt document: run with an empty store, leave the file alone
		// until the next explicit write.
		if s.logger != nil {
			s.logger.Warn("memories file is corrupt, running without stored preferences", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		s.loaded = true
		return nil
	}
	s.entries = doc.Entries
	s.loaded = true
	return nil
}

func (s *FileStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	raw, err := yaml.Marshal(document{Entries: s.entries})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := atomicfile.WriteFile(s.path, raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	return nil
}

var _ ports.PreferenceStore = (*FileStore)(nil)
