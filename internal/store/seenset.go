package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sinhalanews/harvester/logger"
)

// seenFileName matches the layout external tooling already reads.
const seenFileName = "existing_ids.json"

// Partition scopes a seen-set and a persistence namespace to one
// (source, category) pair.
type Partition struct {
	Source   string
	Category string
}

// String returns the partition's path-style name
func (p Partition) String() string {
	return p.Source + "/" + p.Category
}

// IDSet is the in-memory seen-set for one partition.
type IDSet map[string]struct{}

// Contains reports whether the ID has already been persisted
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks an ID as persisted. Call only after the article record
// has been durably written.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// SeenSetStore persists one ID set per partition as a JSON array.
type SeenSetStore struct {
	baseDir string
	log     *logger.Logger
}

// NewSeenSetStore creates a seen-set store rooted at baseDir
func NewSeenSetStore(baseDir string) *SeenSetStore {
	return &SeenSetStore{
		baseDir: baseDir,
		log:     logger.ForStore(),
	}
}

func (s *SeenSetStore) path(p Partition) string {
	return filepath.Join(s.baseDir, p.Source, p.Category, seenFileName)
}

// Load reads the persisted IDs for a partition. A missing file yields
// an empty set; so does a malformed one, logged as a warning, because
// a poisoned dedup file must not block ingestion.
func (s *SeenSetStore) Load(p Partition) IDSet {
	ids := make(IDSet)

	data, err := os.ReadFile(s.path(p))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("partition", p.String()).Msg("Failed to read seen-set, starting empty")
		}
		return ids
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		s.log.Warn().Err(err).Str("partition", p.String()).Msg("Corrupt seen-set, starting empty")
		return ids
	}

	for _, id := range list {
		ids.Add(id)
	}
	return ids
}

// Save atomically replaces the persisted ID set for a partition. The
// file is written to a temporary location and renamed so a concurrent
// reader never observes a half-written set.
func (s *SeenSetStore) Save(p Partition, ids IDSet) error {
	path := s.path(p)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create partition dir: %w", err)
	}

	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode seen-set: %w", err)
	}

	return writeAtomic(path, data)
}

// writeAtomic writes data to a sibling temp file and renames it over
// the destination.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
