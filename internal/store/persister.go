package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sinhalanews/harvester/internal/article"
	"sinhalanews/harvester/logger"
	pkgerrors "sinhalanews/harvester/pkg/errors"
)

// fileTimeLayout keeps article files sortable by publication time.
const fileTimeLayout = "2006-01-02_15_04_05"

// Persister writes one durable JSON record per article.
type Persister struct {
	baseDir string
	log     *logger.Logger
}

// NewPersister creates a persister rooted at baseDir
func NewPersister(baseDir string) *Persister {
	return &Persister{
		baseDir: baseDir,
		log:     logger.ForStore(),
	}
}

// Persist writes the article record for (partition, id) and returns
// its location. The write is idempotent: a record already on disk for
// the same ID is overwritten in place, never duplicated, even when
// the publication timestamp (and so the preferred filename) differs
// between runs. No partial record is ever readable because the data
// goes to a temp file first and is renamed into place.
func (p *Persister) Persist(part Partition, art *article.Article) (string, error) {
	dir := filepath.Join(p.baseDir, part.Source, part.Category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", pkgerrors.NewPersistence(part.Source, "failed to create partition dir", err)
	}

	path, err := p.recordPath(dir, art)
	if err != nil {
		return "", pkgerrors.NewPersistence(part.Source, "failed to locate record", err)
	}

	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return "", pkgerrors.NewPersistence(part.Source, "failed to encode article", err)
	}

	if err := writeAtomic(path, data); err != nil {
		return "", pkgerrors.NewPersistence(part.Source, "failed to write article", err)
	}

	p.log.Debug().Str("path", path).Str("id", art.ID).Msg("Persisted article")
	return path, nil
}

// recordPath returns the existing record file for the article's ID if
// one is present, otherwise a fresh timestamped name. The timestamped
// naming is a convenience for chronological listing by external
// tooling; the seen-set stays the authoritative dedup mechanism.
func (p *Persister) recordPath(dir string, art *article.Article) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*_"+art.ID+".json"))
	if err != nil {
		return "", err
	}
	if len(matches) > 0 {
		return matches[0], nil
	}

	name := fmt.Sprintf("%s_%s.json", art.PublishedAt.Format(fileTimeLayout), art.ID)
	return filepath.Join(dir, name), nil
}
