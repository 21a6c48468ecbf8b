package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenSetLoadMissingFile(t *testing.T) {
	s := NewSeenSetStore(t.TempDir())

	ids := s.Load(Partition{Source: "hirunews", Category: "sports"})
	assert.Empty(t, ids)
}

func TestSeenSetSaveAndLoad(t *testing.T) {
	s := NewSeenSetStore(t.TempDir())
	p := Partition{Source: "hirunews", Category: "sports"}

	ids := make(IDSet)
	ids.Add("aaa")
	ids.Add("bbb")
	require.NoError(t, s.Save(p, ids))

	loaded := s.Load(p)
	assert.Len(t, loaded, 2)
	assert.True(t, loaded.Contains("aaa"))
	assert.True(t, loaded.Contains("bbb"))
	assert.False(t, loaded.Contains("ccc"))
}

func TestSeenSetCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	p := Partition{Source: "hirunews", Category: "sports"}

	path := filepath.Join(dir, "hirunews", "sports", "existing_ids.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewSeenSetStore(dir)
	ids := s.Load(p)
	assert.Empty(t, ids, "a poisoned seen-set must not block ingestion")
}

func TestSeenSetSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewSeenSetStore(dir)
	p := Partition{Source: "news_first", Category: "local"}

	ids := make(IDSet)
	ids.Add("abc")
	require.NoError(t, s.Save(p, ids))

	entries, err := os.ReadDir(filepath.Join(dir, "news_first", "local"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "existing_ids.json", entries[0].Name())
}

func TestSeenSetSaveIsIdempotent(t *testing.T) {
	s := NewSeenSetStore(t.TempDir())
	p := Partition{Source: "itnnews", Category: "world"}

	ids := make(IDSet)
	ids.Add("abc")
	require.NoError(t, s.Save(p, ids))
	require.NoError(t, s.Save(p, ids))

	assert.True(t, s.Load(p).Contains("abc"))
}
