package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moltscraper/pkg/models"
)

func TestWriteAndReadArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")

	posts := []models.Post{
		{ID: "a", Title: "first", Content: "hello", Upvotes: 12},
		{ID: "b", Title: "second", Content: "world", CommentCount: 3},
	}

	require.NoError(t, WriteArchive(path, posts))

	archive, err := ReadArchive(path)
	require.NoError(t, err)

	assert.Equal(t, "moltbook.com", archive.Source)
	assert.Equal(t, 2, archive.Count)
	assert.NotEmpty(t, archive.ScrapedAt)
	require.Len(t, archive.Posts, 2)
	assert.Equal(t, "a", archive.Posts[0].ID)
	assert.Equal(t, "b", archive.Posts[1].ID)

	// No stray temp file after a successful write
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteArchiveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "posts.json")

	require.NoError(t, WriteArchive(path, nil))

	archive, err := ReadArchive(path)
	require.NoError(t, err)
	assert.Equal(t, 0, archive.Count)
}

func TestReadArchiveMissing(t *testing.T) {
	_, err := ReadArchive(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestReadArchiveCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := ReadArchive(path)
	assert.Error(t, err)
}
