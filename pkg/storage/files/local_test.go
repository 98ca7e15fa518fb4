package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveReplacesPreviousUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	id := uuid.New()

	first, err := store.Save(context.Background(), id, ".pdf", []byte("v1"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), id, ".pdf", []byte("v2"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "resumes", id.String()+".pdf")), second)

	got, err := os.ReadFile(filepath.FromSlash(second))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "resumes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalSaveHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(t.TempDir()).Save(ctx, uuid.New(), ".docx", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
