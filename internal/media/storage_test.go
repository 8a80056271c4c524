package media

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestStorageSave(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.Save(BucketAttachments, pngBytes(t, 100, 60))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Path, BucketAttachments+"/"))
	assert.True(t, strings.HasSuffix(stored.Path, ".png"))
	assert.Equal(t, 100, stored.Width)
	assert.Equal(t, 60, stored.Height)

	_, err = os.Stat(filepath.Join(storage.Root(), filepath.FromSlash(stored.Path)))
	assert.NoError(t, err)
}

func TestStorageSaveRejectsGarbage(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save(BucketAvatars, []byte("this is not an image"))
	assert.Error(t, err)
}

func TestStorageSaveRejectsUnknownBucket(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save("documents", pngBytes(t, 1, 1))
	assert.Error(t, err)
}

func TestStorageSaveRejectsOversizedUpload(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save(BucketAvatars, make([]byte, MaxUploadBytes+1))
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "/media/avatars/x.png", URL("avatars/x.png"))
}
