// Package media stores uploaded images on disk under per-kind buckets and
// probes their dimensions at upload time.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// BucketAvatars holds profile pictures.
	BucketAvatars = "avatars"
	// BucketAttachments holds tweet image attachments.
	BucketAttachments = "attachments"

	// MaxUploadBytes caps a single uploaded image.
	MaxUploadBytes = 5 << 20
)

// Stored describes a persisted upload. Path is relative to the media root and
// doubles as the value stored on the owning record.
type Stored struct {
	Path   string
	Width  int
	Height int
}

// Storage writes uploads below a single media root directory.
type Storage struct {
	root string
}

// NewStorage creates the media root and its buckets if missing.
func NewStorage(root string) (*Storage, error) {
	for _, bucket := range []string{BucketAvatars, BucketAttachments} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("create media bucket %s: %w", bucket, err)
		}
	}
	return &Storage{root: root}, nil
}

// Root returns the media root directory.
func (s *Storage) Root() string {
	return s.root
}

// Save validates and persists an uploaded image into the given bucket.
// The stored filename is a fresh UUID with an extension derived from the
// decoded format, never the client-supplied name.
func (s *Storage) Save(bucket string, content []byte) (*Stored, error) {
	if bucket != BucketAvatars && bucket != BucketAttachments {
		return nil, fmt.Errorf("unknown media bucket %q", bucket)
	}
	if int64(len(content)) > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", int64(MaxUploadBytes))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("unsupported or corrupt image: %w", err)
	}

	ext := format
	if format == "jpeg" {
		ext = "jpg"
	}
	rel := filepath.ToSlash(filepath.Join(bucket, fmt.Sprintf("%s.%s", uuid.New().String(), ext)))
	if err := os.WriteFile(filepath.Join(s.root, rel), content, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	return &Stored{Path: rel, Width: cfg.Width, Height: cfg.Height}, nil
}

// URL returns the public URL for a stored media path.
func URL(path string) string {
	return "/media/" + path
}
