// Package upload persists album cover images on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxCoverSize caps cover uploads at 500 KB.
const MaxCoverSize = 512000

var (
	// ErrUnsupportedMediaType indicates a non-image upload.
	ErrUnsupportedMediaType = errors.New("cover must be an image")
	// ErrFileTooLarge indicates an upload over MaxCoverSize.
	ErrFileTooLarge = errors.New("cover exceeds the size limit")
)

// Storage writes validated cover images into a directory.
type Storage struct {
	dir string
}

// NewStorage ensures dir exists and returns a Storage rooted there.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the directory covers are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// SaveCover validates the upload and writes it under a generated filename,
// which it returns.
func (s *Storage) SaveCover(r io.Reader, contentType string, size int64) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrUnsupportedMediaType
	}
	if size > MaxCoverSize {
		return "", ErrFileTooLarge
	}

	filename := uuid.NewString() + extensionFor(contentType)

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	defer f.Close()

	// LimitReader guards against lying Content-Length headers.
	written, err := io.Copy(f, io.LimitReader(r, MaxCoverSize+1))
	if err != nil {
		return "", fmt.Errorf("write cover file: %w", err)
	}
	if written > MaxCoverSize {
		_ = os.Remove(filepath.Join(s.dir, filename))
		return "", ErrFileTooLarge
	}

	return filename, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
