package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("image size exceeds upload limit")
	ErrInvalidFileType = errors.New("invalid file type, only JPG/JPEG/PNG allowed")
)

// ImageStore persists uploaded images and returns their path relative to the
// public uploads directory.
type ImageStore interface {
	Save(folder string, file *multipart.FileHeader) (string, error)
	Remove(relPath string) error
}

// LocalStore writes images below a directory that is served as static files.
type LocalStore struct {
	root        string
	maxSize     int64
	allowedExts map[string]bool
}

func NewLocalStore(root string, maxSize int64) *LocalStore {
	return &LocalStore{
		root:    root,
		maxSize: maxSize,
		allowedExts: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
		},
	}
}

// Root is the directory images are written to.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(folder string, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.allowedExts[ext] {
		return "", ErrInvalidFileType
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := writeFile(filepath.Join(dir, name), src); err != nil {
		return "", err
	}

	return path.Join(folder, name), nil
}

// writeFile copies src to target. A partially written file is removed.
func writeFile(target string, src io.Reader) (err error) {
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(target)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := filepath.Clean("/" + relPath)
	if err := os.Remove(filepath.Join(s.root, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
