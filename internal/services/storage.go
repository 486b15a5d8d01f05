package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService keeps uploaded résumé files. Keys are flat names built
// by NewStorageKey.
type StorageService interface {
	SaveFile(ctx context.Context, key string, data []byte, contentType string) error
	ReadFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

var ErrFileNotFound = errors.New("file not found")

// NewStorageKey returns a unique key that keeps the original extension.
func NewStorageKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
}

type LocalStorage struct {
	uploadPath string
}

func NewStorageService(uploadPath string) *LocalStorage {
	return &LocalStorage{
		uploadPath: uploadPath,
	}
}

func (s *LocalStorage) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *LocalStorage) SaveFile(_ context.Context, key string, data []byte, _ string) error {
	if err := os.WriteFile(s.filePath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *LocalStorage) ReadFile(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *LocalStorage) DeleteFile(_ context.Context, key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// keys never carry directories
func (s *LocalStorage) filePath(key string) string {
	return filepath.Join(s.uploadPath, filepath.Base(key))
}
